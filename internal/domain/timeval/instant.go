package timeval

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Kind tags which legacy encoding an Instant was decoded from.
type Kind int

const (
	KindUnknown Kind = iota // absent, null, or unparseable
	KindNative              // created in-process from a time.Time
	KindISO                 // RFC3339 / date-only string
	KindEpoch               // epoch seconds number or {seconds, nanoseconds} object
)

// Instant is the single canonical form for the timestamp encodings that
// accumulated in the migrated document data: native dates, ISO-8601 strings,
// epoch-seconds numbers and {seconds, nanoseconds} objects. Decoding never
// fails; anything unparseable becomes the Unknown sentinel so one bad field
// cannot abort a billing batch.
type Instant struct {
	kind Kind
	t    time.Time
}

// FromTime wraps a native time.Time.
func FromTime(t time.Time) Instant {
	if t.IsZero() {
		return Instant{}
	}
	return Instant{kind: KindNative, t: t.UTC()}
}

// Kind reports which encoding the value carried.
func (i Instant) Kind() Kind { return i.kind }

// Time returns the canonical instant and whether the value was parseable.
func (i Instant) Time() (time.Time, bool) {
	if i.kind == KindUnknown {
		return time.Time{}, false
	}
	return i.t, true
}

// epochPair matches both the plain and the export-prefixed object encodings.
type epochPair struct {
	Seconds      *int64 `json:"seconds"`
	Nanoseconds  int64  `json:"nanoseconds"`
	USeconds     *int64 `json:"_seconds"`
	UNanoseconds int64  `json:"_nanoseconds"`
}

// UnmarshalJSON decodes any known timestamp shape. It never returns an error:
// malformed input degrades to the Unknown sentinel.
func (i *Instant) UnmarshalJSON(b []byte) error {
	*i = Instant{}
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		return nil
	}

	switch s[0] {
	case '"':
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return nil
		}
		*i = fromString(str)
	case '{':
		var p epochPair
		if err := json.Unmarshal(b, &p); err != nil {
			return nil
		}
		sec, nsec := p.Seconds, p.Nanoseconds
		if sec == nil {
			sec, nsec = p.USeconds, p.UNanoseconds
		}
		if sec == nil {
			return nil
		}
		*i = Instant{kind: KindEpoch, t: time.Unix(*sec, nsec).UTC()}
	default:
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		sec := int64(n)
		// Values past the year ~33658 in seconds are epoch millis.
		if sec > 1e12 {
			*i = Instant{kind: KindEpoch, t: time.UnixMilli(sec).UTC()}
			return nil
		}
		*i = Instant{kind: KindEpoch, t: time.Unix(sec, 0).UTC()}
	}
	return nil
}

// MarshalJSON writes RFC3339, or null for the Unknown sentinel.
func (i Instant) MarshalJSON() ([]byte, error) {
	if i.kind == KindUnknown {
		return []byte("null"), nil
	}
	return json.Marshal(i.t.Format(time.RFC3339Nano))
}

// stringLayouts are tried in order for string-encoded timestamps.
var stringLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func fromString(s string) Instant {
	s = strings.TrimSpace(s)
	if s == "" {
		return Instant{}
	}
	for _, layout := range stringLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Instant{kind: KindISO, t: t.UTC()}
		}
	}
	return Instant{}
}
