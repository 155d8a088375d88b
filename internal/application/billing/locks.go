package billing

import "sync"

// CustomerLocks serializes billing work per customer. Two overlapping runs
// for the same customer (a scheduled tick and a manual admin trigger) would
// otherwise both read the same un-invoiced shipments before either writes,
// producing a duplicate invoice. The lock is scoped to the customer id and
// released on every exit path.
type CustomerLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewCustomerLocks builds an empty lock set. One instance is shared by every
// billing engine in the process.
func NewCustomerLocks() *CustomerLocks {
	return &CustomerLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the customer's lock and returns the release function.
func (c *CustomerLocks) Lock(customerID string) func() {
	c.mu.Lock()
	l, ok := c.locks[customerID]
	if !ok {
		l = &sync.Mutex{}
		c.locks[customerID] = l
	}
	c.mu.Unlock()

	l.Lock()
	return l.Unlock
}
