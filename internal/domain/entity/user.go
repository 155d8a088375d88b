package entity

import "time"

// Portal roles.
const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

// Account approval states. Clients cannot log in until approved.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDeleted  = "deleted"
)

// Storage billing modes.
const (
	StorageModeProduct = "product_base" // per in-stock unit, first month free
	StorageModePallet  = "pallet_base"  // flat per configured pallet
)

// User is a portal account. Client users own shipments, inventory and
// invoices; admins approve accounts and reconcile billing.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Phone        string
	Address      string
	Role         string // RoleAdmin | RoleClient
	Status       string // StatusPending | StatusApproved | StatusDeleted
	StorageMode  string // StorageModeProduct | StorageModePallet
	PalletCount  int    // only meaningful for pallet_base customers
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
