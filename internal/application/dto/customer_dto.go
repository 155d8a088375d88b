package dto

// CustomerResponse a client account as seen by admins.
type CustomerResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	Status      string `json:"status"`
	StorageMode string `json:"storage_mode"`
	PalletCount int    `json:"pallet_count,omitempty"`
}

// StoragePlanRequest body for PUT /api/admin/customers/:id/storage-plan.
type StoragePlanRequest struct {
	Mode           string `json:"mode"` // product_base | pallet_base
	PricePerItem   string `json:"price_per_item,omitempty"`
	PricePerPallet string `json:"price_per_pallet,omitempty"`
	PalletCount    int    `json:"pallet_count,omitempty"`
}
