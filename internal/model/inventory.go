package model

// InventoryItem is the current quantity of a resource held by a survivor.
// Each (survivor, resource) pair has at most one row, and persisted
// quantities are always positive: a row that would reach zero is deleted.
type InventoryItem struct {
	SurvivorID int64 `json:"survivor_id"`
	ResourceID int64 `json:"resource_id"`
	Quantity   int   `json:"quantity"`

	// Joined fields (not always populated). The price has no omitempty:
	// 0.00 is a valid catalog price and must not vanish from the payload.
	ResourceName  string `json:"resource,omitempty"`
	ResourcePrice Price  `json:"resource_price"`
}
