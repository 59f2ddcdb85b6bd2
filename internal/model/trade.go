package model

import "time"

// Trade directions, as seen from the initiating survivor.
const (
	TradeDirectionOffered   = "offered"
	TradeDirectionRequested = "requested"
)

// TradeItem is one resource movement recorded for a settled trade.
type TradeItem struct {
	TradeID    int64  `json:"-"`
	ResourceID int64  `json:"resource_id"`
	Quantity   int    `json:"quantity"`
	Direction  string `json:"direction"`

	// Joined fields (not always populated).
	ResourceName string `json:"resource,omitempty"`
}

// Trade is the record of a settled barter between two survivors.
type Trade struct {
	ID         int64       `json:"id"`
	SurvivorID int64       `json:"survivor_id"`
	PartnerID  int64       `json:"partner_id"`
	TradedAt   time.Time   `json:"traded_at"`
	Items      []TradeItem `json:"items,omitempty"`

	// Joined fields (not always populated).
	SurvivorName string `json:"survivor_name,omitempty"`
	PartnerName  string `json:"partner_name,omitempty"`
}
