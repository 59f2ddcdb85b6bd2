// Package trade implements barter validation and settlement planning.
//
// The package is deliberately pure: it works over an explicit snapshot of
// both participants and their inventories, taken by the caller inside the
// settlement transaction, and produces a merged set of row mutations. The
// store applies the mutations; nothing here touches the database.
package trade

import "github.com/dkovac/refuge/internal/model"

// Entry is one (resource, quantity) pair of a basket.
type Entry struct {
	ResourceID int64 `json:"resource_id"`
	Quantity   int   `json:"quantity"`
}

// Basket is a list of goods moving in one direction.
type Basket []Entry

// Proposal is a two-sided barter as submitted by the caller. Offered is what
// the survivor gives up, Requested is what the partner gives up.
type Proposal struct {
	SurvivorID int64
	PartnerID  int64
	Offered    Basket
	Requested  Basket
}

// Snapshot is the point-in-time state a proposal is validated against: both
// participants, the full price catalog, and both inventories keyed by
// resource id. All of it must come from a single transactional read so the
// stock check and the settlement writes see the same state.
type Snapshot struct {
	Survivor      *model.Survivor
	Partner       *model.Survivor
	Prices        map[int64]model.Price
	SurvivorItems map[int64]int
	PartnerItems  map[int64]int
}

// Validated is a proposal that passed all preconditions, together with the
// snapshot it was validated against. Plan consumes it unchanged.
type Validated struct {
	Proposal
	Snapshot
}
