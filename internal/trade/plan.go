package trade

import "sort"

// RowKey identifies one inventory row.
type RowKey struct {
	SurvivorID int64
	ResourceID int64
}

// RowState is an inventory row's intended end state after settlement.
type RowState struct {
	SurvivorID int64
	ResourceID int64
	Quantity   int
}

// Mutations is the deduplicated batch of row changes realizing a trade.
// Keys are disjoint across the three lists: each touched (survivor, resource)
// pair appears exactly once, so the apply order is irrelevant as long as all
// three run in one transaction.
type Mutations struct {
	Creates []RowState
	Updates []RowState
	Deletes []RowKey
}

// Plan computes the settlement mutations for a validated trade. Per-key end
// quantities are accumulated first and only then classified, so two movements
// touching the same row merge instead of clobbering each other. Rows that
// would reach zero are deleted, never persisted at zero, and validation
// guarantees no end state is negative.
func Plan(v *Validated) Mutations {
	start := func(k RowKey) int {
		if k.SurvivorID == v.SurvivorID {
			return v.SurvivorItems[k.ResourceID]
		}
		return v.PartnerItems[k.ResourceID]
	}

	end := map[RowKey]int{}
	move := func(owner int64, resourceID int64, delta int) {
		k := RowKey{SurvivorID: owner, ResourceID: resourceID}
		if _, ok := end[k]; !ok {
			end[k] = start(k)
		}
		end[k] += delta
	}

	for _, e := range v.Offered {
		move(v.SurvivorID, e.ResourceID, -e.Quantity)
		move(v.PartnerID, e.ResourceID, e.Quantity)
	}
	for _, e := range v.Requested {
		move(v.PartnerID, e.ResourceID, -e.Quantity)
		move(v.SurvivorID, e.ResourceID, e.Quantity)
	}

	var m Mutations
	for k, qty := range end {
		existed := start(k) > 0
		switch {
		case qty == start(k):
			// No net change; leave the row alone.
		case qty == 0 && existed:
			m.Deletes = append(m.Deletes, k)
		case existed:
			m.Updates = append(m.Updates, RowState{k.SurvivorID, k.ResourceID, qty})
		case qty > 0:
			m.Creates = append(m.Creates, RowState{k.SurvivorID, k.ResourceID, qty})
		}
	}

	// Deterministic order for stable application and tests.
	sortStates(m.Creates)
	sortStates(m.Updates)
	sort.Slice(m.Deletes, func(i, j int) bool {
		if m.Deletes[i].SurvivorID != m.Deletes[j].SurvivorID {
			return m.Deletes[i].SurvivorID < m.Deletes[j].SurvivorID
		}
		return m.Deletes[i].ResourceID < m.Deletes[j].ResourceID
	})

	return m
}

func sortStates(s []RowState) {
	sort.Slice(s, func(i, j int) bool {
		if s[i].SurvivorID != s[j].SurvivorID {
			return s[i].SurvivorID < s[j].SurvivorID
		}
		return s[i].ResourceID < s[j].ResourceID
	})
}
