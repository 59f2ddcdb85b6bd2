package trade

import (
	"fmt"

	"github.com/dkovac/refuge/internal/model"
)

// Validation messages shared with the API layer.
const (
	msgInfected        = "Infected survivors cannot perform such action."
	msgOfferedMissing  = "Some offered items are missing from survivor's inventory."
	msgRequestedShort  = "Some requested items are missing from partner's inventory."
	msgValueMismatch   = "Value of requested items does not match with offered items."
	msgEmptyBasket     = "At least one item is required."
	msgBothBaskets     = "A resource cannot appear in both offered and requested items."
	msgSelfTrade       = "A survivor cannot trade with themselves."
	msgSurvivorMissing = "Survivor not found."
	msgPartnerMissing  = "Partner not found."
)

// Validate checks a proposal against a snapshot and returns the validated
// trade, or model.FieldErrors describing every violated precondition for the
// failing stage. Checks run in stages; a failing stage stops the pipeline so
// later checks never see malformed input. Nothing is mutated.
func Validate(p Proposal, s Snapshot) (*Validated, error) {
	// Stage 1: participants exist and neither is infected.
	errs := model.FieldErrors{}
	checkParticipant(errs, "survivor_id", s.Survivor, msgSurvivorMissing)
	checkParticipant(errs, "partner_id", s.Partner, msgPartnerMissing)
	if len(errs) == 0 && p.SurvivorID == p.PartnerID {
		errs.Add("partner_id", msgSelfTrade)
	}
	if len(errs) > 0 {
		return nil, errs
	}

	// Stage 2: baskets are well-formed and reference priced resources.
	errs = model.FieldErrors{}
	checkBasket(errs, "offered_items", p.Offered, s.Prices)
	checkBasket(errs, "requested_items", p.Requested, s.Prices)
	if len(errs) == 0 {
		offered := map[int64]bool{}
		for _, e := range p.Offered {
			offered[e.ResourceID] = true
		}
		for _, e := range p.Requested {
			if offered[e.ResourceID] {
				errs.Add("offered_items", msgBothBaskets)
				errs.Add("requested_items", msgBothBaskets)
				break
			}
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	// Stage 3: both sides actually hold what they are giving away.
	errs = model.FieldErrors{}
	if !covered(p.Offered, s.SurvivorItems) {
		errs.Add("offered_items", msgOfferedMissing)
	}
	if !covered(p.Requested, s.PartnerItems) {
		errs.Add("requested_items", msgRequestedShort)
	}
	if len(errs) > 0 {
		return nil, errs
	}

	// Stage 4: exact value equivalence under the catalog snapshot.
	equal, err := EqualValue(p.Offered, p.Requested, s.Prices)
	if err != nil {
		// Unknown resources were ruled out in stage 2.
		return nil, fmt.Errorf("comparing basket values: %w", err)
	}
	if !equal {
		errs = model.FieldErrors{}
		errs.Add("requested_items", msgValueMismatch)
		return nil, errs
	}

	return &Validated{Proposal: p, Snapshot: s}, nil
}

func checkParticipant(errs model.FieldErrors, field string, s *model.Survivor, missing string) {
	if s == nil {
		errs.Add(field, missing)
		return
	}
	if s.IsInfected {
		errs.Add(field, msgInfected)
	}
}

func checkBasket(errs model.FieldErrors, field string, b Basket, prices map[int64]model.Price) {
	if len(b) == 0 {
		errs.Add(field, msgEmptyBasket)
		return
	}

	seen := map[int64]bool{}
	for _, e := range b {
		if e.Quantity <= 0 {
			errs.Add(field, fmt.Sprintf("Quantity for resource %d must be positive.", e.ResourceID))
		}
		if seen[e.ResourceID] {
			errs.Add(field, fmt.Sprintf("Resource %d is listed more than once.", e.ResourceID))
		}
		seen[e.ResourceID] = true
		if _, ok := prices[e.ResourceID]; !ok {
			errs.Add(field, fmt.Sprintf("Unknown resource %d.", e.ResourceID))
		}
	}
}

// covered reports whether every basket entry is backed by at least that
// quantity in the holder's inventory.
func covered(b Basket, items map[int64]int) bool {
	for _, e := range b {
		if items[e.ResourceID] < e.Quantity {
			return false
		}
	}
	return true
}
