package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Price is a fixed-point monetary amount in cents. All basket arithmetic is
// exact integer math; floats never enter the picture.
type Price int64

// ParsePrice parses a decimal string like "4", "4.5" or "4.50" into cents.
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty price")
	}

	// Reject the sign up front: checking the parsed whole part instead
	// would let "-0.50" through, since ParseInt("-0") is 0.
	if strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("price %q must not be negative", s)
	}

	whole, frac, _ := strings.Cut(s, ".")
	if len(frac) > 2 {
		return 0, fmt.Errorf("price %q has more than 2 decimal places", s)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	f, err := strconv.ParseUint(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", s)
	}

	return Price(w*100 + int64(f)), nil
}

// String formats the price with exactly 2 decimal places.
func (p Price) String() string {
	return fmt.Sprintf("%d.%02d", int64(p)/100, int64(p)%100)
}

// MarshalJSON encodes the price as a decimal string, e.g. "4.50".
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(p.String())), nil
}

// UnmarshalJSON accepts both a decimal string ("4.50") and a bare number.
func (p *Price) UnmarshalJSON(data []byte) error {
	s := string(data)
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	parsed, err := ParsePrice(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Resource is a tradeable resource type with a catalog price.
type Resource struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Price     Price     `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}
