package trade

import (
	"fmt"

	"github.com/dkovac/refuge/internal/model"
)

// BasketValue computes the total value of a basket in cents under the given
// price snapshot. It fails if the basket references a resource the catalog
// does not price.
func BasketValue(b Basket, prices map[int64]model.Price) (int64, error) {
	var total int64
	for _, e := range b {
		price, ok := prices[e.ResourceID]
		if !ok {
			return 0, fmt.Errorf("unknown resource %d", e.ResourceID)
		}
		total += int64(price) * int64(e.Quantity)
	}
	return total, nil
}

// EqualValue reports whether two baskets are worth exactly the same under
// the given price snapshot. No tolerance: cents either match or they don't.
func EqualValue(a, b Basket, prices map[int64]model.Price) (bool, error) {
	va, err := BasketValue(a, prices)
	if err != nil {
		return false, err
	}
	vb, err := BasketValue(b, prices)
	if err != nil {
		return false, err
	}
	return va == vb, nil
}
