package store

import (
	"github.com/shopspring/decimal"

	"storefront/domain"
	"storefront/util"
)

// DefaultDiscountPercentage is the percentage carried by generated codes.
const DefaultDiscountPercentage = 10

// DiscountRegistry holds every issued discount code in issue order.
// It is not safe for concurrent use; Store serializes access.
type DiscountRegistry struct {
	codes      []domain.DiscountCode
	index      map[string]int
	percentage decimal.Decimal
	newToken   func() string
}

// compile-time assertion that DiscountRegistry can back the pricing engine
var _ domain.DiscountLookup = (*DiscountRegistry)(nil)

// NewDiscountRegistry returns an empty registry issuing codes worth percentage.
// newToken may be nil, in which case util.GenerateDiscountToken is used.
func NewDiscountRegistry(percentage decimal.Decimal, newToken func() string) *DiscountRegistry {
	if newToken == nil {
		newToken = util.GenerateDiscountToken
	}
	return &DiscountRegistry{
		index:      make(map[string]int),
		percentage: percentage,
		newToken:   newToken,
	}
}

// Lookup returns the code with that exact string.
func (r *DiscountRegistry) Lookup(code string) (domain.DiscountCode, bool) {
	i, ok := r.index[code]
	if !ok {
		return domain.DiscountCode{}, false
	}
	return r.codes[i], true
}

// Validate reports whether code exists and is unused.
func (r *DiscountRegistry) Validate(code string) bool {
	dc, ok := r.Lookup(code)
	return ok && !dc.Used
}

// Generate issues a fresh unused code at the registry's percentage. Tokens
// already issued are redrawn so every code stays reachable by Lookup.
func (r *DiscountRegistry) Generate() domain.DiscountCode {
	token := r.newToken()
	for {
		if _, taken := r.index[token]; !taken {
			break
		}
		token = r.newToken()
	}
	dc := domain.DiscountCode{
		Code:       token,
		Percentage: r.percentage,
	}
	r.index[dc.Code] = len(r.codes)
	r.codes = append(r.codes, dc)
	return dc
}

// Redeem marks code used. Unknown and already-used codes are rejected.
func (r *DiscountRegistry) Redeem(code string) error {
	i, ok := r.index[code]
	if !ok || r.codes[i].Used {
		return domain.NewInvalidDiscountError(code)
	}
	r.codes[i].Used = true
	return nil
}

// List returns a copy of every code, used and unused, in issue order.
func (r *DiscountRegistry) List() []domain.DiscountCode {
	out := make([]domain.DiscountCode, len(r.codes))
	copy(out, r.codes)
	return out
}

// Len reports how many codes have been issued.
func (r *DiscountRegistry) Len() int {
	return len(r.codes)
}
