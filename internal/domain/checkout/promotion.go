package checkout

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/scentline/backend/internal/domain/shared"
	"github.com/scentline/backend/internal/domain/shared/valueobject"
)

// PromoRule is a configured promo code: a percent discount with an
// optional cap on the discounted amount.
type PromoRule struct {
	Code    string
	Percent decimal.Decimal
	Cap     *valueobject.Money
}

// Promotions resolves promo codes to discounts. Codes are matched
// case-insensitively.
type Promotions struct {
	rules map[string]PromoRule
}

// NewPromotions builds a promotion table from configured rules
func NewPromotions(rules []PromoRule) *Promotions {
	table := make(map[string]PromoRule, len(rules))
	for _, r := range rules {
		table[normalizeCode(r.Code)] = r
	}
	return &Promotions{rules: table}
}

// DefaultPromotions returns the built-in promo codes
func DefaultPromotions() *Promotions {
	cap500 := valueobject.NewMoneyINRFromFloat(500)
	return NewPromotions([]PromoRule{
		{Code: "RAMZAAN10", Percent: decimal.NewFromInt(10)},
		{Code: "WELCOME20", Percent: decimal.NewFromInt(20), Cap: &cap500},
	})
}

// Discount computes the discount for a code against a subtotal.
// Unknown codes return a zero discount and ErrInvalidPromoCode.
func (p *Promotions) Discount(code string, subtotal valueobject.Money) (valueobject.Money, error) {
	rule, ok := p.rules[normalizeCode(code)]
	if !ok {
		return valueobject.Zero(subtotal.Currency()), shared.ErrInvalidPromoCode
	}
	discount := subtotal.CalculatePercentage(rule.Percent).Round(2)
	if rule.Cap != nil {
		capped, err := valueobject.Min(discount, *rule.Cap)
		if err != nil {
			return valueobject.Zero(subtotal.Currency()), err
		}
		discount = capped
	}
	return discount, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
