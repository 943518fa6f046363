package pricing

import (
	"github.com/enginequip/quotation-backend/internal/cart"
	"github.com/shopspring/decimal"
)

// TaxRate is the flat tax applied to the discounted subtotal.
var TaxRate = decimal.NewFromFloat(0.13)

var hundred = decimal.NewFromInt(100)

// Breakdown holds the computed totals. Values are kept at full precision;
// rounding happens only when a figure is presented.
type Breakdown struct {
	Subtotal           decimal.Decimal
	DiscountAmount     decimal.Decimal
	DiscountedSubtotal decimal.Decimal
	Tax                decimal.Decimal
	Total              decimal.Decimal
}

// Compute derives the totals from the cart rows and a discount percentage,
// in fixed order: subtotal, discount, discounted subtotal, tax, total.
func Compute(items []cart.LineItem, discountPercent decimal.Decimal) Breakdown {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Qty.Mul(it.Price))
	}

	if discountPercent.LessThan(decimal.Zero) {
		discountPercent = decimal.Zero
	}
	if discountPercent.GreaterThan(hundred) {
		discountPercent = hundred
	}

	discountAmount := subtotal.Mul(discountPercent).Div(hundred)
	discounted := subtotal.Sub(discountAmount)
	tax := discounted.Mul(TaxRate)

	return Breakdown{
		Subtotal:           subtotal,
		DiscountAmount:     discountAmount,
		DiscountedSubtotal: discounted,
		Tax:                tax,
		Total:              discounted.Add(tax),
	}
}

// TotalInWords renders the total as a printed-document phrase.
func (b Breakdown) TotalInWords() string {
	return AmountInWords(b.Total)
}
