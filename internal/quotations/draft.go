package quotations

import (
	"strings"
	"time"

	"github.com/enginequip/quotation-backend/internal/cart"
	pkgerrors "github.com/enginequip/quotation-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// Step is the wizard position of a draft.
type Step string

const (
	StepCustomerInfo   Step = "customer_info"
	StepPartsSelection Step = "parts_selection"
	StepFinalize       Step = "finalize"
)

// Draft is the in-progress quotation being assembled across wizard steps.
// It owns the customer fields, the selected catalog path, the cart and the
// discount, and enforces the forward guards between steps. Backward moves
// are always allowed and never lose data.
type Draft struct {
	Customer        string
	Address         string
	Date            time.Time
	Category        string
	Path            []int
	Cart            cart.Cart
	DiscountPercent decimal.Decimal
	Step            Step
}

// NewDraft starts an empty draft at the customer-info step.
func NewDraft() *Draft {
	return &Draft{Step: StepCustomerInfo, Cart: cart.New()}
}

// Next advances one step, enforcing the forward guards: customer name and
// address before parts selection, a non-empty cart before finalize.
func (d *Draft) Next() error {
	switch d.Step {
	case StepCustomerInfo:
		if strings.TrimSpace(d.Customer) == "" || strings.TrimSpace(d.Address) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "customer name and address are required")
		}
		d.Step = StepPartsSelection
	case StepPartsSelection:
		if d.Cart.Len() == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "add at least one item before continuing")
		}
		d.Step = StepFinalize
	case StepFinalize:
		return pkgerrors.New(pkgerrors.CodeValidation, "draft is already at the final step")
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown draft step")
	}
	return nil
}

// Back moves one step towards customer info. It is unguarded and keeps
// all entered data.
func (d *Draft) Back() {
	switch d.Step {
	case StepFinalize:
		d.Step = StepPartsSelection
	case StepPartsSelection:
		d.Step = StepCustomerInfo
	}
}

// Payload assembles the creation input for submission. Part ids stay nil
// for custom parts and charges.
func (d *Draft) Payload() CreateInput {
	items := d.Cart.Items()
	inputs := make([]CreateItemInput, 0, len(items))
	for _, it := range items {
		var partID *int
		if it.Kind == cart.KindCatalog && it.PartID != nil {
			id := *it.PartID
			partID = &id
		}
		inputs = append(inputs, CreateItemInput{
			PartID:   partID,
			PartNo:   it.PartNo,
			PartName: it.PartName,
			Qty:      it.Qty,
			Price:    it.Price,
		})
	}

	date := d.Date
	if date.IsZero() {
		date = time.Now()
	}

	return CreateInput{
		Customer:        d.Customer,
		Address:         d.Address,
		Date:            date.Format(dateLayout),
		Items:           inputs,
		DiscountPercent: d.DiscountPercent,
	}
}

// normalizeStep demotes a requested step until its guards hold, so a
// tampered or stale snapshot resumes at the deepest step it is actually
// entitled to.
func (d *Draft) normalizeStep(requested Step) {
	switch requested {
	case StepFinalize, StepPartsSelection, StepCustomerInfo:
	default:
		requested = StepCustomerInfo
	}

	d.Step = StepCustomerInfo
	for d.Step != requested {
		if err := d.Next(); err != nil {
			break
		}
	}
}
