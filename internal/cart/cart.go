package cart

import (
	"fmt"
	"strings"

	pkgerrors "github.com/enginequip/quotation-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind discriminates the three line-item variants.
type Kind string

const (
	// KindCatalog marks a line sourced from the parts catalog.
	KindCatalog Kind = "catalog"
	// KindCustom marks a hand-entered part, optionally backed by a search match.
	KindCustom Kind = "custom"
	// KindCharge marks a free-form charge such as transport or labour.
	KindCharge Kind = "charge"
)

// Field names the line-item fields that Update accepts.
type Field string

const (
	FieldQty   Field = "qty"
	FieldPrice Field = "price"
)

var (
	qtyFloor   = decimal.NewFromInt(1)
	priceFloor = decimal.Zero
)

// LineItem is one row of a quotation cart.
type LineItem struct {
	UID      string
	Kind     Kind
	PartID   *int
	PartNo   string
	PartName string
	Qty      decimal.Decimal
	Price    decimal.Decimal
}

// Cart is an ordered, immutable collection of line items. Every operation
// returns a new Cart value; the receiver is never mutated, so a snapshot
// handed out earlier stays valid.
type Cart struct {
	items []LineItem
}

// New returns an empty cart.
func New() Cart {
	return Cart{}
}

// FromItems builds a cart from an existing item slice, re-applying the
// merge and clamp rules so an untrusted snapshot cannot violate them.
func FromItems(items []LineItem) Cart {
	c := New()
	for _, it := range items {
		switch it.Kind {
		case KindCatalog:
			if it.PartID == nil {
				continue
			}
			merged := c.Add(*it.PartID, it.PartNo, it.PartName, it.Price)
			if merged.Len() > c.Len() {
				// fresh row: restore the snapshot quantity, clamped
				merged = merged.Update(catalogUID(*it.PartID), FieldQty, it.Qty.String())
			} else {
				// duplicate catalog rows in the snapshot collapse by summing
				row, _ := c.Find(catalogUID(*it.PartID))
				merged = merged.Update(catalogUID(*it.PartID), FieldQty,
					row.Qty.Add(clamp(it.Qty, qtyFloor)).String())
			}
			c = merged
		case KindCharge:
			next, err := c.AddCharge(it.PartName, it.Price, it.Qty)
			if err != nil {
				continue
			}
			c = next
		default:
			next, err := c.AddCustom(it.PartName, it.PartNo, it.Price, it.Qty)
			if err != nil {
				continue
			}
			c = next
		}
	}
	return c
}

// Items returns a copy of the cart rows in insertion order.
func (c Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len reports the number of rows.
func (c Cart) Len() int {
	return len(c.items)
}

// Find returns the item with the given uid.
func (c Cart) Find(uid string) (LineItem, bool) {
	for _, it := range c.items {
		if it.UID == uid {
			return it, true
		}
	}
	return LineItem{}, false
}

// Add inserts a catalog part. Adding a part that is already in the cart
// increments its quantity instead of appending a second row, so the cart
// holds at most one row per catalog part id.
func (c Cart) Add(partID int, partNo, partName string, price decimal.Decimal) Cart {
	items := c.copyItems()
	for i, it := range items {
		if it.Kind == KindCatalog && it.PartID != nil && *it.PartID == partID {
			items[i].Qty = it.Qty.Add(decimal.NewFromInt(1))
			return Cart{items: items}
		}
	}
	id := partID
	items = append(items, LineItem{
		UID:      catalogUID(partID),
		Kind:     KindCatalog,
		PartID:   &id,
		PartNo:   partNo,
		PartName: partName,
		Qty:      decimal.NewFromInt(1),
		Price:    clamp(price, priceFloor),
	})
	return Cart{items: items}
}

// AddCustom appends a hand-entered part row. The description is the only
// required field; quantity and price are clamped to their floors.
func (c Cart) AddCustom(description, partNo string, price, qty decimal.Decimal) (Cart, error) {
	if strings.TrimSpace(description) == "" {
		return c, pkgerrors.New(pkgerrors.CodeValidation, "description is required")
	}
	items := append(c.copyItems(), LineItem{
		UID:      uuid.NewString(),
		Kind:     KindCustom,
		PartNo:   partNo,
		PartName: strings.TrimSpace(description),
		Qty:      clamp(qty, qtyFloor),
		Price:    clamp(price, priceFloor),
	})
	return Cart{items: items}, nil
}

// AddCharge appends a free-form charge row. Charges carry no part number
// and are never merged, even when descriptions coincide.
func (c Cart) AddCharge(description string, amount, qty decimal.Decimal) (Cart, error) {
	if strings.TrimSpace(description) == "" {
		return c, pkgerrors.New(pkgerrors.CodeValidation, "description is required")
	}
	items := append(c.copyItems(), LineItem{
		UID:      uuid.NewString(),
		Kind:     KindCharge,
		PartNo:   "",
		PartName: strings.TrimSpace(description),
		Qty:      clamp(qty, qtyFloor),
		Price:    clamp(amount, priceFloor),
	})
	return Cart{items: items}, nil
}

// Update sets qty or price on the row matching uid. Raw input that does
// not parse, or parses below the field's floor, falls back to the floor
// (1 for qty, 0 for price) instead of rejecting the edit. Unknown uids
// and fields leave the cart unchanged.
func (c Cart) Update(uid string, field Field, raw string) Cart {
	idx := -1
	for i, it := range c.items {
		if it.UID == uid {
			idx = i
			break
		}
	}
	if idx < 0 {
		return c
	}

	items := c.copyItems()
	switch field {
	case FieldQty:
		items[idx].Qty = parseClamped(raw, qtyFloor)
	case FieldPrice:
		items[idx].Price = parseClamped(raw, priceFloor)
	default:
		return c
	}
	return Cart{items: items}
}

// Remove drops the row matching uid; absent uids are a no-op.
func (c Cart) Remove(uid string) Cart {
	items := make([]LineItem, 0, len(c.items))
	for _, it := range c.items {
		if it.UID != uid {
			items = append(items, it)
		}
	}
	return Cart{items: items}
}

func (c Cart) copyItems() []LineItem {
	items := make([]LineItem, len(c.items))
	copy(items, c.items)
	return items
}

func catalogUID(partID int) string {
	return fmt.Sprintf("part-%d", partID)
}

func parseClamped(raw string, floor decimal.Decimal) decimal.Decimal {
	v, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return floor
	}
	return clamp(v, floor)
}

func clamp(v, floor decimal.Decimal) decimal.Decimal {
	if v.LessThan(floor) {
		return floor
	}
	return v
}
