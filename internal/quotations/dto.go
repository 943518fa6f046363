package quotations

import (
	"github.com/enginequip/quotation-backend/internal/cart"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// CreateItemInput is one line of a quotation creation payload.
type CreateItemInput struct {
	PartID   *int            `json:"part_id"`
	PartNo   string          `json:"part_no"`
	PartName string          `json:"part_name" validate:"required"`
	Qty      decimal.Decimal `json:"qty"`
	Price    decimal.Decimal `json:"price"`
}

// CreateInput is the quotation creation payload.
type CreateInput struct {
	Customer        string            `json:"customer" validate:"required"`
	Address         string            `json:"address" validate:"required"`
	Date            string            `json:"date"`
	Items           []CreateItemInput `json:"items" validate:"required,min=1,dive"`
	DiscountPercent decimal.Decimal   `json:"discount_percent"`
}

// PricingView presents a computed breakdown, rounded to two decimals.
type PricingView struct {
	Subtotal           decimal.Decimal `json:"subtotal"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
	DiscountedSubtotal decimal.Decimal `json:"discounted_subtotal"`
	Tax                decimal.Decimal `json:"tax"`
	Total              decimal.Decimal `json:"total"`
	TotalInWords       string          `json:"total_in_words"`
}

// ItemView is one persisted quotation line.
type ItemView struct {
	ID       int             `json:"id"`
	PartID   *int            `json:"part_id"`
	PartNo   string          `json:"part_no"`
	PartName string          `json:"part_name"`
	Qty      decimal.Decimal `json:"qty"`
	Price    decimal.Decimal `json:"price"`
}

// Summary is a quotation listing row.
type Summary struct {
	ID        int             `json:"id"`
	QuoteNo   string          `json:"quote_no"`
	Customer  string          `json:"customer"`
	Date      string          `json:"date"`
	Total     decimal.Decimal `json:"total"`
	CreatedBy string          `json:"created_by"`
}

// Detail is a full quotation record.
type Detail struct {
	ID              int             `json:"id"`
	QuoteNo         string          `json:"quote_no"`
	Customer        string          `json:"customer"`
	Address         string          `json:"address"`
	Date            string          `json:"date"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Items           []ItemView      `json:"items"`
	Pricing         PricingView     `json:"pricing"`
	CreatedBy       string          `json:"created_by"`
}

// Page is one page of quotation summaries.
type Page struct {
	Quotations []Summary `json:"quotations"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	PerPage    int       `json:"per_page"`
	TotalPages int       `json:"total_pages"`
}

// ItemSnapshot is one cart row of a retained draft.
type ItemSnapshot struct {
	UID      string          `json:"uid"`
	Kind     cart.Kind       `json:"kind"`
	PartID   *int            `json:"part_id"`
	PartNo   string          `json:"part_no"`
	PartName string          `json:"part_name"`
	Qty      decimal.Decimal `json:"qty"`
	Price    decimal.Decimal `json:"price"`
}

// Snapshot is the retained form of a draft, stored per user so an editing
// session survives a page reload.
type Snapshot struct {
	Customer        string          `json:"customer"`
	Address         string          `json:"address"`
	Date            string          `json:"date"`
	Category        string          `json:"category"`
	Path            []int           `json:"path"`
	Items           []ItemSnapshot  `json:"items"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Step            Step            `json:"step"`
}

// DraftView is the resumable draft state plus a freshly computed pricing
// breakdown.
type DraftView struct {
	Snapshot
	Pricing PricingView `json:"pricing"`
}
