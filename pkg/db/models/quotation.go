package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quotation is a persisted quotation header.
type Quotation struct {
	ID              int             `gorm:"column:id;primaryKey;autoIncrement"`
	QuoteNo         string          `gorm:"column:quote_no;uniqueIndex;not null"`
	Customer        string          `gorm:"column:customer;not null"`
	Address         string          `gorm:"column:address;not null"`
	Date            time.Time       `gorm:"column:date;not null"`
	DiscountPercent decimal.Decimal `gorm:"column:discount_percent;type:numeric(5,2);not null;default:0"`
	Total           decimal.Decimal `gorm:"column:total;type:numeric(14,2);not null;default:0"`
	CreatedBy       string          `gorm:"column:created_by;not null"`
	Items           []QuotationItem `gorm:"foreignKey:QuotationID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (Quotation) TableName() string {
	return "quotations"
}

// QuotationItem is one line of a persisted quotation. PartID is nil for
// custom parts and charges.
type QuotationItem struct {
	ID          int             `gorm:"column:id;primaryKey;autoIncrement"`
	QuotationID int             `gorm:"column:quotation_id;index;not null"`
	PartID      *int            `gorm:"column:part_id"`
	PartNo      string          `gorm:"column:part_no"`
	PartName    string          `gorm:"column:part_name"`
	Qty         decimal.Decimal `gorm:"column:qty;type:numeric(10,2);not null"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
}

func (QuotationItem) TableName() string {
	return "quotation_items"
}
