package models

import "github.com/shopspring/decimal"

// Part is a purchasable catalog part. Price here is catalog truth at fetch
// time; quotations copy it and may override per line item.
type Part struct {
	ID       int             `gorm:"column:id;primaryKey;autoIncrement"`
	PartNo   string          `gorm:"column:part_no;uniqueIndex;not null"`
	PartName string          `gorm:"column:part_name;not null"`
	Price    decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
}

func (Part) TableName() string {
	return "parts"
}
