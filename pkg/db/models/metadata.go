package models

// Metadata is a key/value row for system counters, e.g. the per-year quote
// number increment.
type Metadata struct {
	ID    int    `gorm:"column:id;primaryKey;autoIncrement"`
	Key   string `gorm:"column:key;uniqueIndex;not null"`
	Value string `gorm:"column:value;not null"`
}

func (Metadata) TableName() string {
	return "metadata"
}
