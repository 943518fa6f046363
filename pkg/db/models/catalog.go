package models

// CatalogNode is one row of the engine/model hierarchy. Nodes with a nil
// ParentID are roots for their category; a node with no children is a leaf
// and is the only place parts attach.
type CatalogNode struct {
	ID       int    `gorm:"column:id;primaryKey;autoIncrement"`
	Category string `gorm:"column:category;index;not null"`
	Name     string `gorm:"column:name;not null"`
	ParentID *int   `gorm:"column:parent_id;index"`
}

func (CatalogNode) TableName() string {
	return "catalog_nodes"
}

// NodePart maps parts onto leaf catalog nodes (many-to-many).
type NodePart struct {
	ID     int `gorm:"column:id;primaryKey;autoIncrement"`
	NodeID int `gorm:"column:node_id;index;not null"`
	PartID int `gorm:"column:part_id;index;not null"`
}

func (NodePart) TableName() string {
	return "node_parts"
}
