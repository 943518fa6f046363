package catalog

import "github.com/shopspring/decimal"

// Node is one entry of a catalog tree. A node with no children is a leaf
// and is the only place purchasable parts attach.
type Node struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Children []Node `json:"children"`
}

// IsLeaf reports whether the node exposes parts instead of further levels.
func (n Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// PartOption is a purchasable part offered at a leaf node.
type PartOption struct {
	ID       int             `json:"id"`
	PartNo   string          `json:"part_no"`
	PartName string          `json:"part_name"`
	Price    decimal.Decimal `json:"price"`
}
