package catalog

import (
	"context"

	"github.com/enginequip/quotation-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository handles catalog persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to catalog operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Categories returns the distinct category labels, alphabetically.
func (r *Repository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := r.db.WithContext(ctx).
		Model(&models.CatalogNode{}).
		Distinct("category").
		Order("category asc").
		Pluck("category", &categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// NodesByCategory returns every node of a category as flat rows. Tree
// assembly happens in the service.
func (r *Repository) NodesByCategory(ctx context.Context, category string) ([]models.CatalogNode, error) {
	var nodes []models.CatalogNode
	if err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("id asc").
		Find(&nodes).Error; err != nil {
		return nil, err
	}
	return nodes, nil
}

// PartsByNode returns the parts attached to a leaf node.
func (r *Repository) PartsByNode(ctx context.Context, nodeID int) ([]models.Part, error) {
	var parts []models.Part
	if err := r.db.WithContext(ctx).
		Joins("JOIN node_parts ON node_parts.part_id = parts.id").
		Where("node_parts.node_id = ?", nodeID).
		Order("parts.part_no asc").
		Find(&parts).Error; err != nil {
		return nil, err
	}
	return parts, nil
}
