package parts

import (
	"context"

	"github.com/enginequip/quotation-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository handles part persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to part operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Search matches the query against part numbers and names,
// case-insensitively.
func (r *Repository) Search(ctx context.Context, query string, limit int) ([]models.Part, error) {
	pattern := "%" + query + "%"
	var parts []models.Part
	if err := r.db.WithContext(ctx).
		Where("part_no ILIKE ? OR part_name ILIKE ?", pattern, pattern).
		Order("part_no asc").
		Limit(limit).
		Find(&parts).Error; err != nil {
		return nil, err
	}
	return parts, nil
}

// FindByID loads a single part.
func (r *Repository) FindByID(ctx context.Context, id int) (*models.Part, error) {
	var part models.Part
	if err := r.db.WithContext(ctx).First(&part, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &part, nil
}
