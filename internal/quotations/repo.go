package quotations

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/enginequip/quotation-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository handles quotation persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to quotation operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a quotation header and its items in the provided
// transaction.
func (r *Repository) Create(tx *gorm.DB, quotation *models.Quotation) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.Create(quotation).Error
}

// NextSequence increments and returns the counter stored under key,
// creating it at 1 on first use. The row is locked for the transaction so
// concurrent creates cannot mint the same quote number.
func (r *Repository) NextSequence(tx *gorm.DB, key string) (int, error) {
	if tx == nil {
		return 0, gorm.ErrInvalidTransaction
	}

	var row models.Metadata
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&row, "key = ?", key).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		row = models.Metadata{Key: key, Value: "1"}
		if err := tx.Create(&row).Error; err != nil {
			return 0, err
		}
		return 1, nil
	case err != nil:
		return 0, err
	}

	current, err := strconv.Atoi(row.Value)
	if err != nil {
		return 0, fmt.Errorf("corrupt counter %q: %w", key, err)
	}
	next := current + 1
	if err := tx.Model(&models.Metadata{}).
		Where("key = ?", key).
		Update("value", strconv.Itoa(next)).Error; err != nil {
		return 0, err
	}
	return next, nil
}

// List returns one page of quotations, newest date first, plus the total
// row count.
func (r *Repository) List(ctx context.Context, offset, limit int) ([]models.Quotation, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Quotation{}).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Quotation
	if err := r.db.WithContext(ctx).
		Order("date desc, id desc").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// FindByID loads a quotation with its items.
func (r *Repository) FindByID(ctx context.Context, id int) (*models.Quotation, error) {
	var row models.Quotation
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}
