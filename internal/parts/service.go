package parts

import (
	"context"
	"fmt"
	"strings"

	"github.com/enginequip/quotation-backend/pkg/db/models"
	pkgerrors "github.com/enginequip/quotation-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

const searchLimit = 20

// Part is a search candidate offered to the matcher.
type Part struct {
	ID       int             `json:"id"`
	PartNo   string          `json:"part_no"`
	PartName string          `json:"part_name"`
	Price    decimal.Decimal `json:"price"`
}

type repository interface {
	Search(ctx context.Context, query string, limit int) ([]models.Part, error)
}

// Service exposes part lookups.
type Service interface {
	Search(ctx context.Context, query string) ([]Part, error)
}

type service struct {
	repo repository
}

// NewService builds a parts service backed by the provided repository.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("parts repository required")
	}
	return &service{repo: repo}, nil
}

// Search returns candidate parts for a free-text query. A blank query
// yields no candidates rather than the whole catalog.
func (s *service) Search(ctx context.Context, query string) ([]Part, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	rows, err := s.repo.Search(ctx, query, searchLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "searching parts")
	}

	out := make([]Part, 0, len(rows))
	for _, row := range rows {
		out = append(out, Part{
			ID:       row.ID,
			PartNo:   row.PartNo,
			PartName: row.PartName,
			Price:    row.Price,
		})
	}
	return out, nil
}
