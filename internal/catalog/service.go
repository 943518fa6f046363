package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/enginequip/quotation-backend/pkg/db/models"
	pkgerrors "github.com/enginequip/quotation-backend/pkg/errors"
)

type repository interface {
	Categories(ctx context.Context) ([]string, error)
	NodesByCategory(ctx context.Context, category string) ([]models.CatalogNode, error)
	PartsByNode(ctx context.Context, nodeID int) ([]models.Part, error)
}

// Service exposes catalog reads.
type Service interface {
	Categories(ctx context.Context) ([]string, error)
	Tree(ctx context.Context, category string) ([]Node, error)
	Parts(ctx context.Context, nodeID int) ([]PartOption, error)
}

type service struct {
	repo repository
}

// NewService builds a catalog service backed by the provided repository.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading categories")
	}
	return categories, nil
}

// Tree loads a category's nodes and assembles them into root trees via
// the self-referential parent id.
func (s *service) Tree(ctx context.Context, category string) ([]Node, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}

	rows, err := s.repo.NodesByCategory(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading catalog tree")
	}
	if len(rows) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "unknown category")
	}

	return assemble(rows), nil
}

func (s *service) Parts(ctx context.Context, nodeID int) ([]PartOption, error) {
	if nodeID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "node id is required")
	}

	rows, err := s.repo.PartsByNode(ctx, nodeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading node parts")
	}

	parts := make([]PartOption, 0, len(rows))
	for _, row := range rows {
		parts = append(parts, PartOption{
			ID:       row.ID,
			PartNo:   row.PartNo,
			PartName: row.PartName,
			Price:    row.Price,
		})
	}
	return parts, nil
}

// assemble turns flat parent-id rows into root-level trees. Rows pointing
// at a missing parent are treated as roots rather than dropped.
func assemble(rows []models.CatalogNode) []Node {
	children := make(map[int][]models.CatalogNode)
	byID := make(map[int]struct{}, len(rows))
	for _, row := range rows {
		byID[row.ID] = struct{}{}
	}

	var rootRows []models.CatalogNode
	for _, row := range rows {
		if row.ParentID == nil {
			rootRows = append(rootRows, row)
			continue
		}
		if _, ok := byID[*row.ParentID]; !ok {
			rootRows = append(rootRows, row)
			continue
		}
		children[*row.ParentID] = append(children[*row.ParentID], row)
	}

	var build func(rows []models.CatalogNode) []Node
	build = func(rows []models.CatalogNode) []Node {
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
		nodes := make([]Node, 0, len(rows))
		for _, row := range rows {
			nodes = append(nodes, Node{
				ID:       row.ID,
				Name:     row.Name,
				Children: build(children[row.ID]),
			})
		}
		return nodes
	}
	return build(rootRows)
}
