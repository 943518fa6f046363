package quotations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/enginequip/quotation-backend/internal/cart"
	"github.com/enginequip/quotation-backend/internal/pricing"
	"github.com/enginequip/quotation-backend/pkg/db/models"
	pkgerrors "github.com/enginequip/quotation-backend/pkg/errors"
	"github.com/enginequip/quotation-backend/pkg/pagination"
)

type repository interface {
	Create(tx *gorm.DB, quotation *models.Quotation) error
	NextSequence(tx *gorm.DB, key string) (int, error)
	List(ctx context.Context, offset, limit int) ([]models.Quotation, int64, error)
	FindByID(ctx context.Context, id int) (*models.Quotation, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type partFinder interface {
	FindByID(ctx context.Context, id int) (*models.Part, error)
}

// Service exposes quotation creation and reads.
type Service interface {
	Create(ctx context.Context, createdBy string, input CreateInput) (*Detail, error)
	List(ctx context.Context, params pagination.Params) (*Page, error)
	Get(ctx context.Context, id int) (*Detail, error)
}

type service struct {
	repo    repository
	tx      txRunner
	numbers *NumberGenerator
	parts   partFinder
	now     func() time.Time
}

// NewService builds a quotation service backed by the provided stack.
func NewService(repo repository, tx txRunner, numbers *NumberGenerator, parts partFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("quotation repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if numbers == nil {
		return nil, fmt.Errorf("number generator required")
	}
	if parts == nil {
		return nil, fmt.Errorf("part finder required")
	}
	return &service{
		repo:    repo,
		tx:      tx,
		numbers: numbers,
		parts:   parts,
		now:     time.Now,
	}, nil
}

// Create validates the payload, replays the cart rules over the submitted
// items, prices the result, mints the next quote number and persists the
// quotation atomically.
func (s *service) Create(ctx context.Context, createdBy string, input CreateInput) (*Detail, error) {
	if strings.TrimSpace(createdBy) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "creator is required")
	}
	if strings.TrimSpace(input.Customer) == "" || strings.TrimSpace(input.Address) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name and address are required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quotation must contain at least one item")
	}

	date := s.now()
	if input.Date != "" {
		parsed, err := time.Parse(dateLayout, input.Date)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "date must be YYYY-MM-DD")
		}
		date = parsed
	}

	input.DiscountPercent = clampPercent(input.DiscountPercent)

	if err := s.resolveParts(ctx, input.Items); err != nil {
		return nil, err
	}

	// the cart re-applies merge and clamp rules over untrusted input
	lineItems := cart.FromItems(snapshotLines(input.Items)).Items()
	if len(lineItems) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quotation must contain at least one valid item")
	}

	breakdown := pricing.Compute(lineItems, input.DiscountPercent)

	quotation := &models.Quotation{
		Customer:        strings.TrimSpace(input.Customer),
		Address:         strings.TrimSpace(input.Address),
		Date:            date,
		DiscountPercent: input.DiscountPercent,
		Total:           breakdown.Total.Round(2),
		CreatedBy:       strings.TrimSpace(createdBy),
		Items:           toModelItems(lineItems),
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		seq, err := s.repo.NextSequence(tx, s.numbers.CounterKey(date.Year()))
		if err != nil {
			return err
		}
		quotation.QuoteNo = s.numbers.Format(date.Year(), seq)
		return s.repo.Create(tx, quotation)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persisting quotation")
	}

	return toDetail(quotation), nil
}

// List returns a page of quotation summaries, newest first.
func (s *service) List(ctx context.Context, params pagination.Params) (*Page, error) {
	params = pagination.Normalize(params)

	rows, total, err := s.repo.List(ctx, params.Offset(), params.PerPage)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing quotations")
	}

	summaries := make([]Summary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, Summary{
			ID:        row.ID,
			QuoteNo:   row.QuoteNo,
			Customer:  row.Customer,
			Date:      row.Date.Format(dateLayout),
			Total:     row.Total,
			CreatedBy: row.CreatedBy,
		})
	}

	return &Page{
		Quotations: summaries,
		Total:      total,
		Page:       params.Page,
		PerPage:    params.PerPage,
		TotalPages: pagination.TotalPages(total, params.PerPage),
	}, nil
}

// Get loads one quotation with its items and recomputed pricing.
func (s *service) Get(ctx context.Context, id int) (*Detail, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quotation id is required")
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quotation not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading quotation")
	}
	return toDetail(row), nil
}

// resolveParts verifies every catalog-linked item still references a real
// part. Names and prices stay as submitted; they are snapshots.
func (s *service) resolveParts(ctx context.Context, items []CreateItemInput) error {
	seen := map[int]bool{}
	for _, it := range items {
		if it.PartID == nil || seen[*it.PartID] {
			continue
		}
		seen[*it.PartID] = true
		if _, err := s.parts.FindByID(ctx, *it.PartID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown part id %d", *it.PartID))
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolving part")
		}
	}
	return nil
}

func clampPercent(v decimal.Decimal) decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	if v.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	if v.GreaterThan(hundred) {
		return hundred
	}
	return v
}

func snapshotLines(items []CreateItemInput) []cart.LineItem {
	lines := make([]cart.LineItem, 0, len(items))
	for _, it := range items {
		kind := cart.KindCustom
		switch {
		case it.PartID != nil:
			kind = cart.KindCatalog
		case strings.TrimSpace(it.PartNo) == "":
			kind = cart.KindCharge
		}
		lines = append(lines, cart.LineItem{
			Kind:     kind,
			PartID:   it.PartID,
			PartNo:   strings.TrimSpace(it.PartNo),
			PartName: it.PartName,
			Qty:      it.Qty,
			Price:    it.Price,
		})
	}
	return lines
}

func toModelItems(lines []cart.LineItem) []models.QuotationItem {
	items := make([]models.QuotationItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.QuotationItem{
			PartID:   line.PartID,
			PartNo:   line.PartNo,
			PartName: line.PartName,
			Qty:      line.Qty,
			Price:    line.Price,
		})
	}
	return items
}

func toDetail(row *models.Quotation) *Detail {
	items := make([]ItemView, 0, len(row.Items))
	lines := make([]cart.LineItem, 0, len(row.Items))
	for _, it := range row.Items {
		items = append(items, ItemView{
			ID:       it.ID,
			PartID:   it.PartID,
			PartNo:   it.PartNo,
			PartName: it.PartName,
			Qty:      it.Qty,
			Price:    it.Price,
		})
		lines = append(lines, cart.LineItem{Qty: it.Qty, Price: it.Price})
	}

	return &Detail{
		ID:              row.ID,
		QuoteNo:         row.QuoteNo,
		Customer:        row.Customer,
		Address:         row.Address,
		Date:            row.Date.Format(dateLayout),
		DiscountPercent: row.DiscountPercent,
		Items:           items,
		Pricing:         toPricingView(pricing.Compute(lines, row.DiscountPercent)),
		CreatedBy:       row.CreatedBy,
	}
}

func toPricingView(b pricing.Breakdown) PricingView {
	return PricingView{
		Subtotal:           b.Subtotal.Round(2),
		DiscountAmount:     b.DiscountAmount.Round(2),
		DiscountedSubtotal: b.DiscountedSubtotal.Round(2),
		Tax:                b.Tax.Round(2),
		Total:              b.Total.Round(2),
		TotalInWords:       b.TotalInWords(),
	}
}
