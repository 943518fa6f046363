package quotations

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/enginequip/quotation-backend/internal/cart"
	"github.com/enginequip/quotation-backend/internal/catalog"
	"github.com/enginequip/quotation-backend/internal/pricing"
	pkgerrors "github.com/enginequip/quotation-backend/pkg/errors"
)

type draftStore interface {
	Save(ctx context.Context, username string, snapshot Snapshot) error
	Load(ctx context.Context, username string) (*Snapshot, error)
	Delete(ctx context.Context, username string) error
}

// DraftService owns the per-user editing session: resuming, saving and
// discarding the retained draft, and submitting it as a quotation.
type DraftService interface {
	Resume(ctx context.Context, username string) (*DraftView, error)
	Save(ctx context.Context, username string, snapshot Snapshot) (*DraftView, error)
	Discard(ctx context.Context, username string) error
	Submit(ctx context.Context, username string) (*Detail, error)
}

type draftService struct {
	store      draftStore
	catalog    catalog.Fetcher
	quotations Service
}

// NewDraftService builds a draft service backed by the provided stack.
func NewDraftService(store draftStore, catalogSvc catalog.Fetcher, quotationsSvc Service) (DraftService, error) {
	if store == nil {
		return nil, fmt.Errorf("draft store required")
	}
	if catalogSvc == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	if quotationsSvc == nil {
		return nil, fmt.Errorf("quotation service required")
	}
	return &draftService{
		store:      store,
		catalog:    catalogSvc,
		quotations: quotationsSvc,
	}, nil
}

// Resume returns the user's retained draft, replaying its catalog path so
// a selection that no longer resolves is dropped instead of resumed. A
// user without a retained draft gets a fresh one at the first step.
func (s *draftService) Resume(ctx context.Context, username string) (*DraftView, error) {
	if strings.TrimSpace(username) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}

	snapshot, err := s.store.Load(ctx, username)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading draft")
	}
	if snapshot == nil {
		return s.view(ctx, draftFromSnapshot(Snapshot{})), nil
	}

	draft := draftFromSnapshot(*snapshot)
	return s.view(ctx, draft), nil
}

// Save validates the submitted snapshot through the draft machine (step
// guards, cart merge and clamp rules, catalog path replay), retains the
// normalized result and returns it with a fresh pricing breakdown.
func (s *draftService) Save(ctx context.Context, username string, snapshot Snapshot) (*DraftView, error) {
	if strings.TrimSpace(username) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}

	draft := draftFromSnapshot(snapshot)
	view := s.view(ctx, draft)

	if err := s.store.Save(ctx, username, view.Snapshot); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving draft")
	}
	return view, nil
}

// Discard drops the user's retained draft.
func (s *draftService) Discard(ctx context.Context, username string) error {
	if strings.TrimSpace(username) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}
	if err := s.store.Delete(ctx, username); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "discarding draft")
	}
	return nil
}

// Submit turns the retained draft into a persisted quotation. The draft
// must have passed every forward guard; a failed submission keeps it
// intact so the user can retry without re-entering data.
func (s *draftService) Submit(ctx context.Context, username string) (*Detail, error) {
	if strings.TrimSpace(username) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}

	snapshot, err := s.store.Load(ctx, username)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading draft")
	}
	if snapshot == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no draft to submit")
	}

	draft := draftFromSnapshot(*snapshot)
	draft.normalizeStep(StepFinalize)
	if draft.Step != StepFinalize {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "draft is not ready for submission")
	}

	detail, err := s.quotations.Create(ctx, username, draft.Payload())
	if err != nil {
		return nil, err
	}

	if err := s.store.Delete(ctx, username); err != nil {
		// the quotation is already persisted; the leftover draft just expires
		return detail, nil
	}
	return detail, nil
}

// view normalizes the draft against live catalog data and attaches a
// freshly computed pricing breakdown.
func (s *draftService) view(ctx context.Context, draft *Draft) *DraftView {
	category, path := s.replayPath(ctx, draft.Category, draft.Path)
	draft.Category = category
	draft.Path = path

	return &DraftView{
		Snapshot: snapshotFromDraft(draft),
		Pricing:  toPricingView(pricing.Compute(draft.Cart.Items(), draft.DiscountPercent)),
	}
}

// replayPath walks the stored category selection through a fresh
// navigator. Levels that no longer resolve are dropped, so the resumed
// draft degrades to the deepest still-valid selection.
func (s *draftService) replayPath(ctx context.Context, category string, path []int) (string, []int) {
	if strings.TrimSpace(category) == "" {
		return "", nil
	}

	nav, err := catalog.NewNavigator(s.catalog)
	if err != nil {
		return "", nil
	}
	if err := nav.SelectCategory(ctx, category); err != nil {
		return "", nil
	}
	for level, nodeID := range path {
		if err := nav.Select(ctx, level, nodeID); err != nil {
			break
		}
		selection := nav.Selection()
		if len(selection) != level+1 {
			break
		}
	}
	return category, nav.Selection()
}

func draftFromSnapshot(snapshot Snapshot) *Draft {
	draft := NewDraft()
	draft.Customer = strings.TrimSpace(snapshot.Customer)
	draft.Address = strings.TrimSpace(snapshot.Address)
	draft.Category = snapshot.Category
	draft.Path = snapshot.Path
	draft.DiscountPercent = clampPercent(snapshot.DiscountPercent)
	draft.Cart = cart.FromItems(toCartItems(snapshot.Items))
	if snapshot.Date != "" {
		if parsed, err := time.Parse(dateLayout, snapshot.Date); err == nil {
			draft.Date = parsed
		}
	}
	draft.normalizeStep(snapshot.Step)
	return draft
}

func snapshotFromDraft(draft *Draft) Snapshot {
	date := ""
	if !draft.Date.IsZero() {
		date = draft.Date.Format(dateLayout)
	}
	return Snapshot{
		Customer:        draft.Customer,
		Address:         draft.Address,
		Date:            date,
		Category:        draft.Category,
		Path:            draft.Path,
		Items:           toItemSnapshots(draft.Cart.Items()),
		DiscountPercent: draft.DiscountPercent,
		Step:            draft.Step,
	}
}

func toCartItems(items []ItemSnapshot) []cart.LineItem {
	lines := make([]cart.LineItem, 0, len(items))
	for _, it := range items {
		lines = append(lines, cart.LineItem{
			UID:      it.UID,
			Kind:     it.Kind,
			PartID:   it.PartID,
			PartNo:   it.PartNo,
			PartName: it.PartName,
			Qty:      it.Qty,
			Price:    it.Price,
		})
	}
	return lines
}

func toItemSnapshots(lines []cart.LineItem) []ItemSnapshot {
	items := make([]ItemSnapshot, 0, len(lines))
	for _, line := range lines {
		items = append(items, ItemSnapshot{
			UID:      line.UID,
			Kind:     line.Kind,
			PartID:   line.PartID,
			PartNo:   line.PartNo,
			PartName: line.PartName,
			Qty:      line.Qty,
			Price:    line.Price,
		})
	}
	return items
}
