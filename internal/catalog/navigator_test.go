package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
)

type stubFetcher struct {
	mu         sync.Mutex
	trees      map[string][]Node
	parts      map[int][]PartOption
	treeErr    error
	partsErr   error
	partsGate  chan struct{}
	partsBegan chan struct{}
	treeCalls  int
	partsCalls int
}

func (s *stubFetcher) Tree(_ context.Context, category string) ([]Node, error) {
	s.mu.Lock()
	s.treeCalls++
	s.mu.Unlock()
	if s.treeErr != nil {
		return nil, s.treeErr
	}
	return s.trees[category], nil
}

func (s *stubFetcher) Parts(_ context.Context, nodeID int) ([]PartOption, error) {
	s.mu.Lock()
	s.partsCalls++
	s.mu.Unlock()
	if s.partsBegan != nil {
		s.partsBegan <- struct{}{}
	}
	if s.partsGate != nil {
		<-s.partsGate
	}
	if s.partsErr != nil {
		return nil, s.partsErr
	}
	return s.parts[nodeID], nil
}

func threeLevelFetcher() *stubFetcher {
	// Industrial Engine -> Swing -> {Bull, Preet}; only depth-3 nodes are leaves.
	return &stubFetcher{
		trees: map[string][]Node{
			"Industrial Engine": {
				{ID: 1, Name: "Swing", Children: []Node{
					{ID: 2, Name: "Bull", Children: []Node{
						{ID: 3, Name: "Bull 55HP"},
					}},
					{ID: 4, Name: "Preet"},
				}},
			},
			"Power Generator": {
				{ID: 10, Name: "2R1040"},
				{ID: 11, Name: "3R1040"},
			},
		},
		parts: map[int][]PartOption{
			3:  {{ID: 100, PartNo: "P001", PartName: "Piston", Price: decimal.NewFromInt(500)}},
			4:  {{ID: 101, PartNo: "P002", PartName: "Ring set", Price: decimal.NewFromInt(250)}},
			10: {{ID: 102, PartNo: "P003", PartName: "Filter", Price: decimal.NewFromInt(80)}},
		},
	}
}

func TestSelectCategoryPublishesRoots(t *testing.T) {
	nav, err := NewNavigator(threeLevelFetcher())
	if err != nil {
		t.Fatalf("NewNavigator: %v", err)
	}

	if err := nav.SelectCategory(context.Background(), "Power Generator"); err != nil {
		t.Fatalf("SelectCategory: %v", err)
	}

	levels := nav.Levels()
	if len(levels) != 1 || len(levels[0]) != 2 {
		t.Fatalf("expected one level with two roots, got %v", levels)
	}
	if len(nav.PartOptions()) != 0 {
		t.Fatal("no parts should be fetched before a leaf is selected")
	}
}

func TestNonLeafExpandsExactlyOneLevel(t *testing.T) {
	fetcher := threeLevelFetcher()
	nav, _ := NewNavigator(fetcher)
	ctx := context.Background()

	if err := nav.SelectCategory(ctx, "Industrial Engine"); err != nil {
		t.Fatalf("SelectCategory: %v", err)
	}
	if err := nav.Select(ctx, 0, 1); err != nil {
		t.Fatalf("Select level 0: %v", err)
	}

	levels := nav.Levels()
	if len(levels) != 2 {
		t.Fatalf("expected two levels, got %d", len(levels))
	}
	if fetcher.partsCalls != 0 {
		t.Fatal("selecting a non-leaf must not fetch parts")
	}

	// depth 2 non-leaf expands again, still no parts
	if err := nav.Select(ctx, 1, 2); err != nil {
		t.Fatalf("Select level 1: %v", err)
	}
	if len(nav.Levels()) != 3 {
		t.Fatalf("expected three levels, got %d", len(nav.Levels()))
	}
	if fetcher.partsCalls != 0 {
		t.Fatal("parts must not be exposed before the depth-3 leaf is chosen")
	}

	// depth 3 leaf finally exposes parts
	if err := nav.Select(ctx, 2, 3); err != nil {
		t.Fatalf("Select level 2: %v", err)
	}
	if fetcher.partsCalls != 1 {
		t.Fatalf("expected one parts fetch, got %d", fetcher.partsCalls)
	}
	if got := nav.PartOptions(); len(got) != 1 || got[0].PartNo != "P001" {
		t.Fatalf("unexpected parts %v", got)
	}
	if len(nav.Levels()) != 3 {
		t.Fatalf("leaf selection must not add a level, got %d", len(nav.Levels()))
	}
}

func TestSelectingSiblingBranchDropsDeeperLevels(t *testing.T) {
	nav, _ := NewNavigator(threeLevelFetcher())
	ctx := context.Background()

	_ = nav.SelectCategory(ctx, "Industrial Engine")
	_ = nav.Select(ctx, 0, 1)
	_ = nav.Select(ctx, 1, 2) // Bull, publishes level 3

	// switching to the sibling leaf Preet invalidates the Bull subtree
	if err := nav.Select(ctx, 1, 4); err != nil {
		t.Fatalf("Select sibling: %v", err)
	}
	if len(nav.Levels()) != 2 {
		t.Fatalf("expected levels beyond the reselected one dropped, got %d", len(nav.Levels()))
	}
	if got := nav.PartOptions(); len(got) != 1 || got[0].PartNo != "P002" {
		t.Fatalf("expected Preet parts, got %v", got)
	}
	if sel := nav.Selection(); len(sel) != 2 || sel[1] != 4 {
		t.Fatalf("unexpected selection %v", sel)
	}
}

func TestClearDropsSelectionAndParts(t *testing.T) {
	nav, _ := NewNavigator(threeLevelFetcher())
	ctx := context.Background()

	_ = nav.SelectCategory(ctx, "Power Generator")
	_ = nav.Select(ctx, 0, 10)
	if len(nav.PartOptions()) == 0 {
		t.Fatal("expected parts for selected leaf")
	}

	nav.Clear(0)
	if len(nav.PartOptions()) != 0 {
		t.Fatal("clear must drop fetched parts")
	}
	if len(nav.Selection()) != 0 {
		t.Fatal("clear must drop the selection")
	}
	if len(nav.Levels()) != 1 {
		t.Fatal("clear must keep the options published at the cleared level")
	}
}

func TestVanishedNodeIDTreatedAsCleared(t *testing.T) {
	nav, _ := NewNavigator(threeLevelFetcher())
	ctx := context.Background()

	_ = nav.SelectCategory(ctx, "Power Generator")
	_ = nav.Select(ctx, 0, 10)

	if err := nav.Select(ctx, 0, 999); err != nil {
		t.Fatalf("vanished id should clear silently, got %v", err)
	}
	if len(nav.Selection()) != 0 || len(nav.PartOptions()) != 0 {
		t.Fatal("vanished id must drop selection and parts")
	}
}

func TestFailedTreeFetchResetsToEmpty(t *testing.T) {
	fetcher := threeLevelFetcher()
	fetcher.treeErr = errors.New("boom")
	nav, _ := NewNavigator(fetcher)

	if err := nav.SelectCategory(context.Background(), "Industrial Engine"); err == nil {
		t.Fatal("expected fetch error to surface")
	}
	if len(nav.Levels()) != 0 {
		t.Fatal("failed fetch must leave the navigator empty")
	}
}

func TestFailedPartsFetchResetsParts(t *testing.T) {
	fetcher := threeLevelFetcher()
	fetcher.partsErr = errors.New("boom")
	nav, _ := NewNavigator(fetcher)
	ctx := context.Background()

	_ = nav.SelectCategory(ctx, "Power Generator")
	if err := nav.Select(ctx, 0, 10); err == nil {
		t.Fatal("expected parts fetch error to surface")
	}
	if len(nav.PartOptions()) != 0 {
		t.Fatal("failed parts fetch must leave parts empty")
	}
}

func TestStalePartsResponseIsDiscarded(t *testing.T) {
	fetcher := threeLevelFetcher()
	fetcher.partsGate = make(chan struct{})
	fetcher.partsBegan = make(chan struct{}, 1)
	nav, _ := NewNavigator(fetcher)
	ctx := context.Background()

	_ = nav.SelectCategory(ctx, "Power Generator")

	done := make(chan error, 1)
	go func() { done <- nav.Select(ctx, 0, 10) }()
	<-fetcher.partsBegan

	// user navigates away while the parts fetch is in flight
	nav.Clear(0)
	close(fetcher.partsGate)

	if err := <-done; err != nil {
		t.Fatalf("superseded select should not error: %v", err)
	}
	if len(nav.PartOptions()) != 0 {
		t.Fatal("stale parts response must be discarded")
	}
}

func TestSelectBeyondPublishedLevelsRejected(t *testing.T) {
	nav, _ := NewNavigator(threeLevelFetcher())
	if err := nav.Select(context.Background(), 0, 1); err == nil {
		t.Fatal("expected validation error before any category is selected")
	}
}
