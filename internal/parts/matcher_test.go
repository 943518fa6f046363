package parts

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

type stubSearcher struct {
	mu      sync.Mutex
	calls   []string
	results map[string][]Part
	err     error
	gate    chan struct{}
	began   chan struct{}
}

func (s *stubSearcher) Search(_ context.Context, query string) ([]Part, error) {
	s.mu.Lock()
	s.calls = append(s.calls, query)
	s.mu.Unlock()
	if s.began != nil {
		s.began <- struct{}{}
	}
	if s.gate != nil {
		<-s.gate
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.results[query], nil
}

func (s *stubSearcher) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func piston() Part {
	return Part{ID: 1, PartNo: "P001", PartName: "Piston", Price: decimal.NewFromInt(500)}
}

func TestDebounceCollapsesKeystrokes(t *testing.T) {
	searcher := &stubSearcher{results: map[string][]Part{"piston": {piston()}}}
	m, err := NewMatcher(searcher, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}
	defer m.Stop()

	ctx := context.Background()
	m.Input(ctx, "p")
	m.Input(ctx, "pi")
	m.Input(ctx, "piston")

	waitFor(t, time.Second, func() bool { return len(m.Suggestions()) == 1 })

	if got := searcher.callCount(); got != 1 {
		t.Fatalf("expected one search after quiescence, got %d", got)
	}
	if m.Suggestions()[0].PartNo != "P001" {
		t.Fatalf("unexpected suggestion %v", m.Suggestions())
	}
}

func TestStaleResultDiscarded(t *testing.T) {
	searcher := &stubSearcher{
		results: map[string][]Part{
			"old": {piston()},
			"new": {{ID: 2, PartNo: "P002", PartName: "Ring set", Price: decimal.NewFromInt(250)}},
		},
		gate:  make(chan struct{}),
		began: make(chan struct{}, 2),
	}
	m, _ := NewMatcher(searcher, 5*time.Millisecond)
	defer m.Stop()

	ctx := context.Background()
	m.Input(ctx, "old")
	<-searcher.began

	// newer input arrives while the old search is still in flight
	m.Input(ctx, "new")
	close(searcher.gate)
	<-searcher.began

	waitFor(t, time.Second, func() bool {
		s := m.Suggestions()
		return len(s) == 1 && s[0].PartNo == "P002"
	})
	if got := m.Suggestions(); got[0].PartNo != "P002" {
		t.Fatalf("stale result overwrote fresher one: %v", got)
	}
}

func TestBlankInputClearsSuggestions(t *testing.T) {
	searcher := &stubSearcher{results: map[string][]Part{"piston": {piston()}}}
	m, _ := NewMatcher(searcher, 5*time.Millisecond)
	defer m.Stop()

	ctx := context.Background()
	m.Input(ctx, "piston")
	waitFor(t, time.Second, func() bool { return len(m.Suggestions()) == 1 })

	before := searcher.callCount()
	m.Input(ctx, "   ")
	if len(m.Suggestions()) != 0 {
		t.Fatal("blank input must clear suggestions immediately")
	}
	time.Sleep(20 * time.Millisecond)
	if searcher.callCount() != before {
		t.Fatal("blank input must not trigger a search")
	}
}

func TestSearchFailureDegradesToEmpty(t *testing.T) {
	searcher := &stubSearcher{err: errors.New("boom")}
	m, _ := NewMatcher(searcher, 5*time.Millisecond)
	defer m.Stop()

	m.Input(context.Background(), "piston")
	waitFor(t, time.Second, func() bool { return searcher.callCount() == 1 })
	time.Sleep(10 * time.Millisecond)

	if len(m.Suggestions()) != 0 {
		t.Fatal("failed search must leave suggestions empty")
	}
}

func TestSelectCopiesFieldsAndSetsMatched(t *testing.T) {
	searcher := &stubSearcher{}
	m, _ := NewMatcher(searcher, 5*time.Millisecond)
	defer m.Stop()

	m.Select(piston())

	form := m.Form()
	if !form.Matched {
		t.Fatal("selection must set the matched flag")
	}
	if form.PartNo != "P001" || form.Description != "Piston" || !form.Price.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("unexpected form %+v", form)
	}
}

func TestEditingAfterMatchClearsFlag(t *testing.T) {
	searcher := &stubSearcher{}
	m, _ := NewMatcher(searcher, 5*time.Millisecond)
	defer m.Stop()

	m.Select(piston())
	m.SetDescription("Piston, reconditioned")
	if m.Form().Matched {
		t.Fatal("editing the description must clear the matched flag")
	}

	m.Select(piston())
	m.SetPrice(decimal.NewFromInt(450))
	if m.Form().Matched {
		t.Fatal("editing the price must clear the matched flag")
	}

	m.Select(piston())
	m.SetPartNo("P001-B")
	if !m.Form().Matched {
		t.Fatal("editing the part number alone should keep the matched flag")
	}
}

func TestCommitRequiresDescription(t *testing.T) {
	searcher := &stubSearcher{}
	m, _ := NewMatcher(searcher, 5*time.Millisecond)
	defer m.Stop()

	if _, err := m.Commit(); err == nil {
		t.Fatal("expected validation error for empty description")
	}

	m.SetDescription("Transport")
	form, err := m.Commit()
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if form.Description != "Transport" {
		t.Fatalf("unexpected committed form %+v", form)
	}
	if m.Form().Description != "" {
		t.Fatal("commit must reset the form")
	}
}
