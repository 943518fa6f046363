package parts

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	pkgerrors "github.com/enginequip/quotation-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// DefaultDebounceWindow is the quiescence window before a search fires.
const DefaultDebounceWindow = 300 * time.Millisecond

// Form is the in-progress custom-part entry the matcher fills. Matched
// means the fields were copied from a search candidate and are backed by
// catalog data rather than free text.
type Form struct {
	Description string
	PartNo      string
	Price       decimal.Decimal
	Matched     bool
}

// Matcher reconciles free-text entry against the parts repository. Each
// keystroke resets the debounce timer; only after the window elapses
// uninterrupted does a search fire. Searches carry a monotonic generation
// and a result is dropped if newer input has arrived in the meantime.
type Matcher struct {
	searcher Service
	window   time.Duration

	mu          sync.Mutex
	timer       *time.Timer
	gen         uint64
	suggestions []Part
	form        Form
}

// NewMatcher builds a matcher over the provided search service. A zero
// window falls back to DefaultDebounceWindow.
func NewMatcher(searcher Service, window time.Duration) (*Matcher, error) {
	if searcher == nil {
		return nil, fmt.Errorf("part searcher required")
	}
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	return &Matcher{searcher: searcher, window: window}, nil
}

// Input feeds one keystroke's worth of query text. Blank input clears the
// suggestion list immediately without searching.
func (m *Matcher) Input(ctx context.Context, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.gen++
	gen := m.gen
	if m.timer != nil {
		m.timer.Stop()
	}

	if strings.TrimSpace(text) == "" {
		m.suggestions = nil
		return
	}

	m.timer = time.AfterFunc(m.window, func() {
		m.search(ctx, text, gen)
	})
}

func (m *Matcher) search(ctx context.Context, query string, gen uint64) {
	m.mu.Lock()
	if gen != m.gen {
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	results, err := m.searcher.Search(ctx, query)

	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.gen {
		return
	}
	if err != nil {
		m.suggestions = nil
		return
	}
	m.suggestions = results
}

// Suggestions returns the current candidate list.
func (m *Matcher) Suggestions() []Part {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Part, len(m.suggestions))
	copy(out, m.suggestions)
	return out
}

// Select copies a candidate's fields into the form and marks it matched.
func (m *Matcher) Select(part Part) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.form.PartNo = part.PartNo
	m.form.Description = part.PartName
	m.form.Price = part.Price
	m.form.Matched = true
}

// SetDescription edits the description by hand, clearing the matched flag.
func (m *Matcher) SetDescription(description string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.form.Description = description
	m.form.Matched = false
}

// SetPrice edits the price by hand, clearing the matched flag.
func (m *Matcher) SetPrice(price decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.form.Price = price
	m.form.Matched = false
}

// SetPartNo edits the part number. Matching stays advisory so the flag
// is untouched.
func (m *Matcher) SetPartNo(partNo string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.form.PartNo = partNo
}

// Form returns the current form state.
func (m *Matcher) Form() Form {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.form
}

// Commit finalizes the form for addition to the cart. Only a non-empty
// description is required; matching is advisory. The form and suggestion
// list reset on success.
func (m *Matcher) Commit() (Form, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if strings.TrimSpace(m.form.Description) == "" {
		return Form{}, pkgerrors.New(pkgerrors.CodeValidation, "description is required")
	}

	committed := m.form
	m.form = Form{}
	m.suggestions = nil
	m.gen++
	if m.timer != nil {
		m.timer.Stop()
	}
	return committed, nil
}

// Stop cancels any pending debounce timer.
func (m *Matcher) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	if m.timer != nil {
		m.timer.Stop()
	}
}
