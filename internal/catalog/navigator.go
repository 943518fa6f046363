package catalog

import (
	"context"
	"fmt"
	"sync"

	pkgerrors "github.com/enginequip/quotation-backend/pkg/errors"
)

// Fetcher supplies tree and part data for navigation. Service satisfies it.
type Fetcher interface {
	Tree(ctx context.Context, category string) ([]Node, error)
	Parts(ctx context.Context, nodeID int) ([]PartOption, error)
}

// Navigator resolves a variable-depth catalog tree level by level. Each
// selection publishes the next level's options or, at a leaf, the parts
// attached to it. Every mutation bumps a generation counter and fetch
// results are applied only while their generation is still current, so a
// stale in-flight response can never repopulate state the user has since
// navigated away from.
type Navigator struct {
	fetcher Fetcher

	mu       sync.Mutex
	gen      uint64
	category string
	levels   [][]Node
	selected []int
	parts    []PartOption
}

// NewNavigator builds a navigator over the provided fetcher.
func NewNavigator(fetcher Fetcher) (*Navigator, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("catalog fetcher required")
	}
	return &Navigator{fetcher: fetcher}, nil
}

// SelectCategory starts navigation over a category, dropping all previous
// levels, selections and parts. A failed fetch leaves the navigator empty.
func (n *Navigator) SelectCategory(ctx context.Context, category string) error {
	n.mu.Lock()
	n.gen++
	gen := n.gen
	n.category = category
	n.levels, n.selected, n.parts = nil, nil, nil
	n.mu.Unlock()

	roots, err := n.fetcher.Tree(ctx, category)

	n.mu.Lock()
	defer n.mu.Unlock()
	if gen != n.gen {
		return nil
	}
	if err != nil {
		n.levels, n.selected, n.parts = nil, nil, nil
		return err
	}
	n.levels = [][]Node{roots}
	return nil
}

// Select picks the node with the given id at the given level. A non-leaf
// publishes its children as the next level; a leaf fetches its parts. In
// both cases everything deeper than the touched levels is discarded. An id
// that no longer resolves against the level is treated as a cleared
// selection.
func (n *Navigator) Select(ctx context.Context, level, nodeID int) error {
	n.mu.Lock()
	if level < 0 || level >= len(n.levels) {
		n.mu.Unlock()
		return pkgerrors.New(pkgerrors.CodeValidation, "no such catalog level")
	}

	node, ok := findNode(n.levels[level], nodeID)
	if !ok {
		n.clearFromLocked(level)
		n.mu.Unlock()
		return nil
	}

	n.gen++
	gen := n.gen
	n.selected = append(n.selected[:level:level], nodeID)
	n.levels = n.levels[:level+1:level+1]
	n.parts = nil

	if !node.IsLeaf() {
		n.levels = append(n.levels, node.Children)
		n.mu.Unlock()
		return nil
	}
	n.mu.Unlock()

	parts, err := n.fetcher.Parts(ctx, nodeID)

	n.mu.Lock()
	defer n.mu.Unlock()
	if gen != n.gen {
		return nil
	}
	if err != nil {
		n.parts = nil
		return err
	}
	n.parts = parts
	return nil
}

// Clear drops the selection at the given level and everything deeper,
// including fetched parts. The options published at that level remain.
func (n *Navigator) Clear(level int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if level < 0 || level >= len(n.levels) {
		return
	}
	n.clearFromLocked(level)
}

// Reset empties the navigator entirely.
func (n *Navigator) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.gen++
	n.category = ""
	n.levels, n.selected, n.parts = nil, nil, nil
}

// Category returns the active category label.
func (n *Navigator) Category() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.category
}

// Levels returns the published options per level.
func (n *Navigator) Levels() [][]Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([][]Node, len(n.levels))
	copy(out, n.levels)
	return out
}

// Selection returns the selected node id per level, shallowest first.
func (n *Navigator) Selection() []int {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]int, len(n.selected))
	copy(out, n.selected)
	return out
}

// PartOptions returns the parts fetched for the selected leaf, if any.
func (n *Navigator) PartOptions() []PartOption {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]PartOption, len(n.parts))
	copy(out, n.parts)
	return out
}

func (n *Navigator) clearFromLocked(level int) {
	n.gen++
	if level < len(n.selected) {
		n.selected = n.selected[:level:level]
	}
	n.levels = n.levels[:level+1:level+1]
	n.parts = nil
}

func findNode(nodes []Node, id int) (Node, bool) {
	for _, node := range nodes {
		if node.ID == id {
			return node, true
		}
	}
	return Node{}, false
}
