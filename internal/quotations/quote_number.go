package quotations

import (
	"fmt"
	"strings"

	"github.com/enginequip/quotation-backend/pkg/config"
)

const defaultQuotePrefix = "QTN/TEST"

// NumberGenerator formats quote numbers as PREFIX/YYYY/NNN with a
// zero-padded per-year sequence.
type NumberGenerator struct {
	prefix string
}

// NewNumberGenerator reads the prefix from configuration.
func NewNumberGenerator(cfg config.QuoteConfig) *NumberGenerator {
	prefix := strings.TrimRight(strings.TrimSpace(cfg.NumberPrefix), "/")
	if prefix == "" {
		prefix = defaultQuotePrefix
	}
	return &NumberGenerator{prefix: prefix}
}

// CounterKey is the metadata key holding the sequence for a year.
func (g *NumberGenerator) CounterKey(year int) string {
	return fmt.Sprintf("quote_seq_%d", year)
}

// Format renders the quote number for a year and sequence value.
func (g *NumberGenerator) Format(year, seq int) string {
	return fmt.Sprintf("%s/%d/%03d", g.prefix, year, seq)
}
