// Package faq resolves incoming chat messages against the stored FAQ table.
//
// Matching is exact case-insensitive equality: the message and each stored
// question are trimmed of surrounding whitespace and compared under full
// Unicode case folding. Substring or fuzzy matching is deliberately not
// performed, so a message that merely contains a FAQ question does not match.
//
// SQLite's LOWER() only folds ASCII, so the comparison happens in Go over the
// (small) FAQ table rather than in SQL; this also keeps behavior identical
// across the sqlite and postgres drivers.
package faq

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"gorm.io/gorm"

	"github.com/tbourn/go-faq-backend/internal/domain"
	"github.com/tbourn/go-faq-backend/internal/repo"
)

// folder performs locale-independent Unicode case folding.
var folder = cases.Fold()

// Fold normalizes a string for case-insensitive comparison: surrounding
// whitespace is trimmed and the remainder is case-folded. No other
// normalization is applied.
func Fold(s string) string {
	return folder.String(strings.TrimSpace(s))
}

// Equal reports whether two strings are equal under Fold.
func Equal(a, b string) bool {
	return Fold(a) == Fold(b)
}

// Matcher looks up chat messages in the FAQ table.
type Matcher struct {
	DB *gorm.DB
}

// NewMatcher constructs a Matcher over the given database handle.
func NewMatcher(db *gorm.DB) *Matcher {
	return &Matcher{DB: db}
}

// Match returns the first FAQ whose question equals message under Fold, in ID
// order. The boolean result reports whether a match was found; storage errors
// are propagated unchanged.
func (m *Matcher) Match(ctx context.Context, message string) (*domain.FAQ, bool, error) {
	folded := Fold(message)
	if folded == "" {
		return nil, false, nil
	}

	faqs, err := repo.ListFAQs(ctx, m.DB)
	if err != nil {
		return nil, false, err
	}
	for i := range faqs {
		if Fold(faqs[i].Question) == folded {
			return &faqs[i], true, nil
		}
	}
	return nil, false, nil
}
