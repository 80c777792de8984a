// Package services – FAQService
//
// This file implements FAQService, which manages the FAQ table. Adding a FAQ
// enforces case-insensitive uniqueness of the question with a serialized
// check-then-insert inside one transaction: the declared unique index is
// case-sensitive, so relying on it alone would admit "Refund policy" next to
// "refund policy". The index remains as a backstop for byte-exact duplicates.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-faq-backend/internal/domain"
	"github.com/tbourn/go-faq-backend/internal/faq"
	"github.com/tbourn/go-faq-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// FAQService provides FAQ administration operations.
type FAQService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// NewFAQService constructs a FAQService.
func NewFAQService(db *gorm.DB) *FAQService {
	return &FAQService{DB: db}
}

// Add inserts a new question/answer pair. Both fields are required after
// trimming. Returns ErrDuplicateFAQ when a stored question equals the new one
// under case folding; the table gains no row in that case.
func (s *FAQService) Add(ctx context.Context, question, answer string) (*domain.FAQ, error) {
	tr := otel.Tracer("services/FAQService")
	ctx, span := tr.Start(ctx, "Add")
	defer span.End()

	question = strings.TrimSpace(question)
	answer = strings.TrimSpace(answer)
	if question == "" || answer == "" {
		return nil, ErrMissingFields
	}

	var created *domain.FAQ
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := repo.ListFAQs(ctx, tx)
		if err != nil {
			return err
		}
		folded := faq.Fold(question)
		for i := range existing {
			if faq.Fold(existing[i].Question) == folded {
				return ErrDuplicateFAQ
			}
		}
		f, err := repo.CreateFAQ(ctx, tx, question, answer)
		if err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				return ErrDuplicateFAQ
			}
			return err
		}
		created = f
		return nil
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("faq.id", int(created.ID)))
	return created, nil
}

// List returns every FAQ row in insertion order; empty store yields an empty
// slice.
func (s *FAQService) List(ctx context.Context) ([]domain.FAQ, error) {
	tr := otel.Tracer("services/FAQService")
	ctx, span := tr.Start(ctx, "List")
	defer span.End()

	return repo.ListFAQs(ctx, s.DB)
}
