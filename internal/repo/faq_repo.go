// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the FAQ model.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-faq-backend/internal/domain"
)

// ErrDuplicate indicates a unique-constraint violation on insert.
var ErrDuplicate = errors.New("duplicate")

// CreateFAQ inserts a new question/answer pair. CreatedAt is set here, in UTC.
// An exact duplicate of an existing question (byte-identical, caught by the
// unique index) returns ErrDuplicate; case-insensitive duplicates are the
// service layer's responsibility.
func CreateFAQ(ctx context.Context, db *gorm.DB, question, answer string) (*domain.FAQ, error) {
	f := &domain.FAQ{
		Question:  question,
		Answer:    answer,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(f).Error; err != nil {
		// glebarez/sqlite often returns plain-text errors for UNIQUE violations.
		low := strings.ToLower(err.Error())
		if errors.Is(err, gorm.ErrDuplicatedKey) ||
			strings.Contains(low, "unique constraint failed") ||
			strings.Contains(low, "constraint failed: unique") ||
			strings.Contains(low, "duplicate key value") {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return f, nil
}

// ListFAQs returns every FAQ row in insertion (ID ascending) order. An empty
// store yields an empty slice.
func ListFAQs(ctx context.Context, db *gorm.DB) ([]domain.FAQ, error) {
	var out []domain.FAQ
	err := db.WithContext(ctx).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

// CountFAQs returns the total number of stored FAQs.
func CountFAQs(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.FAQ{}).
		Count(&total).Error
	return total, err
}
