// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the ChatHistory
// model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a row is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-faq-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateChatHistory inserts one exchange row. CreatedAt is set here, in UTC;
// callers never supply timestamps. userID may be nil for anonymous exchanges.
//
// On success, it returns the persisted row. On failure, it returns a DB error.
func CreateChatHistory(ctx context.Context, db *gorm.DB, userID *uint, userMessage, botResponse string) (*domain.ChatHistory, error) {
	h := &domain.ChatHistory{
		UserID:      userID,
		UserMessage: userMessage,
		BotResponse: botResponse,
		CreatedAt:   time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(h).Error; err != nil {
		return nil, err
	}
	return h, nil
}

// ListChatHistory returns all exchanges ordered by creation time descending
// (most recent first), with ID as a deterministic tiebreak for rows created
// within the same clock tick. An empty store yields an empty slice.
func ListChatHistory(ctx context.Context, db *gorm.DB) ([]domain.ChatHistory, error) {
	var out []domain.ChatHistory
	err := db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

// CountChatHistory returns the total number of persisted exchanges.
func CountChatHistory(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.ChatHistory{}).
		Count(&total).Error
	return total, err
}

// GetChatHistory fetches a single exchange by ID, or ErrNotFound.
func GetChatHistory(ctx context.Context, db *gorm.DB, id uint) (*domain.ChatHistory, error) {
	var h domain.ChatHistory
	if err := db.WithContext(ctx).First(&h, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &h, nil
}
