// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the User model.
//
// Users are provisioned out of band (there is no user-creation endpoint);
// CreateUser exists for seeding and tests, GetUserByID and GetUserByUsername
// for optional history attribution.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-faq-backend/internal/domain"
)

// CreateUser inserts a user row. Email may be nil. CreatedAt is set here.
func CreateUser(ctx context.Context, db *gorm.DB, username string, email *string) (*domain.User, error) {
	u := &domain.User{
		Username:  username,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// GetUserByID fetches a user by primary key, or ErrNotFound. Callers use it
// to verify a claimed identity before attributing history rows to it.
func GetUserByID(ctx context.Context, db *gorm.DB, id uint) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByUsername fetches a user by username, or ErrNotFound.
func GetUserByUsername(ctx context.Context, db *gorm.DB, username string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).First(&u, "username = ?", username).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
