// Package domain defines the persistence models for users, chat history, and
// FAQs. These types are mapped with GORM and form the core data layer of the
// FAQ chat backend.
package domain

import "time"

// User is an identity record. No endpoint in this service creates users; rows
// are provisioned externally and exist only as an optional foreign-key target
// for chat history attribution.
//
// Fields:
//   - ID: auto-increment primary key.
//   - Username: unique login name, required.
//   - Email: optional, unique when present.
//   - CreatedAt: assigned by the persistence layer at insert time.
type User struct {
	ID        uint      `json:"id"         gorm:"primaryKey"`
	Username  string    `json:"username"   gorm:"type:varchar(64);not null;uniqueIndex:ux_users_username"`
	Email     *string   `json:"email,omitempty" gorm:"type:varchar(255);uniqueIndex:ux_users_email"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// ChatHistory records one generation-backed exchange: the verbatim user
// message and the verbatim bot response. Rows are insert-only; they are never
// updated or deleted, and are read in reverse chronological order.
//
// FAQ-served answers are intentionally not recorded here; history tracks
// completions produced by the upstream model only.
//
// Fields:
//   - ID: auto-increment primary key.
//   - UserID: optional owning user; null when the request was anonymous.
//   - UserMessage / BotResponse: unbounded text, both required.
//   - CreatedAt: assigned by the persistence layer at insert time.
type ChatHistory struct {
	ID          uint      `json:"id"           gorm:"primaryKey"`
	UserID      *uint     `json:"user_id"      gorm:"index:idx_history_user"`
	UserMessage string    `json:"user_message" gorm:"type:text;not null"`
	BotResponse string    `json:"bot_response" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"created_at"   gorm:"index:idx_history_created"`

	// User is the optional owner. History must survive user removal upstream,
	// so the association is nullable and not cascaded.
	User *User `json:"-" gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the database table name for ChatHistory.
func (ChatHistory) TableName() string { return "chat_history" }

// FAQ is a pre-authored question/answer pair served without invoking the
// generation service.
//
// The unique index on Question is case-sensitive as declared; the business
// rule of case-insensitive uniqueness is enforced by FAQService.Add inside a
// serialized transaction, with this index as a backstop for exact duplicates.
type FAQ struct {
	ID        uint      `json:"id"         gorm:"primaryKey"`
	Question  string    `json:"question"   gorm:"type:text;not null;uniqueIndex:ux_faqs_question"`
	Answer    string    `json:"answer"     gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for FAQ.
func (FAQ) TableName() string { return "faqs" }
