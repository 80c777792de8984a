// Package services – ChatService
//
// This file implements ChatService, the application-level component that owns
// the chat flow: FAQ lookup first, completion fallback second, persistence of
// generation-backed exchanges last. It also serves history reads and the
// idempotent-replay lookup used by the chat endpoint.
//
// Resource discipline: no database session is held while the completion call
// is in flight. The FAQ lookup and the history insert are separate, short
// units of work on either side of the upstream call.
//
// Observability: public methods are OpenTelemetry-instrumented; spans record
// whether an exchange was FAQ-served or generated.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-faq-backend/internal/domain"
	"github.com/tbourn/go-faq-backend/internal/llm"
	"github.com/tbourn/go-faq-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Matcher resolves a message to a stored FAQ, if any. Implemented by
// faq.Matcher; abstracted here so tests can stub lookup behavior.
type Matcher interface {
	Match(ctx context.Context, message string) (*domain.FAQ, bool, error)
}

// ChatExchange is the outcome of one chat request.
type ChatExchange struct {
	// UserMessage is the trimmed message that was answered.
	UserMessage string
	// BotResponse is the FAQ answer or the generated completion, verbatim.
	BotResponse string
	// HistoryID is the persisted row ID; zero for FAQ-served answers,
	// which are never recorded in history.
	HistoryID uint
	// FromFAQ reports whether the answer came from the FAQ table.
	FromFAQ bool
}

// ChatService coordinates FAQ matching, completion fallback, and history.
type ChatService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Matcher resolves messages against the FAQ table.
	Matcher Matcher
	// Completer produces generated replies on FAQ miss.
	Completer llm.Completer
}

// NewChatService constructs a ChatService.
func NewChatService(db *gorm.DB, m Matcher, c llm.Completer) *ChatService {
	return &ChatService{DB: db, Matcher: m, Completer: c}
}

// Answer resolves one chat message.
//
// Flow: trim and reject empty input → FAQ lookup (hit: return the stored
// answer verbatim, write nothing) → completion call (failure:
// ErrUpstreamUnavailable, write nothing) → persist exactly one history row
// with the verbatim message and reply → return both.
//
// userID optionally attributes the history row; nil, or an ID that names no
// stored user, leaves user_id null.
func (s *ChatService) Answer(ctx context.Context, userID *uint, message string) (*ChatExchange, error) {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "Answer")
	defer span.End()

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	f, hit, err := s.Matcher.Match(ctx, message)
	if err != nil {
		return nil, err
	}
	if hit {
		span.SetAttributes(attribute.Bool("chat.faq_hit", true))
		return &ChatExchange{
			UserMessage: message,
			BotResponse: f.Answer,
			FromFAQ:     true,
		}, nil
	}
	span.SetAttributes(attribute.Bool("chat.faq_hit", false))

	// No session is held here; the upstream call may be slow.
	reply, err := s.Completer.Complete(ctx, message)
	if err != nil {
		span.RecordError(err)
		return nil, ErrUpstreamUnavailable
	}

	// The caller-supplied ID is unauthenticated. An unknown ID falls back to
	// a null user_id so the FK on chat_history cannot reject the insert and
	// drop an already-generated reply.
	if userID != nil {
		if _, err := repo.GetUserByID(ctx, s.DB, *userID); err != nil {
			userID = nil
		}
	}

	h, err := repo.CreateChatHistory(ctx, s.DB, userID, message, reply)
	if err != nil {
		return nil, err
	}

	return &ChatExchange{
		UserMessage: message,
		BotResponse: reply,
		HistoryID:   h.ID,
	}, nil
}

// History returns every recorded exchange, most recent first. An empty store
// yields an empty slice.
func (s *ChatService) History(ctx context.Context) ([]domain.ChatHistory, error) {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "History", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	return repo.ListChatHistory(ctx, s.DB)
}

// Replay returns the exchange previously recorded for (userKey, idemKey), or
// repo.ErrNotFound when no valid record exists. Used by the chat handler to
// serve idempotent retries without re-invoking the completion service.
func (s *ChatService) Replay(ctx context.Context, userKey, idemKey string) (*domain.ChatHistory, error) {
	rec, err := repo.GetIdempotency(ctx, s.DB, userKey, idemKey, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return repo.GetChatHistory(ctx, s.DB, rec.HistoryID)
}

// RememberExchange records (userKey, idemKey) → historyID for ttl so that a
// retried request replays the same exchange. A concurrent duplicate insert is
// not an error.
func (s *ChatService) RememberExchange(ctx context.Context, userKey, idemKey string, historyID uint, ttl time.Duration) error {
	_, err := repo.CreateIdempotency(ctx, s.DB, userKey, idemKey, historyID, 200, ttl)
	if errors.Is(err, repo.ErrDuplicate) {
		return nil
	}
	return err
}
