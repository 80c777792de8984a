// Chat HTTP handlers.
//
// This file exposes the conversational endpoints:
//   - POST /chat      (answer a message: FAQ first, completion fallback)
//   - GET  /history   (list recorded exchanges, newest first, ETag support)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses (including conditional responses).
//
// Idempotency:
// If the client supplies an Idempotency-Key header and a previous successful
// exchange exists for (user, key), the handler returns that recorded exchange
// and sets `Idempotency-Replayed: true`. FAQ-served answers are not recorded,
// so only generation-backed exchanges participate in replay.
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tbourn/go-faq-backend/internal/domain"
	"github.com/tbourn/go-faq-backend/internal/http/middleware"
	"github.com/tbourn/go-faq-backend/internal/repo"
	"github.com/tbourn/go-faq-backend/internal/services"
	"github.com/tbourn/go-faq-backend/internal/sysutil"
)

//
// Service contracts (context-aware)
//

// ChatService defines the conversational operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ChatService interface {
	// Answer resolves one message: FAQ hit, or completion fallback + persist.
	Answer(ctx context.Context, userID *uint, message string) (*services.ChatExchange, error)
	// History returns every recorded exchange, most recent first.
	History(ctx context.Context) ([]domain.ChatHistory, error)
	// Replay returns the exchange previously stored for (userKey, idemKey).
	Replay(ctx context.Context, userKey, idemKey string) (*domain.ChatHistory, error)
	// RememberExchange records (userKey, idemKey) → historyID for ttl.
	RememberExchange(ctx context.Context, userKey, idemKey string, historyID uint, ttl time.Duration) error
}

// FAQService defines FAQ administration operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type FAQService interface {
	// Add inserts a question/answer pair, rejecting case-insensitive duplicates.
	Add(ctx context.Context, question, answer string) (*domain.FAQ, error)
	// List returns all stored FAQ entries in insertion order.
	List(ctx context.Context) ([]domain.FAQ, error)
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for chat and FAQ administration. It depends
// on abstract service interfaces to keep transport concerns separate from
// business logic.
type Handlers struct {
	chatSvc ChatService
	faqSvc  FAQService

	// IdempotencyTTL bounds how long a stored exchange may be replayed.
	IdempotencyTTL time.Duration
}

// New constructs and returns a Handlers instance bound to the given services.
func New(chatSvc ChatService, faqSvc FAQService, idemTTL time.Duration) *Handlers {
	if idemTTL <= 0 {
		idemTTL = 24 * time.Hour
	}
	return &Handlers{chatSvc: chatSvc, faqSvc: faqSvc, IdempotencyTTL: idemTTL}
}

// userKey extracts the caller identity used to scope idempotency records.
// There is no authentication layer, so the optional X-User-ID header is
// trusted as-is and anonymous callers share the "anonymous" scope.
func userKey(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return "anonymous"
	}
	return sysutil.FirstNonEmpty(strings.TrimSpace(c.GetHeader("X-User-ID")), "anonymous")
}

// attributedUserID parses the optional X-User-ID header as a numeric user ID
// for history attribution. Non-numeric or absent values yield nil and the
// exchange is stored unattributed.
func attributedUserID(c *gin.Context) *uint {
	h := strings.TrimSpace(c.GetHeader("X-User-ID"))
	if h == "" {
		return nil
	}
	n, err := strconv.ParseUint(h, 10, 32)
	if err != nil || n == 0 {
		return nil
	}
	id := uint(n)
	return &id
}

//
// DTOs
//

// ChatRequest is the JSON payload for answering a message.
type ChatRequest struct {
	// UserMessage is the user input. It must be non-empty after trimming.
	UserMessage string `json:"user_message" binding:"required,min=1" example:"What is your refund policy?"`
}

// ChatResponse is the JSON envelope returned for an answered message.
type ChatResponse struct {
	// UserMessage echoes the (trimmed) input that was answered.
	UserMessage string `json:"user_message" example:"What is your refund policy?"`
	// BotResponse is the FAQ answer or the generated completion.
	BotResponse string `json:"bot_response" example:"You can request a refund within 30 days."`
}

//
// Handlers
//

// PostChat godoc
// @ID          postChat
// @Summary     Answer a chat message
// @Description Answers the message from the FAQ table when a stored question
// @Description matches case-insensitively; otherwise generates a completion and
// @Description records the exchange in history.
// @Description Supports idempotency via the Idempotency-Key header (same key → same result).
// @Tags        Chat
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID        header  string  false "Optional caller identity (numeric IDs attribute history)"  example(42)
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries (UUID recommended)"  example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       body             body    handlers.ChatRequest  true  "Chat message payload"
//
// @Success     200  {object}  handlers.ChatResponse   "Answer"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal or upstream error"
// @Router      /chat [post]
func (h *Handlers) PostChat(c *gin.Context) {
	ctx := c.Request.Context()

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "message required")
		return
	}
	message := strings.TrimSpace(req.UserMessage)
	if message == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "message required")
		return
	}

	caller := userKey(c)

	// Idempotency replay path: serve the stored exchange when present.
	idemKey, _ := middleware.GetIdempotencyKey(c)
	if idemKey != "" {
		if prev, err := h.chatSvc.Replay(ctx, caller, idemKey); err == nil && prev != nil {
			c.Header("Idempotency-Replayed", "true")
			ok(c, http.StatusOK, ChatResponse{
				UserMessage: prev.UserMessage,
				BotResponse: prev.BotResponse,
			})
			return
		}
	}

	ex, err := h.chatSvc.Answer(ctx, attributedUserID(c), message)
	if err != nil {
		switch err {
		case services.ErrEmptyMessage:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "message required")
		case services.ErrUpstreamUnavailable:
			middleware.CountChatAnswer("failed")
			fail(c, http.StatusInternalServerError, ErrCodeUpstreamUnavailable, "completion service unavailable")
		default:
			middleware.CountChatAnswer("failed")
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}

	if ex.FromFAQ {
		middleware.CountChatAnswer("faq")
	} else {
		middleware.CountChatAnswer("generated")
	}

	// Idempotency (store path) – best effort; FAQ hits have no history row.
	if idemKey != "" && ex.HistoryID != 0 {
		_ = h.chatSvc.RememberExchange(ctx, caller, idemKey, ex.HistoryID, h.IdempotencyTTL)
	}

	ok(c, http.StatusOK, ChatResponse{
		UserMessage: ex.UserMessage,
		BotResponse: ex.BotResponse,
	})
}

// GetHistory godoc
// @ID          getHistory
// @Summary     List chat history
// @Description Returns every recorded exchange, most recent first.
// @Tags        Chat
// @Produce     json
//
// @Success     200  {array}   domain.ChatHistory
// @Success     304  "Not modified"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /history [get]
func (h *Handlers) GetHistory(c *gin.Context) {
	ctx := c.Request.Context()

	// ETag pre-check (best effort).
	var db *gorm.DB
	if svc, okSvc := h.chatSvc.(*services.ChatService); okSvc {
		db = svc.DB
	}
	if db != nil {
		count, maxTS, err := repo.HistoryStats(ctx, db)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"history:%d:%d"`, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	items, err := h.chatSvc.History(ctx)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	if items == nil {
		items = []domain.ChatHistory{}
	}
	ok(c, http.StatusOK, items)
}
