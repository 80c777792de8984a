// FAQ administration HTTP handlers.
//
// This file exposes the admin endpoints for the FAQ table:
//   - POST /admin/faqs   (add a question/answer pair)
//   - GET  /admin/faqs   (list all pairs, ETag support)
//
// Duplicate detection is case-insensitive: a question that equals a stored one
// under Unicode case folding is rejected with 400 and code "duplicate_faq".
package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tbourn/go-faq-backend/internal/domain"
	"github.com/tbourn/go-faq-backend/internal/repo"
	"github.com/tbourn/go-faq-backend/internal/services"
)

//
// DTOs
//

// CreateFAQRequest is the JSON payload for adding an FAQ entry.
type CreateFAQRequest struct {
	// Question is the canonical question text (stored verbatim).
	Question string `json:"question" binding:"required,min=1" example:"What is your refund policy?"`
	// Answer is the reply served on a match.
	Answer string `json:"answer" binding:"required,min=1" example:"You can request a refund within 30 days."`
}

// CreateFAQResponse confirms a successful insert.
type CreateFAQResponse struct {
	Message string `json:"message" example:"FAQ added successfully"`
}

//
// Handlers
//

// CreateFAQ godoc
// @ID          createFAQ
// @Summary     Add an FAQ entry
// @Description Stores a question/answer pair. Questions are unique
// @Description case-insensitively; a duplicate is rejected and nothing is stored.
// @Tags        FAQs
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreateFAQRequest  true  "FAQ payload"
//
// @Success     200  {object}  handlers.CreateFAQResponse  "Created"
// @Failure     400  {object}  handlers.ErrorResponse      "Bad request or duplicate question"
// @Failure     500  {object}  handlers.ErrorResponse      "Internal error"
// @Router      /admin/faqs [post]
func (h *Handlers) CreateFAQ(c *gin.Context) {
	ctx := c.Request.Context()

	var req CreateFAQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "question and answer required")
		return
	}
	question := strings.TrimSpace(req.Question)
	answer := strings.TrimSpace(req.Answer)
	if question == "" || answer == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "question and answer required")
		return
	}

	if _, err := h.faqSvc.Add(ctx, question, answer); err != nil {
		switch err {
		case services.ErrDuplicateFAQ:
			fail(c, http.StatusBadRequest, ErrCodeDuplicateFAQ, "FAQ already exists")
		case services.ErrMissingFields:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "question and answer required")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}

	ok(c, http.StatusOK, CreateFAQResponse{Message: "FAQ added successfully"})
}

// ListFAQs godoc
// @ID          listFAQs
// @Summary     List FAQ entries
// @Description Returns every stored question/answer pair in insertion order.
// @Tags        FAQs
// @Produce     json
//
// @Success     200  {array}   domain.FAQ
// @Success     304  "Not modified"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /admin/faqs [get]
func (h *Handlers) ListFAQs(c *gin.Context) {
	ctx := c.Request.Context()

	// ETag pre-check (best effort).
	var db *gorm.DB
	if svc, okSvc := h.faqSvc.(*services.FAQService); okSvc {
		db = svc.DB
	}
	if db != nil {
		count, maxTS, err := repo.FAQStats(ctx, db)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"faqs:%d:%d"`, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	items, err := h.faqSvc.List(ctx)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	if items == nil {
		items = []domain.FAQ{}
	}
	ok(c, http.StatusOK, items)
}
