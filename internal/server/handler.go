package server

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/draftdesk/factcheck/internal/model"
)

// DocumentSource resolves a source URL to plain text when the caller
// provides a URL instead of inline source text
type DocumentSource interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// ReportChecker runs the verification pass
type ReportChecker interface {
	Check(ctx context.Context, article, sourceText string, lineByLine bool) (*model.Report, error)
}

// VerifyRequest is the check-numbers request body. Article plus either
// sourceText or sourceUrl are required.
type VerifyRequest struct {
	Article    string `json:"article"`
	SourceText string `json:"sourceText"`
	SourceURL  string `json:"sourceUrl"`
	LineByLine bool   `json:"lineByLine"`
}

// VerifyHandler serves the fact-verification endpoints
type VerifyHandler struct {
	checker ReportChecker
	source  DocumentSource // nil disables sourceUrl resolution
}

// NewVerifyHandler creates a verification handler
func NewVerifyHandler(checker ReportChecker, source DocumentSource) *VerifyHandler {
	return &VerifyHandler{checker: checker, source: source}
}

// CheckNumbers handles POST /api/check-numbers
func (h *VerifyHandler) CheckNumbers(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if strings.TrimSpace(req.Article) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "article is required"})
		return
	}
	if strings.TrimSpace(req.SourceText) == "" && req.SourceURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sourceText or sourceUrl is required"})
		return
	}

	sourceText := req.SourceText
	if sourceText == "" {
		if h.source == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "sourceUrl resolution is disabled"})
			return
		}
		fetched, err := h.source.FetchText(c.Request.Context(), req.SourceURL)
		if err != nil {
			slog.Error("error fetching source document", "url", req.SourceURL, "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "could not fetch source document"})
			return
		}
		sourceText = fetched
	}

	report, err := h.checker.Check(c.Request.Context(), req.Article, sourceText, req.LineByLine)
	if err != nil {
		// Verification is idempotent and side-effect-free; the caller can
		// safely retry the whole request
		slog.Error("verification failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "verification failed"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetHealth handles GET /health
func (h *VerifyHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
