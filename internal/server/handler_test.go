package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"

	"github.com/draftdesk/factcheck/internal/model"
)

type stubChecker struct {
	report *model.Report
	err    error

	gotArticle    string
	gotSource     string
	gotLineByLine bool
}

func (s *stubChecker) Check(ctx context.Context, article, sourceText string, lineByLine bool) (*model.Report, error) {
	s.gotArticle = article
	s.gotSource = sourceText
	s.gotLineByLine = lineByLine
	return s.report, s.err
}

type stubSource struct {
	text string
	err  error
}

func (s *stubSource) FetchText(ctx context.Context, url string) (string, error) {
	return s.text, s.err
}

func emptyReport() *model.Report {
	return &model.Report{
		Numbers: model.NumberSection{Summary: model.NumberSummary{MatchRate: "0"}},
		Quotes:  model.QuoteSection{Summary: model.QuoteSummary{ExactRate: "0"}},
	}
}

func newTestRouter(checker ReportChecker, source DocumentSource) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return New(model.ServerConfig{}, checker, source)
}

func postCheckNumbers(router *gin.Engine, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/api/check-numbers", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCheckNumbers_HappyPath(t *testing.T) {
	checker := &stubChecker{report: emptyReport()}
	router := newTestRouter(checker, nil)

	w := postCheckNumbers(router, VerifyRequest{
		Article:    "Headline\nBody with $5 million.",
		SourceText: "Source with $5 million.",
		LineByLine: true,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, checker.gotLineByLine)
	assert.Equal(t, "Source with $5 million.", checker.gotSource)

	var report model.Report
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	assert.Equal(t, "0", report.Numbers.Summary.MatchRate)
}

func TestCheckNumbers_MissingArticle(t *testing.T) {
	router := newTestRouter(&stubChecker{report: emptyReport()}, nil)

	w := postCheckNumbers(router, VerifyRequest{SourceText: "source"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postCheckNumbers(router, VerifyRequest{Article: "   ", SourceText: "source"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckNumbers_MissingSource(t *testing.T) {
	router := newTestRouter(&stubChecker{report: emptyReport()}, nil)

	w := postCheckNumbers(router, VerifyRequest{Article: "Headline\nBody."})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckNumbers_InvalidJSON(t *testing.T) {
	router := newTestRouter(&stubChecker{report: emptyReport()}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/check-numbers", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckNumbers_SourceURLResolution(t *testing.T) {
	checker := &stubChecker{report: emptyReport()}
	source := &stubSource{text: "Fetched source text."}
	router := newTestRouter(checker, source)

	w := postCheckNumbers(router, VerifyRequest{
		Article:   "Headline\nBody.",
		SourceURL: "https://example.com/release",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Fetched source text.", checker.gotSource)
}

func TestCheckNumbers_FetchFailure(t *testing.T) {
	router := newTestRouter(&stubChecker{report: emptyReport()}, &stubSource{err: errors.New("connection refused")})

	w := postCheckNumbers(router, VerifyRequest{
		Article:   "Headline\nBody.",
		SourceURL: "https://example.com/release",
	})

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestCheckNumbers_CheckerFailure(t *testing.T) {
	router := newTestRouter(&stubChecker{err: errors.New("boom")}, nil)

	w := postCheckNumbers(router, VerifyRequest{
		Article:    "Headline\nBody.",
		SourceText: "source",
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetHealth(t *testing.T) {
	router := newTestRouter(&stubChecker{report: emptyReport()}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
