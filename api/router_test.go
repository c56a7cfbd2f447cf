package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/wdbridge/config"
	"github.com/use-agent/wdbridge/controller"
	"github.com/use-agent/wdbridge/handler"
	"github.com/use-agent/wdbridge/prefstore"
)

// stubController is a minimal no-op Controller, just enough to exercise
// the HTTP routing and JSON plumbing without a real browser.
type stubController struct {
	controller.Controller
}

func (s *stubController) CurrentURL(ctx context.Context) (string, error) {
	return "about:blank", nil
}

func (s *stubController) FocusedBrowsingContext(ctx context.Context) (string, bool, error) {
	return "context-1", true, nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	h := handler.New(handler.DefaultConfig(), func(ctx context.Context) (controller.Controller, error) {
		return &stubController{}, nil
	}, prefstore.New(), slog.Default())
	cfg := config.Load()
	cfg.Server.Mode = "test"
	return NewRouter(h, cfg)
}

func TestStatusIsOpenWithoutSession(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestNewSessionThenCurrentURL(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/session", strings.NewReader(`{"capabilities":{}}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("NewSession: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Value struct {
			SessionID string `json:"sessionId"`
		} `json:"value"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode NewSession response: %v", err)
	}
	if body.Value.SessionID == "" {
		t.Fatal("expected a non-empty session id")
	}

	req = httptest.NewRequest(http.MethodGet, "/session/"+body.Value.SessionID+"/url", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("CurrentURL: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCommandBeforeSessionIsRejected(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/session/nope/url", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 (session not created), got %d: %s", rec.Code, rec.Body.String())
	}
}
