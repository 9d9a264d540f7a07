package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	domainagg "github.com/crewlearn/crewlearn-backend/internal/domain/aggregates"
)

func TestRespondDomainErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", domainagg.NewError(domainagg.CodeValidation, "op", "missing title", nil), http.StatusBadRequest, "validation"},
		{"invariant", domainagg.NewError(domainagg.CodeInvariantViolation, "op", "tenant mismatch", nil), http.StatusUnprocessableEntity, "invariant_violation"},
		{"precondition", domainagg.NewError(domainagg.CodePreconditionFailed, "op", "attempt limit reached", nil), http.StatusUnprocessableEntity, "precondition_failed"},
		{"conflict", domainagg.NewError(domainagg.CodeConflict, "op", "duplicate order", nil), http.StatusConflict, "conflict"},
		{"not found", domainagg.NewError(domainagg.CodeNotFound, "op", "no such course", nil), http.StatusNotFound, "not_found"},
		{"retryable", domainagg.NewError(domainagg.CodeRetryable, "op", "serialization failure", nil), http.StatusServiceUnavailable, "retryable"},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError, "internal"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			RespondDomainError(c, tc.err)

			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tc.wantStatus)
			}
			var env ErrorEnvelope
			if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
				t.Fatalf("unmarshal body: %v", err)
			}
			if env.Error.Code != tc.wantCode {
				t.Fatalf("code = %q, want %q", env.Error.Code, tc.wantCode)
			}
			if env.Error.Message == "" {
				t.Fatal("expected a message")
			}
		})
	}
}

func TestRespondDomainErrorHidesInternals(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondDomainError(c, errors.New("pq: password authentication failed"))

	var env ErrorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if env.Error.Message != "internal server error" {
		t.Fatalf("message = %q, want generic internal message", env.Error.Message)
	}
}
