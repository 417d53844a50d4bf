package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jbalums/benta-flow-api/internal/repository"
)

func respondRecorder(t *testing.T, respond func(c *gin.Context)) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	respond(c)
	return rec
}

func TestRespondValidationErrorMessageIsDeterministic(t *testing.T) {
	fields := map[string][]string{
		"name":     {"The name field is required."},
		"email":    {"The email field is required."},
		"password": {"The password field is required."},
	}

	// Map iteration order varies per invocation; the envelope must not.
	for i := 0; i < 20; i++ {
		rec := respondRecorder(t, func(c *gin.Context) {
			RespondValidationError(c, fields)
		})
		body := decodeBody(t, rec)
		if body["message"] != "The email field is required." {
			t.Fatalf("run %d: message = %v, want the first field in sorted order", i, body["message"])
		}
	}
}

func TestHandleServiceErrorInvalidReference(t *testing.T) {
	rec := respondRecorder(t, func(c *gin.Context) {
		HandleServiceError(c, fmt.Errorf("create branch: %w", repository.ErrInvalidReference))
	})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	fieldErrors(t, decodeBody(t, rec), "base")
}

func TestHandleServiceErrorDuplicate(t *testing.T) {
	rec := respondRecorder(t, func(c *gin.Context) {
		HandleServiceError(c, fmt.Errorf("create category: %w", repository.ErrDuplicate))
	})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	fieldErrors(t, decodeBody(t, rec), "base")
}
