package httpkit

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"lookup_widget_backend/platform/logger"
)

func newTestContext(t *testing.T) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/v1/lookup/search", nil)
	return c
}

func TestRequestIDStoredOnRequestContext(t *testing.T) {
	c := newTestContext(t)
	c.Request.Header.Set(HeaderRequestID, "req-123")

	RequestID()(c)

	// The typed context key is what logger.WithContext reads.
	got, ok := c.Request.Context().Value(logger.RequestIDKey).(string)
	if !ok || got != "req-123" {
		t.Fatalf("request context id = %q, want req-123", got)
	}
	if c.GetString(string(logger.RequestIDKey)) != "req-123" {
		t.Fatal("gin key map missing request id")
	}
	if c.Writer.Header().Get(HeaderRequestID) != "req-123" {
		t.Fatal("response header missing request id")
	}
}

func TestRequestIDGeneratedWhenAbsent(t *testing.T) {
	c := newTestContext(t)

	RequestID()(c)

	got, ok := c.Request.Context().Value(logger.RequestIDKey).(string)
	if !ok || got == "" {
		t.Fatal("expected a generated request id on the request context")
	}
	if c.Writer.Header().Get(HeaderRequestID) != got {
		t.Fatal("header and context ids differ")
	}
}

func TestUserID(t *testing.T) {
	c := newTestContext(t)

	if _, ok := UserID(c); ok {
		t.Fatal("expected no user id before auth")
	}

	c.Set(ContextUserIDKey, "user-7")
	id, ok := UserID(c)
	if !ok || id != "user-7" {
		t.Fatalf("user id = %q ok=%v", id, ok)
	}
}
