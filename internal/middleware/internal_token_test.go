package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestInternalTokenAuth(t *testing.T) {
	router := gin.New()
	router.POST("/internal", InternalTokenAuth("s3cret-internal"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"bad format", "Token s3cret-internal", http.StatusUnauthorized},
		{"wrong token", "Bearer nope", http.StatusForbidden},
		{"ok", "Bearer s3cret-internal", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/internal", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestInternalTokenAuth_NotConfigured(t *testing.T) {
	router := gin.New()
	router.POST("/internal", InternalTokenAuth(""), func(c *gin.Context) {
		t.Fatal("should not reach handler")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/internal", nil)
	req.Header.Set("Authorization", "Bearer anything")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
