//go:build unit

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"dorm-services/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNewCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name            string
		origins         []string
		requestOrigin   string
		wantAllowOrigin string
		wantCredentials string
	}{
		{
			name:            "listed origin",
			origins:         []string{"http://dorm.example"},
			requestOrigin:   "http://dorm.example",
			wantAllowOrigin: "http://dorm.example",
			wantCredentials: "true",
		},
		{
			name:            "wildcard drops credentials",
			origins:         []string{"*"},
			requestOrigin:   "http://anywhere.example",
			wantAllowOrigin: "*",
			wantCredentials: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewTestConfig().CORS
			cfg.AllowOrigins = tt.origins

			r := gin.New()
			r.Use(NewCORSMiddleware(cfg))
			r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(http.MethodGet, "/ping", http.NoBody)
			req.Header.Set("Origin", tt.requestOrigin)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantAllowOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.wantCredentials, w.Header().Get("Access-Control-Allow-Credentials"))
		})
	}
}
