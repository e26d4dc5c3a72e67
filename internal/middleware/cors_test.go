package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoiceforge/internal/config"
	"invoiceforge/internal/middleware"
)

// corsRouter mounts the invoice export routes behind CORS.
func corsRouter(origins []string) *gin.Engine {
	r := gin.New()
	r.Use(middleware.CORS(origins))
	r.POST("/api/v1/invoices/export", func(c *gin.Context) {
		c.Header("Content-Disposition", `attachment; filename="invoice_INV-001.pdf"`)
		c.Header("X-Page-Count", "1")
		c.Status(http.StatusOK)
	})
	return r
}

func corsRequest(r http.Handler, method, origin string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, "/api/v1/invoices/export", http.NoBody)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestCORS_DefaultConfigOrigins(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	r := corsRouter(cfg.CORS.AllowedOrigins)

	tests := []struct {
		name    string
		origin  string
		allowed bool
	}{
		{"localhost", "http://localhost:3000", true},
		{"loopback", "http://127.0.0.1:3000", true},
		{"other_port", "http://localhost:8080", false},
		{"remote", "https://invoices.example.com", false},
		{"no_origin", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := corsRequest(r, http.MethodPost, tt.origin)

			assert.Equal(t, http.StatusOK, w.Code)
			if tt.allowed {
				assert.Equal(t, tt.origin, w.Header().Get("Access-Control-Allow-Origin"))
				assert.Equal(t, "Origin", w.Header().Get("Vary"))
			} else {
				assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

func TestCORS_EnvConfiguredOrigins(t *testing.T) {
	t.Setenv("INVOICEFORGE_CORS_ALLOWED_ORIGINS", "https://invoices.example.com, https://staging.invoices.example.com")
	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, []string{"https://invoices.example.com", "https://staging.invoices.example.com"}, cfg.CORS.AllowedOrigins)
	r := corsRouter(cfg.CORS.AllowedOrigins)

	for _, origin := range cfg.CORS.AllowedOrigins {
		w := corsRequest(r, http.MethodPost, origin)
		assert.Equal(t, origin, w.Header().Get("Access-Control-Allow-Origin"), "origin %s should be allowed", origin)
	}

	w := corsRequest(r, http.MethodPost, "http://localhost:3000")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"), "defaults are replaced, not merged")
}

func TestCORS_PreflightForExport(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	r := corsRouter(cfg.CORS.AllowedOrigins)

	w := corsRequest(r, http.MethodOptions, "http://localhost:3000")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
	assert.Equal(t, "86400", w.Header().Get("Access-Control-Max-Age"))

	w = corsRequest(r, http.MethodOptions, "https://evil.example")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_ExposesDownloadHeaders(t *testing.T) {
	w := corsRequest(corsRouter([]string{"http://localhost:3000"}), http.MethodPost, "http://localhost:3000")

	exposed := w.Header().Get("Access-Control-Expose-Headers")
	for _, h := range []string{"Content-Disposition", "X-Page-Count", "X-Request-ID"} {
		assert.Contains(t, exposed, h)
	}
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "1", w.Header().Get("X-Page-Count"))
}

func TestCORS_EmptyOriginsList(t *testing.T) {
	w := corsRequest(corsRouter(nil), http.MethodPost, "http://localhost:3000")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Vary"))
}
