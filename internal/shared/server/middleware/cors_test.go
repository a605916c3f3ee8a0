package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func corsRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173"}))
	r.POST("/api/v1/documents/:id/analyze", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestCORSAllowedOrigin(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		wantStatus int
	}{
		{name: "preflight", method: http.MethodOptions, wantStatus: http.StatusNoContent},
		{name: "post", method: http.MethodPost, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/v1/documents/123/analyze", nil)
			req.Header.Set("Origin", "http://localhost:5173")
			resp := httptest.NewRecorder()
			corsRouter().ServeHTTP(resp, req)

			if resp.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, resp.Code)
			}
			if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
				t.Fatalf("expected Allow-Origin http://localhost:5173, got %q", got)
			}
			for _, header := range []string{"Access-Control-Allow-Methods", "Access-Control-Allow-Headers"} {
				if resp.Header().Get(header) == "" {
					t.Fatalf("expected %s header", header)
				}
			}
			if got := resp.Header().Get("Access-Control-Max-Age"); got != "600" {
				t.Fatalf("expected Max-Age 600, got %q", got)
			}
		})
	}
}

func TestCORSUnknownOriginGetsNoHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/123/analyze", nil)
	req.Header.Set("Origin", "http://evil.example")
	resp := httptest.NewRecorder()
	corsRouter().ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no Allow-Origin header, got %q", got)
	}
}
