package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func assertCORSHeaders(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	want := map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
		"Access-Control-Allow-Headers": "Content-Type",
	}
	for k, v := range want {
		if got := rec.Header().Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
}

func TestCORS_AddsHeaders(t *testing.T) {
	e := echo.New()
	e.Use(CORS())
	e.GET("/test", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	assertCORSHeaders(t, rec)
}

func TestCORS_Preflight(t *testing.T) {
	e := echo.New()
	e.Use(CORS())

	called := false
	e.Any("/*", func(c echo.Context) error {
		called = true
		return c.String(http.StatusTeapot, "should not run")
	})

	for _, path := range []string{"/", "/api/generate", "/health", "/unknown/deep/path?x=1"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, path, http.NoBody)
			req.Header.Set("Origin", "http://localhost:3000")
			req.Header.Set("Access-Control-Request-Method", "POST")
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
			}
			if rec.Body.Len() != 0 {
				t.Errorf("body = %q, want empty", rec.Body.String())
			}
			assertCORSHeaders(t, rec)
		})
	}

	if called {
		t.Error("pre-flight request reached the route handler")
	}
}

func TestCORS_ErrorResponses(t *testing.T) {
	e := echo.New()
	e.Use(CORS())
	e.GET("/only-get", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/fails", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusInternalServerError, "boom")
	})

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"not found", http.MethodGet, "/missing", http.StatusNotFound},
		{"method not allowed", http.MethodPut, "/only-get", http.StatusMethodNotAllowed},
		{"handler error", http.MethodGet, "/fails", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			assertCORSHeaders(t, rec)
		})
	}
}
