package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func do(t *testing.T, h http.Handler, header, value string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/properties/upload", nil)
	if value != "" {
		req.Header.Set(header, value)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestMiddleware_NoneMode_PassThrough(t *testing.T) {
	h := Middleware("none", "x-api-key", "secret")(okHandler())
	if rr := do(t, h, "x-api-key", ""); rr.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rr.Code)
	}
}

func TestMiddleware_EmptyKey_PassThrough(t *testing.T) {
	h := Middleware("apikey", "x-api-key", "")(okHandler())
	if rr := do(t, h, "x-api-key", ""); rr.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rr.Code)
	}
}

func TestMiddleware_ValidKey(t *testing.T) {
	h := Middleware("apikey", "x-api-key", "secret")(okHandler())
	if rr := do(t, h, "x-api-key", "secret"); rr.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rr.Code)
	}
}

func TestMiddleware_MissingKey(t *testing.T) {
	h := Middleware("apikey", "x-api-key", "secret")(okHandler())
	rr := do(t, h, "x-api-key", "")
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type: got %q", ct)
	}
}

func TestMiddleware_WrongKey(t *testing.T) {
	h := Middleware("apikey", "x-api-key", "secret")(okHandler())
	if rr := do(t, h, "x-api-key", "guess"); rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rr.Code)
	}
}

func TestMiddleware_CustomHeader(t *testing.T) {
	h := Middleware("apikey", "x-upload-key", "secret")(okHandler())
	if rr := do(t, h, "x-upload-key", "secret"); rr.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rr.Code)
	}
	if rr := do(t, h, "x-api-key", "secret"); rr.Code != http.StatusUnauthorized {
		t.Errorf("wrong header honored: got %d, want 401", rr.Code)
	}
}
