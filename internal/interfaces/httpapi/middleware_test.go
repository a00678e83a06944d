package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAdminToken_HeaderToken(t *testing.T) {
	handler := RequireAdminToken("topsecret", okHandler())

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/notify", nil)
	req.Header.Set("X-Admin-Token", "topsecret")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestRequireAdminToken_BearerToken(t *testing.T) {
	handler := RequireAdminToken("topsecret", okHandler())

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/notify", nil)
	req.Header.Set("Authorization", "Bearer topsecret")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestRequireAdminToken_RejectsWrongToken(t *testing.T) {
	handler := RequireAdminToken("topsecret", okHandler())

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/notify", nil)
	req.Header.Set("X-Admin-Token", "wrong")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestRequireAdminToken_UnconfiguredToken(t *testing.T) {
	handler := RequireAdminToken("", okHandler())

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/notify", nil)
	req.Header.Set("X-Admin-Token", "anything")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
}

func TestRequireLeagueCode_AllowsMatchingCode(t *testing.T) {
	handler := RequireLeagueCode("LNJP-2026", okHandler())

	req := httptest.NewRequest(http.MethodGet, "/v1/days", nil)
	req.Header.Set("X-League-Code", "LNJP-2026")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestRequireLeagueCode_RejectsMissingHeader(t *testing.T) {
	handler := RequireLeagueCode("LNJP-2026", okHandler())

	req := httptest.NewRequest(http.MethodGet, "/v1/days", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestSecureEqual(t *testing.T) {
	if !secureEqual("abc", "abc") {
		t.Fatalf("expected equal strings to match")
	}
	if secureEqual("abc", "abd") {
		t.Fatalf("expected different strings to mismatch")
	}
	if secureEqual("", "") {
		t.Fatalf("expected empty strings to mismatch")
	}
}
