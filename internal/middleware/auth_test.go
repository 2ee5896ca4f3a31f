package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"cureconnect-api/internal/auth"
)

const testSecret = "test-secret"

func uidEchoHandler(t *testing.T, wantUID string, wantOK bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, ok := UserID(r.Context())
		if ok != wantOK || uid != wantUID {
			t.Errorf("UserID() = (%q, %v), want (%q, %v)", uid, ok, wantUID, wantOK)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuthNoToken(t *testing.T) {
	h := RequireAuth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler reached without token")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRequireAuthBadToken(t *testing.T) {
	h := RequireAuth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler reached with bad token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestRequireAuthValidToken(t *testing.T) {
	tok, err := auth.MakeToken("user-1", "", testSecret)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	h := RequireAuth(testSecret)(uidEchoHandler(t, "user-1", true))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestOptionalAuthAnonymous(t *testing.T) {
	h := OptionalAuth(testSecret)(uidEchoHandler(t, "", false))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestOptionalAuthInvalidTokenIgnored(t *testing.T) {
	h := OptionalAuth(testSecret)(uidEchoHandler(t, "", false))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestOptionalAuthValidToken(t *testing.T) {
	tok, err := auth.MakeToken("user-9", "", testSecret)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	h := OptionalAuth(testSecret)(uidEchoHandler(t, "user-9", true))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
