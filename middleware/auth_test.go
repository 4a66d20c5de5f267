package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var testSecret = []byte("test-secret")

func signed(t *testing.T, claims jwt.MapClaims, secret []byte) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return s
}

func TestAuthenticateAndAuthorize(t *testing.T) {
	valid := jwt.MapClaims{"sub": "organizer", "role": RoleAdmin, "exp": time.Now().Add(time.Hour).Unix()}
	viewer := jwt.MapClaims{"sub": "guest", "role": "viewer", "exp": time.Now().Add(time.Hour).Unix()}
	expired := jwt.MapClaims{"sub": "organizer", "role": RoleAdmin, "exp": time.Now().Add(-time.Hour).Unix()}

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signed(t, valid, []byte("other")), http.StatusUnauthorized},
		{"expired", "Bearer " + signed(t, expired, testSecret), http.StatusUnauthorized},
		{"wrong role", "Bearer " + signed(t, viewer, testSecret), http.StatusForbidden},
		{"admin", "Bearer " + signed(t, valid, testSecret), http.StatusNoContent},
	}

	var sub string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sub, _ = GetSubjectFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	h := Authenticate(testSecret)(Authorize(RoleAdmin)(next))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/tournaments", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			if rr.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, rr.Code)
			}
		})
	}
	if sub != "organizer" {
		t.Errorf("Expected subject organizer in context, got %q", sub)
	}
}
