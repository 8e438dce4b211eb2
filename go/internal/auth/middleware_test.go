package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMiddleware_ExtractsUserID(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		wantID   int
		wantAuth bool
	}{
		{name: "valid id", header: "42", wantID: 42, wantAuth: true},
		{name: "missing header", header: "", wantAuth: false},
		{name: "non-numeric", header: "abc", wantAuth: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotID int
			var gotAuth bool
			handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotID, gotAuth = UserID(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/timezones", nil)
			if tt.header != "" {
				req.Header.Set("User-Id", tt.header)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.wantAuth, gotAuth)
			if tt.wantAuth {
				assert.Equal(t, tt.wantID, gotID)
			}
		})
	}
}

func TestRequireUser(t *testing.T) {
	handler := Middleware(RequireUser(func(w http.ResponseWriter, r *http.Request, userID int) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/timezones", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/timezones", nil)
	req.Header.Set("User-Id", "7")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
