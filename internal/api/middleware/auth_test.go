package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	var gotUserID int64
	var gotOK bool

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, gotOK = GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUserID int64
	}{
		{"valid user id", "42", http.StatusOK, 42},
		{"missing header", "", http.StatusUnauthorized, 0},
		{"non-numeric", "abc", http.StatusUnauthorized, 0},
		{"non-positive", "0", http.StatusUnauthorized, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUserID, gotOK = 0, false

			req := httptest.NewRequest(http.MethodGet, "/api/v1/links", nil)
			if tt.header != "" {
				req.Header.Set("X-User-ID", tt.header)
			}
			rec := httptest.NewRecorder()

			Auth(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				require.True(t, gotOK)
				assert.Equal(t, tt.wantUserID, gotUserID)
			} else {
				assert.False(t, gotOK)
			}
		})
	}
}
