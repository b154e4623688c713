package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/middleware"
)

const secret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestAuth(t *testing.T) {
	valid := jwt.RegisteredClaims{
		Subject:   "7",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUser   int64
	}{
		{
			name:       "valid token",
			header:     "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), valid),
			wantStatus: http.StatusOK,
			wantUser:   7,
		},
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			header:     "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong secret",
			header:     "Bearer " + sign(t, jwt.SigningMethodHS256, []byte("other"), valid),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "expired",
			header: "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.RegisteredClaims{
				Subject:   "7",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "no expiry",
			header:     "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.RegisteredClaims{Subject: "7"}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "non numeric subject",
			header: "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.RegisteredClaims{
				Subject:   "alice",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "other algorithm",
			header:     "Bearer " + sign(t, jwt.SigningMethodHS512, []byte(secret), valid),
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUser int64
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser, _ = r.Context().Value(middleware.UserIDKey).(int64)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/cards", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			middleware.Auth(secret)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantUser, gotUser)
		})
	}
}

func TestLogging(t *testing.T) {
	logger, hook := test.NewNullLogger()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	middleware.Logging(logger)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/invoices/1/pay", nil))

	require.Len(t, hook.Entries, 1)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, http.StatusTeapot, entry.Data["status"])
	assert.Equal(t, "/invoices/1/pay", entry.Data["path"])
	assert.Equal(t, http.MethodPost, entry.Data["method"])
}
