package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirenest/hirenest-be/internal/api/domain"
)

const testSecret = "test-secret"

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := NewTokenService(testSecret, 7*24*time.Hour)

	token, err := svc.Issue("alice@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", claims.Email)
}

func TestTokenService_Verify_Failures(t *testing.T) {
	svc := NewTokenService(testSecret, 7*24*time.Hour)

	t.Run("empty token", func(t *testing.T) {
		_, err := svc.Verify("")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := svc.Verify("not.a.token")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenService("another-secret", 7*24*time.Hour)
		token, err := other.Issue("alice@x.com")
		require.NoError(t, err)

		_, err = svc.Verify(token)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	})

	t.Run("expired token", func(t *testing.T) {
		issued := time.Now()

		expired := NewTokenService(testSecret, time.Hour)
		expired.now = func() time.Time { return issued }

		token, err := expired.Issue("alice@x.com")
		require.NoError(t, err)

		// Move the verifier's clock past expiry
		expired.now = func() time.Time { return issued.Add(2 * time.Hour) }

		_, err = expired.Verify(token)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	})

	t.Run("missing identity", func(t *testing.T) {
		token, err := svc.Issue("")
		require.NoError(t, err)

		_, err = svc.Verify(token)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	})
}

func TestTokenService_ExpirySevenDays(t *testing.T) {
	issued := time.Now()

	svc := NewTokenService(testSecret, 7*24*time.Hour)
	svc.now = func() time.Time { return issued }

	token, err := svc.Issue("alice@x.com")
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)

	assert.WithinDuration(t, issued.Add(7*24*time.Hour), claims.ExpiresAt.Time, time.Second)
}

func TestNewCookiePolicy(t *testing.T) {
	tests := []struct {
		name         string
		environment  string
		wantSecure   bool
		wantSameSite http.SameSite
	}{
		{
			name:         "development uses strict same-site",
			environment:  "development",
			wantSecure:   false,
			wantSameSite: http.SameSiteStrictMode,
		},
		{
			name:         "production uses none plus secure",
			environment:  "production",
			wantSecure:   true,
			wantSameSite: http.SameSiteNoneMode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := NewCookiePolicy("token", tt.environment, 7*24*time.Hour)

			assert.Equal(t, "token", policy.Name)
			assert.Equal(t, tt.wantSecure, policy.Secure)
			assert.Equal(t, tt.wantSameSite, policy.SameSite)
			assert.Equal(t, int((7 * 24 * time.Hour).Seconds()), policy.MaxAge)
		})
	}
}

func TestCookiePolicy_WriteAndClear(t *testing.T) {
	policy := NewCookiePolicy("token", "development", time.Hour)

	t.Run("write sets http-only cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		policy.Write(rec, "some-token")

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)

		cookie := cookies[0]
		assert.Equal(t, "token", cookie.Name)
		assert.Equal(t, "some-token", cookie.Value)
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, 3600, cookie.MaxAge)
	})

	t.Run("clear expires the cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		policy.Clear(rec)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)

		cookie := cookies[0]
		assert.Equal(t, "token", cookie.Name)
		assert.Empty(t, cookie.Value)
		assert.Less(t, cookie.MaxAge, 0)
	})
}
