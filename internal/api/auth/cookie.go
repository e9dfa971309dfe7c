package auth

import (
	"net/http"
	"time"
)

// CookiePolicy decides the attributes of the session cookie. In
// production the cookie is sent cross-site (SameSite=None) and must be
// Secure; everywhere else it stays SameSite=Strict.
type CookiePolicy struct {
	Name     string
	Secure   bool
	SameSite http.SameSite
	MaxAge   int
}

// NewCookiePolicy derives the cookie policy from the runtime
// environment and token lifetime.
func NewCookiePolicy(name, environment string, ttl time.Duration) CookiePolicy {
	if name == "" {
		name = "token"
	}

	policy := CookiePolicy{
		Name:     name,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(ttl.Seconds()),
	}

	if environment == "production" {
		policy.Secure = true
		policy.SameSite = http.SameSiteNoneMode
	}

	return policy
}

// Write sets the session cookie carrying the given token.
func (p CookiePolicy) Write(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     p.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   p.MaxAge,
		HttpOnly: true,
		Secure:   p.Secure,
		SameSite: p.SameSite,
	})
}

// Clear expires the session cookie. The token itself remains valid
// until its expiry; only the client's copy is discarded.
func (p CookiePolicy) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     p.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   p.Secure,
		SameSite: p.SameSite,
	})
}
