package auth

import (
	"errors"
	"net/http"
	"strings"
)

// SessionProvider resolves an inbound request to the caller's session.
// It returns ErrNoSession when the request carries no credentials and
// ErrInvalidSession when it carries bad ones.
type SessionProvider interface {
	Resolve(r *http.Request) (*Session, error)
}

// JWTSessionProvider reads a session token from the Authorization header
// ("Bearer <token>", used by the CLI) or from the session cookie (browsers).
type JWTSessionProvider struct {
	tokens     *TokenManager
	cookieName string
}

// NewJWTSessionProvider creates a provider backed by tokens.
func NewJWTSessionProvider(tokens *TokenManager, cookieName string) *JWTSessionProvider {
	return &JWTSessionProvider{tokens: tokens, cookieName: cookieName}
}

// Resolve implements SessionProvider.
func (p *JWTSessionProvider) Resolve(r *http.Request) (*Session, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.Split(header, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
			return nil, errors.Join(ErrInvalidSession, errors.New("authorization header format must be Bearer {token}"))
		}
		return p.tokens.Parse(parts[1])
	}

	cookie, err := r.Cookie(p.cookieName)
	if err != nil || cookie.Value == "" {
		return nil, ErrNoSession
	}
	return p.tokens.Parse(cookie.Value)
}
