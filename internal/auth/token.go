// Package auth resolves requests to an authenticated user. Identity comes from
// Google sign-in; the app then keeps its own HS256-signed session token.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const tokenIssuer = "workout-tracker"

// Session is the resolved identity of a caller.
type Session struct {
	UserID    primitive.ObjectID
	ExpiresAt time.Time
}

var (
	ErrNoSession      = errors.New("no session")
	ErrInvalidSession = errors.New("invalid session")
)

// sessionClaims is the JWT payload. uid duplicates sub for clients that only read custom claims.
type sessionClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies session tokens.
type TokenManager struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

// NewTokenManager creates a TokenManager. A non-positive expiration defaults to one hour.
func NewTokenManager(secret string, expiration time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("JWT secret cannot be empty")
	}
	if expiration <= 0 {
		expiration = time.Hour
	}
	return &TokenManager{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}, nil
}

// Expiration returns the lifetime of issued tokens.
func (m *TokenManager) Expiration() time.Duration { return m.expiration }

// Issue signs a token for userID and returns it with its expiry.
func (m *TokenManager) Issue(userID primitive.ObjectID) (string, time.Time, error) {
	if userID == primitive.NilObjectID {
		return "", time.Time{}, errors.New("user ID is required to issue a token")
	}
	now := m.now()
	expiresAt := now.Add(m.expiration)
	claims := &sessionClaims{
		UserID: userID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.Hex(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Parse verifies a token and returns the session it carries.
func (m *TokenManager) Parse(tokenString string) (*Session, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if !token.Valid || claims.ExpiresAt == nil || claims.Issuer != tokenIssuer {
		return nil, fmt.Errorf("%w: missing claims", ErrInvalidSession)
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil || userID.Hex() != claims.Subject {
		return nil, fmt.Errorf("%w: bad subject", ErrInvalidSession)
	}
	return &Session{UserID: userID, ExpiresAt: claims.ExpiresAt.Time}, nil
}
