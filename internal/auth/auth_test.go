package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/oauth2"
)

func newTestTokens(t *testing.T) *TokenManager {
	t.Helper()
	tokens, err := NewTokenManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	return tokens
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := newTestTokens(t)
	userID := primitive.NewObjectID()

	token, expiresAt, err := tokens.Issue(userID)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	session, err := tokens.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if session.UserID != userID {
		t.Errorf("UserID = %s, want %s", session.UserID.Hex(), userID.Hex())
	}
	if !session.ExpiresAt.Equal(expiresAt.Truncate(time.Second)) {
		t.Errorf("ExpiresAt = %v, want %v", session.ExpiresAt, expiresAt)
	}
}

func TestTokenRejections(t *testing.T) {
	tokens := newTestTokens(t)
	userID := primitive.NewObjectID()

	expired := newTestTokens(t)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, _, err := expired.Issue(userID)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	other, err := NewTokenManager("another-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	forgedToken, _, _ := other.Issue(userID)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &sessionClaims{
		UserID: userID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.Hex(),
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"expired", expiredToken},
		{"wrong secret", forgedToken},
		{"alg none", unsigned},
		{"garbage", "not-a-jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tokens.Parse(tt.token); !errors.Is(err, ErrInvalidSession) {
				t.Errorf("expected ErrInvalidSession, got %v", err)
			}
		})
	}
}

func TestNewTokenManagerRequiresSecret(t *testing.T) {
	if _, err := NewTokenManager("", time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
	tokens, err := NewTokenManager("s", 0)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	if tokens.Expiration() != time.Hour {
		t.Errorf("default expiration = %v, want 1h", tokens.Expiration())
	}
}

func TestJWTSessionProviderResolve(t *testing.T) {
	tokens := newTestTokens(t)
	provider := NewJWTSessionProvider(tokens, "session_token")
	userID := primitive.NewObjectID()
	token, _, err := tokens.Issue(userID)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	tests := []struct {
		name    string
		prepare func(r *http.Request)
		wantErr error
	}{
		{
			name:    "bearer header",
			prepare: func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) },
		},
		{
			name:    "cookie",
			prepare: func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "session_token", Value: token}) },
		},
		{
			name:    "nothing",
			prepare: func(r *http.Request) {},
			wantErr: ErrNoSession,
		},
		{
			name:    "malformed header",
			prepare: func(r *http.Request) { r.Header.Set("Authorization", "Token "+token) },
			wantErr: ErrInvalidSession,
		},
		{
			name: "bad header wins over good cookie",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer nope")
				r.AddCookie(&http.Cookie{Name: "session_token", Value: token})
			},
			wantErr: ErrInvalidSession,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.prepare(req)

			session, err := provider.Resolve(req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if session.UserID != userID {
				t.Errorf("UserID = %s, want %s", session.UserID.Hex(), userID.Hex())
			}
		})
	}
}

func TestGoogleProviderIdentify(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil || r.Form.Get("code") != "good-code" {
			http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "abc", "token_type": "Bearer", "expires_in": 3600})
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer abc" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"sub":"1234","name":"Ada","email":"ada@example.com","picture":"https://example.com/a.png"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	g, err := NewGoogleProvider("client", "secret", "http://localhost/callback")
	if err != nil {
		t.Fatalf("NewGoogleProvider: %v", err)
	}
	g.config.Endpoint = oauth2.Endpoint{AuthURL: srv.URL + "/auth", TokenURL: srv.URL + "/token"}
	g.userInfoURL = srv.URL + "/userinfo"

	identity, err := g.Identify(context.Background(), "good-code")
	if err != nil {
		t.Fatalf("Identify: %v", err)
	}
	if identity.Subject != "1234" || identity.Email != "ada@example.com" || identity.Provider != "google" {
		t.Errorf("unexpected identity: %+v", identity)
	}

	if _, err := g.Identify(context.Background(), "bad-code"); err == nil {
		t.Error("expected error for rejected code")
	}
}

func TestGoogleProviderAuthCodeURLCarriesState(t *testing.T) {
	g, err := NewGoogleProvider("client", "secret", "http://localhost/callback")
	if err != nil {
		t.Fatalf("NewGoogleProvider: %v", err)
	}
	state := NewState()
	u := g.AuthCodeURL(state)
	if !strings.Contains(u, "state="+state) || !strings.Contains(u, "client_id=client") {
		t.Errorf("AuthCodeURL = %s", u)
	}
}
