package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"workouttracker/app/internal/domain"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

// Identity is what the OAuth provider tells us about the signed-in account.
type Identity struct {
	Provider string
	Subject  string
	Name     string
	Email    string
	Picture  string
}

// IdentityProvider runs the authorization-code flow against an OAuth provider.
type IdentityProvider interface {
	AuthCodeURL(state string) string
	Identify(ctx context.Context, code string) (*Identity, error)
}

// NewState returns an unguessable value for the OAuth state parameter.
func NewState() string {
	return uuid.NewString()
}

// GoogleProvider implements IdentityProvider for Google accounts.
type GoogleProvider struct {
	config      *oauth2.Config
	userInfoURL string
}

// NewGoogleProvider creates a Google provider. redirectURL must match the one
// registered for the OAuth client.
func NewGoogleProvider(clientID, clientSecret, redirectURL string) (*GoogleProvider, error) {
	if clientID == "" || clientSecret == "" {
		return nil, errors.New("google client id and secret are required")
	}
	return &GoogleProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		userInfoURL: googleUserInfoURL,
	}, nil
}

// AuthCodeURL returns the consent page URL for state.
func (g *GoogleProvider) AuthCodeURL(state string) string {
	return g.config.AuthCodeURL(state)
}

// Identify exchanges code for a token and fetches the account's profile.
func (g *GoogleProvider) Identify(ctx context.Context, code string) (*Identity, error) {
	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := g.config.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch userinfo: status %d: %s", resp.StatusCode, body)
	}

	var info struct {
		Sub     string `json:"sub"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode userinfo: %w", err)
	}
	if info.Sub == "" {
		return nil, errors.New("userinfo response has no subject")
	}

	return &Identity{
		Provider: domain.ProviderGoogle,
		Subject:  info.Sub,
		Name:     info.Name,
		Email:    info.Email,
		Picture:  info.Picture,
	}, nil
}
