package api

import (
	"errors"
	"log"
	"net/http"
	"time"
	"workouttracker/app/internal/auth"
	"workouttracker/app/internal/domain"
	"workouttracker/app/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	stateCookieName   = "workout_oauth_state"
	stateCookieMaxAge = 10 * 60
	authCookiePath    = "/"
)

// CookieSettings controls the session cookie written after sign-in.
type CookieSettings struct {
	Name   string
	Secure bool
}

// AuthHandler runs the OAuth sign-in flow and reports the current session.
type AuthHandler struct {
	authService service.AuthService
	identities  auth.IdentityProvider // nil when sign-in is not configured
	sessions    auth.SessionProvider
	cookie      CookieSettings
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService, identities auth.IdentityProvider, sessions auth.SessionProvider, cookie CookieSettings) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		identities:  identities,
		sessions:    sessions,
		cookie:      cookie,
	}
}

// --- Request/Response Structs ---

// UserResponse is the public part of a user.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Image string `json:"image,omitempty"`
}

type SessionResponse struct {
	User    UserResponse `json:"user"`
	Expires time.Time    `json:"expires"`
}

func MapUserToResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
		Image: u.Image,
	}
}

// --- Handler Methods ---

// SignIn redirects to the provider's consent page.
func (h *AuthHandler) SignIn(c *gin.Context) {
	if h.identities == nil {
		abortWithError(c, http.StatusServiceUnavailable, "Sign-in is not configured")
		return
	}

	state := auth.NewState()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookieName, state, stateCookieMaxAge, authCookiePath, "", h.cookie.Secure, true)
	c.Redirect(http.StatusFound, h.identities.AuthCodeURL(state))
}

// Callback completes sign-in: it checks state, identifies the account and
// stores a fresh session token in the session cookie.
func (h *AuthHandler) Callback(c *gin.Context) {
	if h.identities == nil {
		abortWithError(c, http.StatusServiceUnavailable, "Sign-in is not configured")
		return
	}

	expected, err := c.Cookie(stateCookieName)
	if err != nil || expected == "" || c.Query("state") != expected {
		abortWithError(c, http.StatusBadRequest, "Invalid OAuth state")
		return
	}
	// One use only.
	c.SetCookie(stateCookieName, "", -1, authCookiePath, "", h.cookie.Secure, true)

	if reason := c.Query("error"); reason != "" {
		abortWithError(c, http.StatusBadRequest, "Sign-in was not completed: "+reason)
		return
	}
	code := c.Query("code")
	if code == "" {
		abortWithError(c, http.StatusBadRequest, "Missing authorization code")
		return
	}

	identity, err := h.identities.Identify(c.Request.Context(), code)
	if err != nil {
		log.Printf("ERROR: identifying OAuth account: %v", err)
		abortWithError(c, http.StatusBadGateway, "Failed to sign in with provider.")
		return
	}

	result, err := h.authService.SignIn(c.Request.Context(), identity)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			abortWithError(c, http.StatusBadGateway, "Failed to sign in with provider.")
			return
		}
		log.Printf("ERROR: signing in %s user: %v", identity.Provider, err)
		abortWithError(c, http.StatusInternalServerError, "Failed to sign in.")
		return
	}
	log.Printf("INFO: user %s signed in via %s", result.User.ID.Hex(), identity.Provider)

	maxAge := int(time.Until(result.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, result.Token, maxAge, authCookiePath, "", h.cookie.Secure, true)
	c.Redirect(http.StatusFound, "/")
}

// Session returns the signed-in user and session expiry, or an empty object
// when there is no valid session.
func (h *AuthHandler) Session(c *gin.Context) {
	session, err := h.sessions.Resolve(c.Request)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), session.UserID)
	if err != nil {
		if !errors.Is(err, service.ErrUserNotFound) {
			log.Printf("ERROR: loading user %s for session: %v", session.UserID.Hex(), err)
		}
		c.JSON(http.StatusOK, gin.H{})
		return
	}

	c.JSON(http.StatusOK, SessionResponse{
		User:    MapUserToResponse(user),
		Expires: session.ExpiresAt,
	})
}

// SignOut clears the session cookie.
func (h *AuthHandler) SignOut(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, authCookiePath, "", h.cookie.Secure, true)
	c.Status(http.StatusNoContent)
}
