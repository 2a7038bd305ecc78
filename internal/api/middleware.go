package api

import (
	"errors"
	"log"
	"net/http"
	"slices"
	"strings"
	"workouttracker/app/internal/auth"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Constants for context keys
const (
	ContextUserIDKey  = "userID"
	ContextSessionKey = "session"
)

// unsupportedMethods get an explicit 405 route on every collection.
// Anything else reaches the collection through methodGuard.noRoute.
var unsupportedMethods = []string{
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodHead,
	http.MethodOptions,
}

// SessionMiddleware resolves the caller through the session provider and
// rejects the request with 401 before any handler work when there is none.
func SessionMiddleware(sessions auth.SessionProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := sessions.Resolve(c.Request)
		if err != nil {
			if !errors.Is(err, auth.ErrNoSession) {
				log.Printf("WARN: rejected session for %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
			}
			abortWithError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		c.Set(ContextSessionKey, session)
		c.Set(ContextUserIDKey, session.UserID)
		c.Next()
	}
}

// methodNotAllowed answers with 405 and the methods the route does support.
func methodNotAllowed(allowed ...string) gin.HandlerFunc {
	allow := strings.Join(allowed, ", ")
	return func(c *gin.Context) {
		c.Header("Allow", allow)
		abortWithError(c, http.StatusMethodNotAllowed, "Method "+c.Request.Method+" Not Allowed")
	}
}

// methodGuard maps a collection path to its 405 handler.
type methodGuard map[string]gin.HandlerFunc

// register installs the 405 handler for every common method the collection
// at path does not serve. It runs without the session middleware.
func (g methodGuard) register(group *gin.RouterGroup, path string, allowed ...string) {
	handler := methodNotAllowed(allowed...)
	for _, method := range unsupportedMethods {
		if slices.Contains(allowed, method) {
			continue
		}
		group.Handle(method, path, handler)
	}
	if !slices.Contains(allowed, http.MethodPost) {
		group.Handle(http.MethodPost, path, handler)
	}
	g[group.BasePath()+path] = handler
}

// noRoute answers 405 for methods gin has no tree for (TRACE, WebDAV verbs)
// on a guarded path. Other paths keep gin's 404.
func (g methodGuard) noRoute(c *gin.Context) {
	if handler, ok := g[c.Request.URL.Path]; ok {
		handler(c)
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// Helper function to get User ID from context (used by handlers)
func getUserIDFromContext(c *gin.Context) (primitive.ObjectID, error) {
	idRaw, exists := c.Get(ContextUserIDKey)
	if !exists {
		return primitive.NilObjectID, errors.New("user ID not found in context")
	}
	id, ok := idRaw.(primitive.ObjectID)
	if !ok || id == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("invalid user ID type in context")
	}
	return id, nil
}
