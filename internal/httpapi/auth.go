package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ErrUnauthorized is returned by providers for unknown or missing tokens.
var ErrUnauthorized = errors.New("unauthorized")

// AuthProvider validates a bearer token and resolves the acting user ID.
type AuthProvider interface {
	Validate(ctx context.Context, token string) (actorID string, err error)
}

// StaticTokenProvider accepts a fixed token set and attributes every request
// to a single service user. Richer identity providers can replace it behind
// the same interface.
type StaticTokenProvider struct {
	tokens  map[string]bool
	actorID string
}

func NewStaticTokenProvider(tokens []string, actorID string) *StaticTokenProvider {
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return &StaticTokenProvider{tokens: set, actorID: actorID}
}

func (p *StaticTokenProvider) Validate(_ context.Context, token string) (string, error) {
	if token == "" || !p.tokens[token] {
		return "", ErrUnauthorized
	}
	return p.actorID, nil
}

// NopAuthProvider authenticates everything as the configured actor. Used
// when authRequired is off.
type NopAuthProvider struct {
	ActorID string
}

func (p NopAuthProvider) Validate(context.Context, string) (string, error) {
	return p.ActorID, nil
}

const actorIDKey = "miv_actor_id"

// ActorID returns the authenticated user's ID for the current request.
func ActorID(c *gin.Context) string {
	return c.GetString(actorIDKey)
}

// AuthMiddleware extracts the bearer token, validates it, and stores the
// acting user ID for handlers.
func AuthMiddleware(provider AuthProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID, err := provider.Validate(c.Request.Context(), extractBearerToken(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(actorIDKey, actorID)
		c.Next()
	}
}

// extractBearerToken returns the token from "Authorization: Bearer <token>",
// or "" when the header is missing or malformed. The scheme is
// case-insensitive per RFC 7235.
func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
