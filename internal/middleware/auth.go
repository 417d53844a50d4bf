// Package middleware provides HTTP middleware for the POS backend.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jbalums/benta-flow-api/internal/models"
	"github.com/jbalums/benta-flow-api/internal/repository"
	"github.com/jbalums/benta-flow-api/internal/service"
)

// Context keys set by RequireAuth.
const (
	ContextUserKey    = "auth_user"
	ContextTokenIDKey = "auth_token_id"
)

// RequireAuth resolves the bearer token back to a user and aborts with 401
// when no valid token is presented. The resolved user and token id are
// stored on the request context for downstream handlers.
func RequireAuth(tokens service.TokenService, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		plaintext := extractBearer(c)
		if plaintext == "" {
			unauthenticated(c)
			return
		}

		token, err := tokens.Resolve(c.Request.Context(), plaintext)
		if err != nil {
			unauthenticated(c)
			return
		}

		user, err := users.FindByID(c.Request.Context(), token.UserID)
		if err != nil {
			unauthenticated(c)
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextTokenIDKey, token.ID)
		c.Next()
	}
}

// RequireRole aborts with 403 unless the authenticated user holds one of
// the given roles. Must run after RequireAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			unauthenticated(c)
			return
		}
		if !allowed[user.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message": "This action is unauthorized.",
			})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user stored by RequireAuth, or nil.
func CurrentUser(c *gin.Context) *models.User {
	value, ok := c.Get(ContextUserKey)
	if !ok {
		return nil
	}
	user, _ := value.(*models.User)
	return user
}

// CurrentTokenID returns the id of the access token the caller
// authenticated with, or zero.
func CurrentTokenID(c *gin.Context) int64 {
	value, ok := c.Get(ContextTokenIDKey)
	if !ok {
		return 0
	}
	id, _ := value.(int64)
	return id
}

func unauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"message": "Unauthenticated.",
	})
}

func extractBearer(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	parts := strings.Split(header, " ")
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}
