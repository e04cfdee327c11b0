package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/sporthub/server/internal/model"
)

const (
	// AuthorizationHeader is the header key for authorization.
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens.
	BearerPrefix = "Bearer "
	// IdentityKey is the context key for the caller identity.
	IdentityKey = "identity"
)

// identityClaims is the token payload issued by the identity provider.
// The engine trusts these claims and does no account management itself.
type identityClaims struct {
	jwt.RegisteredClaims

	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Identity returns a middleware that decodes the identity token and
// stores the caller on the gin context. Requests without a valid token
// are rejected.
func Identity(sharedSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			abortUnauthorized(c, "UNAUTHORIZED", "Authorization header required")
			return
		}

		identity, err := decodeIdentity(token, sharedSecret)
		if err != nil {
			abortUnauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		c.Set(IdentityKey, identity)
		c.Next()
	}
}

// RequireRole returns a middleware enforcing a caller role. It must run
// after Identity.
func RequireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok || identity.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": fmt.Sprintf("%s role required", role),
				},
			})
			return
		}
		c.Next()
	}
}

func decodeIdentity(token, sharedSecret string) (model.Identity, error) {
	var claims identityClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(sharedSecret), nil
	})
	if err != nil {
		return model.Identity{}, fmt.Errorf("parse token: %w", err)
	}
	if !parsed.Valid {
		return model.Identity{}, jwt.ErrTokenUnverifiable
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.Identity{}, fmt.Errorf("parse subject: %w", err)
	}

	return model.Identity{
		UserID: userID,
		Email:  claims.Email,
		Name:   claims.Name,
		Role:   model.Role(claims.Role),
	}, nil
}

// GetIdentity returns the caller identity from context.
func GetIdentity(c *gin.Context) (model.Identity, bool) {
	if val, exists := c.Get(IdentityKey); exists {
		if identity, ok := val.(model.Identity); ok {
			return identity, true
		}
	}
	return model.Identity{}, false
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader(AuthorizationHeader)
	if strings.HasPrefix(authHeader, BearerPrefix) {
		return strings.TrimPrefix(authHeader, BearerPrefix)
	}
	return ""
}
