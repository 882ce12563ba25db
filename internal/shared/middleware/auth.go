package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"promptvault-backend/internal/shared/response"
)

// CallerIDKey is the gin context key under which the verified caller
// identity is stored. Handlers must treat the value as an opaque string.
const CallerIDKey = "caller_id"

// Auth verifies the Bearer token and injects the caller identity into the
// context. Requests without a valid identity are rejected with 401 before
// any handler runs.
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerID, err := callerFromRequest(c, jwtSecret)
		if err != nil {
			response.Unauthorized(c, "Unauthorized")
			c.Abort()
			return
		}

		c.Set(CallerIDKey, callerID)
		c.Next()
	}
}

// OptionalAuth resolves the caller identity when a valid token is present
// and proceeds anonymously when it is not. Used on routes that serve both
// public and owner-scoped reads.
func OptionalAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if callerID, err := callerFromRequest(c, jwtSecret); err == nil {
			c.Set(CallerIDKey, callerID)
		}
		c.Next()
	}
}

// CallerID returns the verified caller identity, or "" when the request is
// anonymous.
func CallerID(c *gin.Context) string {
	if v, exists := c.Get(CallerIDKey); exists {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// MustCallerID returns the caller identity and writes a 401 when absent.
// Returns false if the request was rejected.
func MustCallerID(c *gin.Context) (string, bool) {
	callerID := CallerID(c)
	if callerID == "" {
		response.Unauthorized(c, "Unauthorized")
		return "", false
	}
	return callerID, true
}

func callerFromRequest(c *gin.Context, jwtSecret string) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", fmt.Errorf("missing authorization header")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", fmt.Errorf("invalid authorization header format")
	}

	claims := jwt.MapClaims{}
	parsedToken, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !parsedToken.Valid {
		return "", fmt.Errorf("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", fmt.Errorf("missing subject claim")
	}
	return sub, nil
}
