// Package middleware holds the gin middleware the HTTP surface chains
// in front of its mutating routes, grounded on the teacher's
// AuthService.ValidateToken (internal/service/auth_service.go):
// HS256-only, same claims-type assertion, same unauthorized mapping.
package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/maktab-edu/timetable-solver/pkg/errors"
	"github.com/maktab-edu/timetable-solver/pkg/response"
)

// Claims is the minimal access-token payload the solver's auth checks
// need: who is calling, nothing about the timetabling domain itself.
type Claims struct {
	Subject string `json:"sub"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

const claimsContextKey = "auth_claims"

// JWTAuth validates the bearer token on every request when required is
// true; when false, it's a no-op so local/dev deployments can skip
// auth entirely (§4.16's AUTH_REQUIRED toggle).
func JWTAuth(secret string, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !required {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		raw := strings.TrimPrefix(header, "Bearer ")
		if raw == "" || raw == header {
			response.Error(c, apperrors.ErrUnauthorized.WithDetail("missing bearer token"))
			c.Abort()
			return
		}

		token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			response.Error(c, apperrors.ErrUnauthorized.WithDetail("invalid token"))
			c.Abort()
			return
		}

		claims, ok := token.Claims.(*Claims)
		if !ok {
			response.Error(c, apperrors.ErrUnauthorized.WithDetail("invalid token claims"))
			c.Abort()
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// ClaimsFrom returns the authenticated claims stashed by JWTAuth, if any.
func ClaimsFrom(c *gin.Context) (*Claims, bool) {
	v, ok := c.Get(claimsContextKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok
}
