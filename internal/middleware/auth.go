package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/callscope/core/internal/pkg/response"
	"github.com/callscope/core/internal/pkg/token"
)

const (
	// CookieName is the session cookie the dashboard frontend sends.
	CookieName = "token"

	contextKeyClaims = "auth_claims"
)

// Auth returns a middleware that enforces session-token authentication.
// A request without any token is 401; a token that fails verification
// (bad signature, malformed, expired) is 403, matching the split the
// frontend distinguishes on.
func Auth(issuer *token.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := ExtractToken(c)
		if raw == "" {
			response.Unauthorized(c, "Access Denied: No token provided")
			return
		}
		claims, err := issuer.Verify(raw)
		if err != nil {
			response.Forbidden(c, "Invalid Token")
			return
		}
		c.Set(contextKeyClaims, claims)
		c.Next()
	}
}

// OptionalAuth sets claims if a valid token is present, but does not block
// the request. Rate limiting keys off this to exempt logged-in users.
func OptionalAuth(issuer *token.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := ExtractToken(c); raw != "" {
			if claims, err := issuer.Verify(raw); err == nil {
				c.Set(contextKeyClaims, claims)
			}
		}
		c.Next()
	}
}

// CurrentClaims extracts the verified session claims from context.
// Returns nil outside an authenticated request.
func CurrentClaims(c *gin.Context) *token.Claims {
	v, _ := c.Get(contextKeyClaims)
	claims, _ := v.(*token.Claims)
	return claims
}

// CurrentUserID extracts the authenticated user ID from context.
func CurrentUserID(c *gin.Context) string {
	if claims := CurrentClaims(c); claims != nil {
		return claims.UserID()
	}
	return ""
}

// IsAuthenticated reports whether the request carries verified claims.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentClaims(c) != nil
}

// ExtractToken pulls the raw session token from the request: the session
// cookie first, then an Authorization header for non-browser clients.
func ExtractToken(c *gin.Context) string {
	if raw, err := c.Cookie(CookieName); err == nil {
		if tok := NormalizeToken(raw); tok != "" {
			return tok
		}
	}
	return NormalizeToken(c.GetHeader("Authorization"))
}

// NormalizeToken trims spaces and strips an optional Bearer prefix.
func NormalizeToken(raw string) string {
	tok := strings.TrimSpace(raw)
	if tok == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(tok), "bearer ") {
		return strings.TrimSpace(tok[7:])
	}
	return tok
}
