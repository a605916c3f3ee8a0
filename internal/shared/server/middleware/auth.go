package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/shared/auth"
	"resume-screener/internal/shared/server/respond"
)

const (
	userIDKey      = "userId"
	userEmailKey   = "userEmail"
	userNameKey    = "userName"
	userPictureKey = "userPicture"
)

// Paths reachable without any identity.
var openPaths = map[string]struct{}{
	"/healthz":       {},
	"/metrics":       {},
	"/api/v1/health": {},
}

// Auth resolves the caller identity. A Bearer token yields a verified
// user; otherwise X-Guest-Id yields a "guest:<id>" identity. Requests
// with neither are rejected.
func Auth(env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		path := c.Request.URL.Path
		if _, open := openPaths[path]; open || strings.HasPrefix(path, "/api/v1/auth/google/") {
			c.Next()
			return
		}

		if header := strings.TrimSpace(c.GetHeader("Authorization")); header != "" {
			claims, ok := verifyBearer(header)
			if !ok {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}
			setIdentity(c, claims)
			c.Next()
			return
		}

		guestID := strings.TrimSpace(c.GetHeader("X-Guest-Id"))
		if guestID == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
			return
		}
		c.Set(userIDKey, "guest:"+guestID)
		c.Set("isGuest", true)
		c.Next()
	}
}

func verifyBearer(header string) (auth.Claims, bool) {
	if !strings.HasPrefix(header, "Bearer ") {
		return auth.Claims{}, false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
	if token == "" {
		return auth.Claims{}, false
	}
	claims, err := auth.VerifyJWT(token)
	if err != nil {
		return auth.Claims{}, false
	}
	return claims, true
}

func setIdentity(c *gin.Context, claims auth.Claims) {
	c.Set(userIDKey, claims.Sub)
	if claims.Email != "" {
		c.Set(userEmailKey, claims.Email)
	}
	if claims.Name != "" {
		c.Set(userNameKey, claims.Name)
	}
	if claims.Picture != "" {
		c.Set(userPictureKey, claims.Picture)
	}
	c.Set("isGuest", false)
}

// UserIDFromContext fetches the identity set by Auth.
func UserIDFromContext(c *gin.Context) string {
	return stringFromContext(c, userIDKey)
}

// UserEmailFromContext fetches the email set by Auth.
func UserEmailFromContext(c *gin.Context) string {
	return stringFromContext(c, userEmailKey)
}

// UserNameFromContext fetches the display name set by Auth.
func UserNameFromContext(c *gin.Context) string {
	return stringFromContext(c, userNameKey)
}

// UserPictureFromContext fetches the avatar URL set by Auth.
func UserPictureFromContext(c *gin.Context) string {
	return stringFromContext(c, userPictureKey)
}

func stringFromContext(c *gin.Context, key string) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(key)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}
