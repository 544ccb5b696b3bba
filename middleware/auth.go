package middleware

import (
	"net/http"
	"strings"

	"rent-backend/models"
	"rent-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const currentUserKey = "currentUser"

// extractToken reads the session token from the Authorization header first,
// falling back to the jwt cookie. The "loggedout" sentinel the logout
// endpoint writes is treated as no token.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}

	if cookie, err := c.Cookie("jwt"); err == nil && cookie != "" && cookie != "loggedout" {
		return cookie
	}

	return ""
}

func resolveUser(c *gin.Context, db *gorm.DB, secret []byte) (*models.User, bool) {
	token := extractToken(c)
	if token == "" {
		return nil, false
	}

	claims, err := utils.ValidateToken(secret, token)
	if err != nil {
		return nil, false
	}

	var user models.User
	if err := db.First(&user, claims.UserID).Error; err != nil {
		return nil, false
	}

	// Token predating the last password change is dead.
	if user.PasswordChangedAt != nil && claims.IssuedAt != nil &&
		user.PasswordChangedAt.After(claims.IssuedAt.Time) {
		return nil, false
	}

	return &user, true
}

// RequireUser rejects unauthenticated requests.
func RequireUser(db *gorm.DB, secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := resolveUser(c, db, secret)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "fail",
				"message": "you are not logged in, please log in to get access",
			})
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// OptionalUser sets the user when a valid token is present and continues
// either way.
func OptionalUser(db *gorm.DB, secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, ok := resolveUser(c, db, secret); ok {
			c.Set(currentUserKey, user)
		}
		c.Next()
	}
}

// CurrentUser fetches the authenticated user placed by RequireUser or
// OptionalUser.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
