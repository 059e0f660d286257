package middleware

import (
	"net/http"
	"os"
	"strings"

	"omi-stitch-api/config"
	"omi-stitch-api/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	AdminID string `json:"admin_id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	jwt.RegisteredClaims
}

// AuthMiddleware validates the bearer token and loads the admin account
// behind it. Review endpoints downstream read the identity from context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get token from header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		// Check Bearer prefix
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		// Parse token
		token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
			return []byte(os.Getenv("JWT_SECRET")), nil
		}, jwt.WithValidMethods([]string{"HS256"}))

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		// Get claims
		claims, ok := token.Claims.(*Claims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		// Check the account still exists and has not been deactivated
		var admin models.AdminUser
		if err := config.DB.Where("id = ? AND is_active = ?", claims.AdminID, true).First(&admin).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not found or disabled"})
			c.Abort()
			return
		}

		// Set admin info in context
		c.Set("adminID", admin.ID)
		c.Set("adminEmail", admin.Email)
		c.Set("adminName", admin.DisplayName)

		c.Next()
	}
}

// AdminName returns the display name of the authenticated admin, falling
// back to the account email. This is what lands in reviewed_by.
func AdminName(c *gin.Context) string {
	if name, ok := c.Get("adminName"); ok {
		if s, _ := name.(string); s != "" {
			return s
		}
	}
	if email, ok := c.Get("adminEmail"); ok {
		if s, _ := email.(string); s != "" {
			return s
		}
	}
	return "admin"
}
