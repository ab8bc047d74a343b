package middlewares

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/emilycheera/nourish/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates the bearer token and stores a services.Viewer on
// the context for handlers to pass into the core.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		secret := []byte(os.Getenv("JWT_SECRET"))
		if len(secret) == 0 {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured: JWT_SECRET not set"})
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			return
		}

		role, _ := claims["role"].(string)
		id, _ := claims["userId"].(float64) // JSON numbers decode to float64
		if id == 0 || (role != services.RoleDietitian && role != services.RolePatient) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			return
		}

		viewer := services.Viewer{Role: role}
		if role == services.RoleDietitian {
			viewer.DietitianID = uint(id)
		} else {
			viewer.PatientID = uint(id)
		}
		c.Set("viewer", viewer)

		c.Next()
	}
}

// RequireDietitian rejects requests whose viewer is not a dietitian.
func RequireDietitian() gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, ok := c.MustGet("viewer").(services.Viewer)
		if !ok || !viewer.IsDietitian() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "dietitian access required"})
			return
		}
		c.Next()
	}
}
