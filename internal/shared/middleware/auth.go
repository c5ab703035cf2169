package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"blognest-backend/internal/session"
)

// Auth verifies the bearer token issued by the external auth
// provider and attaches the resulting identity to the request
// context, where session.Holder.RequireAuth picks it up.
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(401, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(401, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}
		token := parts[1]

		claims := jwt.MapClaims{}
		parsedToken, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})

		if err != nil || !parsedToken.Valid {
			c.JSON(401, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		uid, ok := claims["sub"].(string)
		if !ok || uid == "" {
			c.JSON(401, gin.H{"error": "invalid subject in token"})
			c.Abort()
			return
		}

		identity := &session.Identity{UID: uid}
		if name, ok := claims["name"].(string); ok {
			identity.DisplayName = name
		}
		if email, ok := claims["email"].(string); ok {
			identity.Email = email
		}
		if picture, ok := claims["picture"].(string); ok {
			identity.PhotoURL = picture
		}

		c.Request = c.Request.WithContext(session.WithIdentity(c.Request.Context(), identity))
		c.Set("identity", identity)

		c.Next()
	}
}
