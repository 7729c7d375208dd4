package middlewares

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/kamaumbugua/soko-api/services"
)

// RequireAuth validates the Bearer token and stores the raw claims plus the
// resolved services.Identity in the gin context.
func RequireAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		userId, ok := claims["user_id"].(float64)
		if !ok || userId <= 0 {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}
		role, _ := claims["role"].(string)

		ctx.Set("user", claims)
		ctx.Set("identity", services.Identity{
			UserID:  int(userId),
			IsAdmin: role == "admin",
		})
		ctx.Next()
	}
}

// CallerIdentity fetches the identity set by RequireAuth. The zero Identity is
// returned on unauthenticated requests.
func CallerIdentity(ctx *gin.Context) services.Identity {
	value, exists := ctx.Get("identity")
	if !exists {
		return services.Identity{}
	}
	identity, ok := value.(services.Identity)
	if !ok {
		return services.Identity{}
	}
	return identity
}
