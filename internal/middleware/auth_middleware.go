// planning-auto/internal/middleware/auth_middleware.go

package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/UniversMood/planning-auto/config"
	"github.com/UniversMood/planning-auto/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

// CachedUserData - данные пользователя, которые кладутся в кэш и в контекст запроса.
type CachedUserData struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// userCacheKey - ключ кэша данных пользователя. Сбрасывается при изменении профиля.
func userCacheKey(userID uint) string {
	return fmt.Sprintf("user:%d:data", userID)
}

// InvalidateUserCache удаляет кэшированные данные пользователя после обновления.
func InvalidateUserCache(userID uint) {
	if config.RDB == nil {
		return
	}
	if err := config.RDB.Del(config.Ctx, userCacheKey(userID)).Err(); err != nil {
		slog.Error("Failed to invalidate cache for user", "error", err, "user_id", userID)
	} else {
		slog.Info("Cache invalidated successfully for user", "user_id", userID)
	}
}

// AuthMiddleware проверяет JWT из cookie или заголовка Authorization и кладёт
// данные пользователя в контекст. Данные кэшируются в Redis на 10 минут,
// чтобы не ходить в базу на каждый запрос.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie("auth_token")
		if err != nil || tokenStr == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				handleAuthError(c, "Authorization token not provided")
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				handleAuthError(c, "Invalid Authorization header format")
				return
			}
			tokenStr = parts[1]
		}

		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return config.JwtKey, nil
		})

		if err != nil || !token.Valid {
			c.SetCookie("auth_token", "", -1, "/", "", false, true)
			handleAuthError(c, "Invalid or expired token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			handleAuthError(c, "Invalid token claims")
			return
		}

		userIDFloat, ok := claims["user_id"].(float64)
		if !ok {
			handleAuthError(c, "Invalid user ID format in token")
			return
		}
		userID := uint(userIDFloat)

		if config.RDB != nil {
			cachedData, err := config.RDB.Get(config.Ctx, userCacheKey(userID)).Result()
			if err == nil {
				var userData CachedUserData
				if json.Unmarshal([]byte(cachedData), &userData) == nil {
					setContextAndProceed(c, &userData)
					return
				}
				slog.Warn("Failed to unmarshal cached user data", "user_id", userID, "data", cachedData)
			} else if err != redis.Nil {
				slog.Error("Redis GET command failed", "error", err, "user_id", userID)
			}
		}

		var dbUser models.User
		if err := config.DB.First(&dbUser, userID).Error; err != nil {
			c.SetCookie("auth_token", "", -1, "/", "", false, true)
			handleAuthError(c, "User from token not found in DB")
			return
		}

		userData := CachedUserData{
			UserID: dbUser.ID,
			Name:   dbUser.Name,
			Email:  dbUser.Email,
			Role:   dbUser.Role,
		}

		if config.RDB != nil {
			jsonData, err := json.Marshal(userData)
			if err != nil {
				slog.Error("Failed to marshal user data for caching", "error", err, "user_id", userID)
			} else if err := config.RDB.Set(config.Ctx, userCacheKey(userID), jsonData, 10*time.Minute).Err(); err != nil {
				slog.Error("Failed to SET user data to cache", "error", err, "user_id", userID)
			}
		}

		setContextAndProceed(c, &userData)
	}
}

func setContextAndProceed(c *gin.Context, userData *CachedUserData) {
	c.Set("user_id", userData.UserID)
	c.Set("userName", userData.Name)
	c.Set("userEmail", userData.Email)
	c.Set("role", userData.Role)
	c.Next()
}

// RoleMiddleware пропускает запрос, только если роль пользователя входит в allowed.
// Администратор проходит всегда.
func RoleMiddleware(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "Role not found in context"})
			c.Abort()
			return
		}

		role, ok := roleVal.(string)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "Internal role format error"})
			c.Abort()
			return
		}

		if role == models.RoleAdmin {
			c.Next()
			return
		}

		for _, allowedRole := range allowed {
			if role == allowedRole {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "Permission denied"})
		c.Abort()
	}
}

func handleAuthError(c *gin.Context, message string) {
	if strings.Contains(c.GetHeader("Accept"), "text/html") {
		c.Redirect(http.StatusFound, "/")
	} else {
		c.JSON(http.StatusUnauthorized, gin.H{"error": message})
	}
	c.Abort()
}
