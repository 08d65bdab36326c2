// middleware/auth.go
package middleware

import (
	"os"
	"predictplay/database"
	"predictplay/models"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func AuthMiddleware(c *fiber.Ctx) error {
	claims, err := parseBearerToken(c.Get("Authorization"))
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	c.Locals("userId", claims["user_id"])
	c.Locals("username", claims["username"])
	c.Locals("isGamemaster", claims["is_gamemaster"])

	touchLastSeen(claims["user_id"])

	return c.Next()
}

// GamemasterMiddleware gates the broadcast surface (games, questions,
// answers) to gamemaster accounts.
func GamemasterMiddleware(c *fiber.Ctx) error {
	claims, err := parseBearerToken(c.Get("Authorization"))
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	isGamemaster, ok := claims["is_gamemaster"].(bool)
	if !ok || !isGamemaster {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "Access denied. Gamemaster privileges required."})
	}

	c.Locals("userId", claims["user_id"])
	c.Locals("username", claims["username"])
	c.Locals("isGamemaster", true)

	return c.Next()
}

// WebSocketAuthMiddleware validates JWT for live-feed connections. An
// unauthenticated connection is allowed through as a spectator.
func WebSocketAuthMiddleware(c *fiber.Ctx) error {
	var tokenString string

	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			tokenString = parts[1]
		}
	}
	if tokenString == "" {
		tokenString = c.Query("token")
	}
	if tokenString == "" {
		tokenString = c.Cookies("token")
	}

	claims, err := parseToken(tokenString)
	if err != nil {
		c.Locals("userId", nil)
		c.Locals("username", "Spectator")
		return c.Next()
	}

	c.Locals("userId", claims["user_id"])
	c.Locals("username", claims["username"])
	c.Locals("isGamemaster", claims["is_gamemaster"])

	return c.Next()
}

func parseBearerToken(authHeader string) (jwt.MapClaims, error) {
	if authHeader == "" {
		return nil, fiber.NewError(401, "Missing authorization header")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, fiber.NewError(401, "Invalid authorization header format")
	}

	return parseToken(parts[1])
}

func parseToken(tokenString string) (jwt.MapClaims, error) {
	if tokenString == "" {
		return nil, fiber.NewError(401, "Missing token")
	}

	jwtSecret := os.Getenv("JWT_SECRET")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(401, "Invalid signing method")
		}
		return []byte(jwtSecret), nil
	})

	if err != nil || !token.Valid {
		return nil, fiber.NewError(401, "Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fiber.NewError(401, "Invalid token claims")
	}

	exp, ok := claims["exp"].(float64)
	if !ok || time.Unix(int64(exp), 0).Before(time.Now()) {
		return nil, fiber.NewError(401, "Token expired")
	}

	return claims, nil
}

func GetUserID(c *fiber.Ctx) (uint, error) {
	userID := c.Locals("userId")
	if userID == nil {
		return 0, fiber.NewError(401, "User not authenticated")
	}

	if id, ok := userID.(float64); ok {
		return uint(id), nil
	}

	if id, ok := userID.(uint); ok {
		return id, nil
	}

	return 0, fiber.NewError(401, "Invalid user ID format")
}

func GetUsername(c *fiber.Ctx) (string, error) {
	username := c.Locals("username")
	if username == nil {
		return "", fiber.NewError(401, "User not authenticated")
	}

	if name, ok := username.(string); ok {
		return name, nil
	}

	return "", fiber.NewError(401, "Invalid username format")
}

func IsGamemaster(c *fiber.Ctx) bool {
	isGamemaster := c.Locals("isGamemaster")
	if isGamemaster == nil {
		return false
	}

	if gm, ok := isGamemaster.(bool); ok {
		return gm
	}

	return false
}

// touchLastSeen updates the user's last login timestamp
func touchLastSeen(userID interface{}) {
	if userID == nil {
		return
	}

	db := database.GetDB()
	if db == nil {
		return
	}

	var id uint
	switch v := userID.(type) {
	case float64:
		id = uint(v)
	case uint:
		id = v
	default:
		return
	}

	db.Model(&models.User{}).Where("id = ?", id).Update("last_login", time.Now())
}
