package devserver

import (
	"strings"

	"ftms-portal/internal/pkg/jwt"
	"ftms-portal/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const currentUserKey = "currentUser"

// AuthMiddleware validates the bearer token and resolves the account
// behind it. Every request below /api except login passes through it.
func AuthMiddleware(store *Store, secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string
		authHeader := c.Get("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			accessToken = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := jwt.Validate(accessToken, secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		user, ok := store.UserByEmail(claims.Subject)
		if !ok {
			return response.Unauthorized(c, "Unknown account")
		}

		c.Locals(currentUserKey, user)
		return c.Next()
	}
}

// RoleMiddleware restricts a route to the given roles
func RoleMiddleware(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		for _, allowed := range allowedRoles {
			if string(user.Role) == allowed {
				return c.Next()
			}
		}
		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// CurrentUser returns the account resolved by AuthMiddleware
func CurrentUser(c *fiber.Ctx) *User {
	user, _ := c.Locals(currentUserKey).(*User)
	return user
}
