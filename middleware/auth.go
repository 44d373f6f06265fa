package middleware

import (
	"strings"

	"github.com/yamamaalobaid/damascus-tour-guide/constants"
	"github.com/yamamaalobaid/damascus-tour-guide/helper"
	"github.com/yamamaalobaid/damascus-tour-guide/utils"

	"github.com/gofiber/fiber/v2"
)

func extractToken(c *fiber.Ctx) string {
	if cookie := c.Cookies("access_token"); cookie != "" {
		return cookie
	}
	auth := c.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// Protected rejects requests without a valid access token.
func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_UNAUTHORIZED, nil)
		}
		claim, err := helper.ParseToken(token)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MSG_UNAUTHORIZED, err)
		}
		c.Locals("user", claim)
		return c.Next()
	}
}

// OptionalAuth attaches the claim when a valid token is present but lets
// anonymous requests through.
func OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := extractToken(c); token != "" {
			if claim, err := helper.ParseToken(token); err == nil {
				c.Locals("user", claim)
			}
		}
		return c.Next()
	}
}

// AdminOnly requires an authenticated admin. Must run after Protected.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claim, err := helper.GetUserFromToken(c)
		if err != nil || claim.Role != constants.ROLE_ADMIN {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.MSG_FORBIDDEN, nil)
		}
		return c.Next()
	}
}

// AgentOrAdmin requires a support agent or admin. Must run after Protected.
func AgentOrAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claim, err := helper.GetUserFromToken(c)
		if err != nil || (claim.Role != constants.ROLE_AGENT && claim.Role != constants.ROLE_ADMIN) {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.MSG_FORBIDDEN, nil)
		}
		return c.Next()
	}
}
