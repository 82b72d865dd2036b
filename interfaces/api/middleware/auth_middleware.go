package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/pinkcat015/todolist/pkg/logger"
	"github.com/pinkcat015/todolist/pkg/utils"
)

// Protected validates the bearer token and stores the user in c.Locals("user").
func Protected(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return utils.UnauthorizedResponse(c, "Missing authorization header")
		}

		token := utils.ExtractTokenFromHeader(authHeader)
		if token == "" {
			return utils.UnauthorizedResponse(c, "Invalid authorization header format")
		}

		if err := authenticate(c, token, jwtSecret); err != nil {
			logger.WarnContext(c.UserContext(), "Token validation failed", "error", err)
			switch {
			case errors.Is(err, utils.ErrExpiredToken):
				return utils.UnauthorizedResponse(c, "Token has expired")
			case errors.Is(err, utils.ErrMissingToken):
				return utils.UnauthorizedResponse(c, "Missing token")
			default:
				return utils.UnauthorizedResponse(c, "Invalid token")
			}
		}

		return c.Next()
	}
}

// QueryToken authenticates with ?token= for clients that cannot set headers (websockets).
func QueryToken(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Query("token")
		if token == "" {
			token = utils.ExtractTokenFromHeader(c.Get("Authorization"))
		}
		if token == "" {
			return utils.UnauthorizedResponse(c, "Missing token")
		}

		if err := authenticate(c, token, jwtSecret); err != nil {
			logger.WarnContext(c.UserContext(), "Websocket token rejected", "error", err)
			return utils.UnauthorizedResponse(c, "Invalid token")
		}
		return c.Next()
	}
}

func authenticate(c *fiber.Ctx, token, jwtSecret string) error {
	userCtx, err := utils.ValidateToken(token, jwtSecret)
	if err != nil {
		return err
	}

	c.Locals("user", userCtx)
	c.SetUserContext(logger.ContextWithUserID(c.UserContext(), userCtx.ID))
	return nil
}
