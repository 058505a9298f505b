package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"Go-Recipe-Chat/domain"
	"Go-Recipe-Chat/internal/api/presenters"
	"Go-Recipe-Chat/internal/utils/logger"
	"Go-Recipe-Chat/pkg/jwt"
)

// UserIDKey is the c.Locals key holding the authenticated user's id.
const UserIDKey = "user_id"

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		ErrorHandler() fiber.ErrorHandler
	}

	middleware struct {
		corsOrigins string
		log         *logger.Logger
	}
)

func NewMiddleware(corsOrigins string, log *logger.Logger) Middleware {
	if corsOrigins == "" {
		corsOrigins = "*"
	}
	return &middleware{
		corsOrigins: corsOrigins,
		log:         log.With("component", "Middleware"),
	}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: m.corsOrigins,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	})
}

// AuthMiddleware accepts "Authorization: Bearer <jwt>" or, for socket
// upgrades where browsers cannot set headers, a token query parameter.
func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Query("token")
		if header := c.Get(fiber.HeaderAuthorization); header != "" {
			if !strings.HasPrefix(header, "Bearer ") {
				return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, domain.ErrTokenInvalid)
			}
			token = strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		}
		if token == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenNotFound)
		}

		userID, err := jwtService.GetUserIDByToken(token)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
		}

		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}

// ErrorHandler turns errors that escape the handlers into the JSON envelope.
func (m *middleware) ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := presenters.StatusCode(err)
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return presenters.ErrorResponse(c, status, fiberErr.Message, nil)
		}
		if status == fiber.StatusInternalServerError {
			m.log.Error("unhandled error", "method", c.Method(), "path", c.Path(), "error", err)
			return presenters.ErrorResponse(c, status, domain.MessageInternalServerError, nil)
		}
		return presenters.ErrorResponse(c, status, domain.MessageFailedProcessRequest, err)
	}
}

// UserID returns the id AuthMiddleware stored on the request.
func UserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals(UserIDKey).(uint)
	return id, ok
}
