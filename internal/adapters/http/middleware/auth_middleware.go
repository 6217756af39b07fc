package middleware

import (
	"strconv"
	"strings"

	"simplekyc/internal/config"
	"simplekyc/internal/core/domain"
	"simplekyc/internal/core/guard"
	"simplekyc/internal/pkg/jwt"
	"simplekyc/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware creates authentication middleware. Denials carry the
// login route so the client knows where to navigate.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		// 1. Try to get token from cookie first
		accessToken = c.Cookies("access_token")

		// 2. If not in cookie, try Authorization header
		if accessToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		// 3. No token found
		if accessToken == "" {
			return response.Redirected(c, fiber.StatusUnauthorized, guard.RouteLogin)
		}

		// 4. Validate token
		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			return response.Redirected(c, fiber.StatusUnauthorized, guard.RouteLogin)
		}

		// 5. Set user info in context
		c.Locals("userID", claims.UserID)
		c.Locals("username", claims.Username)
		c.Locals("role", claims.Role)
		c.Locals("accessToken", accessToken)

		return c.Next()
	}
}

// OfficerOnly restricts a route to the officer role. An authenticated
// caller with the wrong role is sent to the forbidden page, matching
// the role guard on the review pages.
func OfficerOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := SessionFromLocals(c)
		if decision := guard.RequireRole(session, domain.RoleOfficer); !decision.Allow {
			status := fiber.StatusForbidden
			if decision.RedirectTo == guard.RouteLogin {
				status = fiber.StatusUnauthorized
			}
			return response.Redirected(c, status, decision.RedirectTo)
		}
		return c.Next()
	}
}

// OwnProfileOnly restricts a subject-scoped route (":id") to its owner.
// Officers bypass the check; a non-owner user is pointed at their own
// profile route.
func OwnProfileOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		subjectID, err := strconv.Atoi(c.Params("id"))
		if err != nil || subjectID < 1 {
			return response.BadRequest(c, "Invalid user id")
		}

		session := SessionFromLocals(c)
		if decision := guard.RequireOwnProfile(session, subjectID); !decision.Allow {
			status := fiber.StatusForbidden
			if decision.RedirectTo == guard.RouteLogin {
				status = fiber.StatusUnauthorized
			}
			return response.Redirected(c, status, decision.RedirectTo)
		}
		return c.Next()
	}
}

// SessionFromLocals rebuilds the guard's session view from the locals
// set by AuthMiddleware
func SessionFromLocals(c *fiber.Ctx) domain.Session {
	userID, ok := c.Locals("userID").(int)
	if !ok {
		return domain.AnonymousSession()
	}
	username, _ := c.Locals("username").(string)
	role, _ := c.Locals("role").(string)
	token, _ := c.Locals("accessToken").(string)

	return domain.NewSession(token, &domain.UserRecord{
		ID:       userID,
		Username: username,
		Role:     domain.Role(role),
	})
}
