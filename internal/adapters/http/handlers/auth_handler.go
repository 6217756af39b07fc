package handlers

import (
	"errors"
	"strings"

	"simplekyc/internal/adapters/http/middleware"
	"simplekyc/internal/core/domain"
	"simplekyc/internal/core/guard"
	"simplekyc/internal/core/services"
	"simplekyc/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	sessionService *services.SessionService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sessionService *services.SessionService) *AuthHandler {
	return &AuthHandler{sessionService: sessionService}
}

// LoginRequest represents login request body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles user login
// @Summary Login user
// @Description Authenticate against the user directory and mint a session
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate required fields
	if req.Username == "" {
		return response.BadRequest(c, "Username is required")
	}
	if req.Password == "" {
		return response.BadRequest(c, "Password is required")
	}

	// Login against the directory
	input := &services.LoginInput{
		Username: strings.TrimSpace(req.Username),
		Password: req.Password,
	}

	result, err := h.sessionService.Login(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			return response.Unauthorized(c, "Invalid username or password")
		case errors.Is(err, domain.ErrDirectoryUnavailable):
			return response.BadGateway(c, "User directory is unavailable")
		default:
			return response.InternalServerError(c, "Failed to login")
		}
	}

	return response.Success(c, "Login successful", fiber.Map{
		"access_token": result.AccessToken,
		"user":         result.User,
		"redirect_to":  result.RedirectTo,
	})
}

// Logout handles user logout
// @Summary Logout user
// @Description Revoke the current session token
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token, _ := c.Locals("accessToken").(string)

	if err := h.sessionService.Logout(c.Context(), token); err != nil {
		return response.InternalServerError(c, "Failed to logout")
	}

	return response.Success(c, "Logout successful", fiber.Map{
		"redirect_to": guard.RouteLogin,
	})
}

// LogoutAll handles logging out of every session
// @Summary Logout everywhere
// @Description Revoke every live session of the current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /auth/logout/all [post]
func (h *AuthHandler) LogoutAll(c *fiber.Ctx) error {
	token, _ := c.Locals("accessToken").(string)

	if err := h.sessionService.LogoutAll(c.Context(), token); err != nil {
		return response.InternalServerError(c, "Failed to logout")
	}

	return response.Success(c, "Logged out everywhere", fiber.Map{
		"redirect_to": guard.RouteLogin,
	})
}

// Me handles session hydration
// @Summary Current session
// @Description Rebuild the session behind the bearer token
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	token, _ := c.Locals("accessToken").(string)

	session, err := h.sessionService.Hydrate(c.Context(), token)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return response.Redirected(c, fiber.StatusUnauthorized, guard.RouteLogin)
		}
		return response.InternalServerError(c, "Failed to load session")
	}

	return response.Success(c, "Session loaded", fiber.Map{
		"user":       session.User,
		"landing":    guard.DefaultLanding(session),
		"is_officer": session.IsOfficer(),
	})
}

// sessionOf is a handler-side shortcut for the guard session
func sessionOf(c *fiber.Ctx) domain.Session {
	return middleware.SessionFromLocals(c)
}
