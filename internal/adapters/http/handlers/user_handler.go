package handlers

import (
	"errors"
	"strconv"

	"simplekyc/internal/core/domain"
	"simplekyc/internal/core/services"
	"simplekyc/internal/pkg/pagination"
	"simplekyc/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user profile endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ListUsers handles the officer's user listing
// @Summary List users
// @Description List directory users (officer only)
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} pagination.Response
// @Failure 502 {object} response.Response
// @Router /users [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	entries, total, err := h.userService.List(c.Context(), params)
	if err != nil {
		if errors.Is(err, domain.ErrDirectoryUnavailable) {
			return response.BadGateway(c, "User directory is unavailable")
		}
		return response.InternalServerError(c, "Failed to list users")
	}

	return c.JSON(pagination.NewResponse(entries, params, total))
}

// GetUser handles fetching one directory profile
// @Summary Get user
// @Description Fetch one directory profile
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	subjectID, err := strconv.Atoi(c.Params("id"))
	if err != nil || subjectID < 1 {
		return response.BadRequest(c, "Invalid user id")
	}

	profile, err := h.userService.GetProfile(c.Context(), subjectID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, domain.ErrDirectoryUnavailable):
			return response.BadGateway(c, "User directory is unavailable")
		default:
			return response.InternalServerError(c, "Failed to load user")
		}
	}

	return response.Success(c, "User loaded", profile)
}

// GetPersonalInfo handles the personal-information page data
// @Summary Get personal info
// @Description Saved personal info, or sections seeded from the directory
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /users/{id}/personal-info [get]
func (h *UserHandler) GetPersonalInfo(c *fiber.Ctx) error {
	subjectID, err := strconv.Atoi(c.Params("id"))
	if err != nil || subjectID < 1 {
		return response.BadRequest(c, "Invalid user id")
	}

	data, err := h.userService.GetPersonalInfo(c.Context(), subjectID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, domain.ErrDirectoryUnavailable):
			return response.BadGateway(c, "User directory is unavailable")
		default:
			return response.InternalServerError(c, "Failed to load personal info")
		}
	}

	return response.Success(c, "Personal info loaded", data)
}

// SavePersonalInfo handles personal-information edits
// @Summary Save personal info
// @Description Validate and persist personal-information edits
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param body body services.PersonalInfoData true "Personal info"
// @Success 200 {object} response.Response
// @Failure 422 {object} map[string]interface{}
// @Router /users/{id}/personal-info [put]
func (h *UserHandler) SavePersonalInfo(c *fiber.Ctx) error {
	subjectID, err := strconv.Atoi(c.Params("id"))
	if err != nil || subjectID < 1 {
		return response.BadRequest(c, "Invalid user id")
	}

	var data services.PersonalInfoData
	if err := c.BodyParser(&data); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	tree, err := h.userService.SavePersonalInfo(c.Context(), subjectID, viewerID(c), &data)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.ValidationFailed(c, tree, "")
		case errors.Is(err, domain.ErrReadOnly):
			return response.Forbidden(c, "Personal information is read-only for reviewers")
		default:
			return response.InternalServerError(c, "Failed to save personal info")
		}
	}

	return response.Success(c, "Personal info saved", data)
}
