package handlers

import (
	"errors"
	"strconv"

	"simplekyc/internal/core/domain"
	"simplekyc/internal/core/services"
	"simplekyc/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// KYCHandler handles the KYC form endpoints
type KYCHandler struct {
	kycService *services.KYCService
}

// NewKYCHandler creates a new KYC handler
func NewKYCHandler(kycService *services.KYCService) *KYCHandler {
	return &KYCHandler{kycService: kycService}
}

// UpdateFieldRequest represents one field edit
type UpdateFieldRequest struct {
	Section string `json:"section"`
	Index   int    `json:"index"`
	Field   string `json:"field"`
	Value   string `json:"value"`
}

// subjectID parses the :id route param
func subjectID(c *fiber.Ctx) (int, error) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return 0, domain.ErrInvalidInput
	}
	return id, nil
}

// viewerID is the authenticated caller's user id, 0 when anonymous
func viewerID(c *fiber.Ctx) int {
	session := sessionOf(c)
	if session.User == nil {
		return 0
	}
	return session.User.ID
}

// kycError maps service errors onto HTTP responses
func kycError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return response.NotFound(c, "User not found")
	case errors.Is(err, domain.ErrDirectoryUnavailable):
		return response.BadGateway(c, "User directory is unavailable")
	case errors.Is(err, domain.ErrReadOnly):
		return response.Forbidden(c, "Form is read-only")
	case errors.Is(err, domain.ErrUnknownSection):
		return response.BadRequest(c, "Unknown form section")
	case errors.Is(err, domain.ErrRowIndexOutOfRange):
		return response.BadRequest(c, "Row index out of range")
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, "Invalid input")
	default:
		return response.InternalServerError(c, "KYC operation failed")
	}
}

// GetForm handles loading the KYC form
// @Summary Load KYC form
// @Description Seed the form from the saved record or the directory profile
// @Tags KYC
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /users/{id}/kyc [get]
func (h *KYCHandler) GetForm(c *fiber.Ctx) error {
	id, err := subjectID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid user id")
	}

	// anyone but the subject sees the form read-only
	form, err := h.kycService.LoadForm(c.Context(), id, viewerID(c))
	if err != nil {
		return kycError(c, err)
	}

	return response.Success(c, "KYC form loaded", fiber.Map{
		"form":   form,
		"totals": form.Totals(),
	})
}

// AddRow handles appending a row to a repeatable section
// @Summary Add section row
// @Description Append a default row to a repeatable form section
// @Tags KYC
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param section path string true "Section name"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /users/{id}/kyc/sections/{section}/rows [post]
func (h *KYCHandler) AddRow(c *fiber.Ctx) error {
	id, err := subjectID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid user id")
	}

	form, err := h.kycService.AddRow(c.Context(), id, viewerID(c), c.Params("section"))
	if err != nil {
		return kycError(c, err)
	}

	return response.Success(c, "Row added", form)
}

// RemoveRow handles deleting a row from a repeatable section
// @Summary Remove section row
// @Description Delete one row and realign that section's errors
// @Tags KYC
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param section path string true "Section name"
// @Param index path int true "Row index"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /users/{id}/kyc/sections/{section}/rows/{index} [delete]
func (h *KYCHandler) RemoveRow(c *fiber.Ctx) error {
	id, err := subjectID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid user id")
	}

	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return response.BadRequest(c, "Invalid row index")
	}

	form, err := h.kycService.RemoveRow(c.Context(), id, viewerID(c), c.Params("section"), index)
	if err != nil {
		return kycError(c, err)
	}

	return response.Success(c, "Row removed", form)
}

// UpdateField handles a single field edit
// @Summary Update form field
// @Description Write one field value with live re-validation
// @Tags KYC
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param body body UpdateFieldRequest true "Field edit"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /users/{id}/kyc/fields [patch]
func (h *KYCHandler) UpdateField(c *fiber.Ctx) error {
	id, err := subjectID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid user id")
	}

	var req UpdateFieldRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Section == "" || req.Field == "" {
		return response.BadRequest(c, "Section and field are required")
	}

	form, err := h.kycService.UpdateField(c.Context(), id, viewerID(c), req.Section, req.Index, req.Field, req.Value)
	if err != nil {
		return kycError(c, err)
	}

	return response.Success(c, "Field updated", form)
}

// Submit handles KYC form submission
// @Summary Submit KYC form
// @Description Validate all sections; persist on success
// @Tags KYC
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 422 {object} map[string]interface{}
// @Router /users/{id}/kyc/submit [post]
func (h *KYCHandler) Submit(c *fiber.Ctx) error {
	id, err := subjectID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid user id")
	}

	result, err := h.kycService.Submit(c.Context(), id, viewerID(c))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) && result != nil {
			return response.ValidationFailed(c, result.Errors, result.FirstErrorSection)
		}
		return kycError(c, err)
	}

	return response.Success(c, "KYC submitted", result)
}

// GetTotals handles the financial summary
// @Summary KYC totals
// @Description Section totals and net worth of the current draft
// @Tags KYC
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Router /users/{id}/kyc/totals [get]
func (h *KYCHandler) GetTotals(c *fiber.Ctx) error {
	id, err := subjectID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid user id")
	}

	totals, err := h.kycService.Totals(c.Context(), id, viewerID(c))
	if err != nil {
		return kycError(c, err)
	}

	return response.Success(c, "Totals computed", totals)
}
