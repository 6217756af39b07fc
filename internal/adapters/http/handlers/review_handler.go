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

// ReviewHandler handles the officer review endpoints
type ReviewHandler struct {
	reviewService *services.ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// Queue handles the paginated review queue
// @Summary Review queue
// @Description Directory users joined with their review decisions
// @Tags Review
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} pagination.Response
// @Failure 502 {object} response.Response
// @Router /review [get]
func (h *ReviewHandler) Queue(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	entries, total, err := h.reviewService.Queue(c.Context(), viewerID(c), params)
	if err != nil {
		if errors.Is(err, domain.ErrDirectoryUnavailable) {
			return response.BadGateway(c, "User directory is unavailable")
		}
		return response.InternalServerError(c, "Failed to load review queue")
	}

	return c.JSON(pagination.NewResponse(entries, params, total))
}

// Get handles one subject's review status
// @Summary Review status
// @Description Review decision for one subject, pending when none exists
// @Tags Review
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subject ID"
// @Success 200 {object} response.Response
// @Router /review/{id} [get]
func (h *ReviewHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid subject id")
	}

	record, err := h.reviewService.Get(c.Context(), id)
	if err != nil {
		return response.InternalServerError(c, "Failed to load review status")
	}

	return response.Success(c, "Review status loaded", record)
}

// Decide handles an approve/reject decision
// @Summary Record decision
// @Description Approve or reject one subject
// @Tags Review
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subject ID"
// @Param body body services.DecisionInput true "Decision"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /review/{id} [put]
func (h *ReviewHandler) Decide(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid subject id")
	}

	var input services.DecisionInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	reviewerUsername, _ := c.Locals("username").(string)
	record, err := h.reviewService.Decide(c.Context(), id, input.Status, viewerID(c), reviewerUsername)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidStatus) {
			return response.BadRequest(c, "Status must be approved or rejected")
		}
		return response.InternalServerError(c, "Failed to record decision")
	}

	return response.Success(c, "Decision recorded", record)
}

// Clear handles wiping the whole ledger
// @Summary Clear decisions
// @Description Reset every subject to pending
// @Tags Review
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /review [delete]
func (h *ReviewHandler) Clear(c *fiber.Ctx) error {
	if err := h.reviewService.Clear(c.Context()); err != nil {
		return response.InternalServerError(c, "Failed to clear decisions")
	}

	return response.Success(c, "Review decisions cleared", nil)
}
