package handlers

import (
	"errors"
	"strconv"

	"fitconnect/internal/core/domain"
	"fitconnect/internal/core/services"
	"fitconnect/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AssignmentHandler handles trainer assignment endpoints
type AssignmentHandler struct {
	assignmentService *services.AssignmentService
}

// NewAssignmentHandler creates a new assignment handler
func NewAssignmentHandler(assignmentService *services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

// AssignRequest represents assignment request body
type AssignRequest struct {
	TrainerID uint `json:"trainer_id"`
	MemberID  uint `json:"member_id"`
}

// Assign handles assigning a trainer to a member
// @Summary Assign trainer
// @Description Assign a trainer to a member, closing out any prior assignment
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AssignRequest true "Assignment data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /assignments [post]
func (h *AssignmentHandler) Assign(c *fiber.Ctx) error {
	var req AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.TrainerID == 0 || req.MemberID == 0 {
		return response.BadRequest(c, "Trainer ID and member ID are required")
	}

	err := h.assignmentService.Assign(c.Context(), req.TrainerID, req.MemberID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTrainerNotFound):
			return response.NotFound(c, "Trainer not found")
		case errors.Is(err, domain.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		case errors.Is(err, domain.ErrAlreadyAssigned):
			return response.Conflict(c, "Member is already assigned to this trainer")
		default:
			return response.InternalServerError(c, "Failed to assign trainer")
		}
	}

	return response.Created(c, "Trainer assigned successfully", nil)
}

// ListTrainers handles listing available trainers
// @Summary List available trainers
// @Description List active trainers with their current client counts
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /trainers [get]
func (h *AssignmentHandler) ListTrainers(c *fiber.Ctx) error {
	trainers, err := h.assignmentService.AvailableTrainers(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list trainers")
	}

	return response.Success(c, "Trainers retrieved successfully", trainers)
}

// MyTrainer handles getting the authenticated member's current trainer
// @Summary Get my trainer
// @Description Get the member's current active trainer
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /assignments/my-trainer [get]
func (h *AssignmentHandler) MyTrainer(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	memberID, err := h.assignmentService.ResolveMemberID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member profile not found")
		}
		return response.InternalServerError(c, "Failed to resolve member")
	}

	trainer, err := h.assignmentService.ActiveTrainerFor(c.Context(), memberID)
	if err != nil {
		return response.InternalServerError(c, "Failed to get trainer")
	}
	if trainer == nil {
		return response.Success(c, "No trainer assigned", nil)
	}

	return response.Success(c, "Trainer retrieved successfully", trainer)
}

// MemberTrainer handles getting a member's current trainer by member id
// @Summary Get member's trainer
// @Description Get the active trainer assigned to a member
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id}/trainer [get]
func (h *AssignmentHandler) MemberTrainer(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	trainer, err := h.assignmentService.ActiveTrainerFor(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to get trainer")
	}
	if trainer == nil {
		return response.Success(c, "No trainer assigned", nil)
	}

	return response.Success(c, "Trainer retrieved successfully", trainer)
}

// MyClients handles listing the authenticated trainer's clients
// @Summary List my clients
// @Description List members currently assigned to the authenticated trainer
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /assignments/my-clients [get]
func (h *AssignmentHandler) MyClients(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	trainerID, err := h.assignmentService.ResolveTrainerID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrTrainerNotFound) {
			return response.NotFound(c, "Trainer profile not found")
		}
		return response.InternalServerError(c, "Failed to resolve trainer")
	}

	clients, err := h.assignmentService.ClientsOf(c.Context(), trainerID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list clients")
	}

	return response.Success(c, "Clients retrieved successfully", clients)
}
