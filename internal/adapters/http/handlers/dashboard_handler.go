package handlers

import (
	"errors"

	"fitconnect/internal/core/domain"
	"fitconnect/internal/core/services"
	"fitconnect/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService  *services.DashboardService
	assignmentService *services.AssignmentService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService, assignmentService *services.AssignmentService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService:  dashboardService,
		assignmentService: assignmentService,
	}
}

// AdminDashboard handles admin dashboard
// @Summary Admin dashboard
// @Description Get gym-wide statistics for admins
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard/admin [get]
func (h *DashboardHandler) AdminDashboard(c *fiber.Ctx) error {
	data, err := h.dashboardService.GetAdminDashboard(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", data)
}

// TrainerDashboard handles trainer dashboard
// @Summary Trainer dashboard
// @Description Get the authenticated trainer's client statistics
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /dashboard/trainer [get]
func (h *DashboardHandler) TrainerDashboard(c *fiber.Ctx) error {
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

	data, err := h.dashboardService.GetTrainerDashboard(c.Context(), trainerID)
	if err != nil {
		return response.InternalServerError(c, "Failed to load dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", data)
}

// MemberDashboard handles member dashboard
// @Summary Member dashboard
// @Description Get the authenticated member's membership and social overview
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /dashboard/member [get]
func (h *DashboardHandler) MemberDashboard(c *fiber.Ctx) error {
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

	data, err := h.dashboardService.GetMemberDashboard(c.Context(), memberID)
	if err != nil {
		return response.InternalServerError(c, "Failed to load dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", data)
}
