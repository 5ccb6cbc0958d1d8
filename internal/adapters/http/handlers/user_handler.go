package handlers

import (
	"errors"
	"strconv"
	"strings"

	"fitconnect/internal/core/domain"
	"fitconnect/internal/core/services"
	"fitconnect/internal/pkg/pagination"
	"fitconnect/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user management endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterMember handles member registration
// @Summary Register member
// @Description Create a member account with profile, initial membership and payment
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.RegisterMemberInput true "Member data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users/members [post]
func (h *UserHandler) RegisterMember(c *fiber.Ctx) error {
	var input services.RegisterMemberInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate required fields
	if input.Username == "" || input.Password == "" || input.Email == "" {
		return response.BadRequest(c, "Username, password and email are required")
	}
	if input.FullName == "" {
		return response.BadRequest(c, "Full name is required")
	}
	if input.PlanCode == "" {
		return response.BadRequest(c, "Membership plan is required")
	}

	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	input.PlanCode = strings.ToUpper(strings.TrimSpace(input.PlanCode))

	member, err := h.userService.RegisterMember(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEntry):
			return response.Conflict(c, "Username or email already exists")
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Membership plan not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Password must be at least 8 characters")
		default:
			return response.InternalServerError(c, "Failed to register member")
		}
	}

	return response.Created(c, "Member registered successfully", member)
}

// RegisterTrainer handles trainer registration
// @Summary Register trainer
// @Description Create a trainer account with profile
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.RegisterTrainerInput true "Trainer data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users/trainers [post]
func (h *UserHandler) RegisterTrainer(c *fiber.Ctx) error {
	var input services.RegisterTrainerInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.Username == "" || input.Password == "" || input.Email == "" {
		return response.BadRequest(c, "Username, password and email are required")
	}
	if input.FullName == "" {
		return response.BadRequest(c, "Full name is required")
	}

	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)

	trainer, err := h.userService.RegisterTrainer(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEntry):
			return response.Conflict(c, "Username or email already exists")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Password must be at least 8 characters")
		default:
			return response.InternalServerError(c, "Failed to register trainer")
		}
	}

	return response.Created(c, "Trainer registered successfully", trainer)
}

// ListUsers handles user listing
// @Summary List users
// @Description List users with optional role filter and pagination
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param role query string false "Role filter (ADMIN, TRAINER, MEMBER)"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /users [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	role := strings.ToUpper(strings.TrimSpace(c.Query("role")))
	params := pagination.GetParams(c)

	users, meta, err := h.userService.ListUsers(c.Context(), role, params)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Invalid role filter")
		}
		return response.InternalServerError(c, "Failed to list users")
	}

	return response.Success(c, "Users retrieved successfully", fiber.Map{
		"users": users,
		"meta":  meta,
	})
}

// GetUser handles getting a single user
// @Summary Get user
// @Description Get a user by id
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	user, err := h.userService.GetUser(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to get user")
	}

	return response.Success(c, "User retrieved successfully", user)
}

// ChangePasswordRequest represents password change request body
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ChangePassword handles password change for the authenticated user
// @Summary Change password
// @Description Verify the old password and replace it with a new one
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ChangePasswordRequest true "Password change data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /users/me/password [put]
func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.OldPassword == "" || req.NewPassword == "" {
		return response.BadRequest(c, "Old and new passwords are required")
	}

	err := h.userService.ChangePassword(c.Context(), userID, req.OldPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			return response.Unauthorized(c, "Old password is incorrect")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "New password must be at least 8 characters")
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "User not found")
		default:
			return response.InternalServerError(c, "Failed to change password")
		}
	}

	return response.Success(c, "Password changed successfully", nil)
}

// SetStatusRequest represents status change request body
type SetStatusRequest struct {
	Status string `json:"status"`
}

// SetUserStatus handles activating or suspending an account
// @Summary Set user status
// @Description Set a user's account status (ACTIVE, INACTIVE, SUSPENDED)
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param body body SetStatusRequest true "Status data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id}/status [put]
func (h *UserHandler) SetUserStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	var req SetStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	err = h.userService.SetUserStatus(c.Context(), uint(id), strings.ToUpper(strings.TrimSpace(req.Status)))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid status")
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "User not found")
		default:
			return response.InternalServerError(c, "Failed to update status")
		}
	}

	return response.Success(c, "Status updated successfully", nil)
}

// ListPlans handles listing membership plans
// @Summary List membership plans
// @Description List the active membership plans
// @Tags Users
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /plans [get]
func (h *UserHandler) ListPlans(c *fiber.Ctx) error {
	plans, err := h.userService.ListPlans(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list plans")
	}

	return response.Success(c, "Plans retrieved successfully", plans)
}
