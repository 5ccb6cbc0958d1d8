package handlers

import (
	"errors"
	"strconv"

	"fitconnect/internal/core/domain"
	"fitconnect/internal/core/services"
	"fitconnect/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SocialHandler handles friend graph endpoints
type SocialHandler struct {
	socialService     *services.SocialService
	assignmentService *services.AssignmentService
}

// NewSocialHandler creates a new social handler
func NewSocialHandler(socialService *services.SocialService, assignmentService *services.AssignmentService) *SocialHandler {
	return &SocialHandler{
		socialService:     socialService,
		assignmentService: assignmentService,
	}
}

// SendRequestBody represents friend request body
type SendRequestBody struct {
	ToMemberID uint `json:"to_member_id"`
}

// RespondBody represents friend request response body
type RespondBody struct {
	Accept bool `json:"accept"`
}

// memberID resolves the authenticated user's member profile id
func (h *SocialHandler) memberID(c *fiber.Ctx) (uint, error) {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return 0, domain.ErrUnauthorized
	}
	return h.assignmentService.ResolveMemberID(c.Context(), userID)
}

// SendRequest handles sending a friend request
// @Summary Send friend request
// @Description Send a friend request to another member
// @Tags Social
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SendRequestBody true "Request data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /friends/requests [post]
func (h *SocialHandler) SendRequest(c *fiber.Ctx) error {
	memberID, err := h.memberID(c)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return response.Unauthorized(c, "Unauthorized")
		}
		return response.NotFound(c, "Member profile not found")
	}

	var req SendRequestBody
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.ToMemberID == 0 {
		return response.BadRequest(c, "Recipient member ID is required")
	}

	request, err := h.socialService.SendRequest(c.Context(), memberID, req.ToMemberID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSelfRequest):
			return response.BadRequest(c, "Cannot send a friend request to yourself")
		case errors.Is(err, domain.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		case errors.Is(err, domain.ErrRequestPending):
			return response.Conflict(c, "A pending request already exists between you")
		case errors.Is(err, domain.ErrAlreadyFriends):
			return response.Conflict(c, "You are already friends")
		default:
			return response.InternalServerError(c, "Failed to send friend request")
		}
	}

	return response.Created(c, "Friend request sent", request)
}

// Respond handles accepting or declining a friend request
// @Summary Respond to friend request
// @Description Accept or decline a pending friend request
// @Tags Social
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param body body RespondBody true "Response data"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /friends/requests/{id} [put]
func (h *SocialHandler) Respond(c *fiber.Ctx) error {
	memberID, err := h.memberID(c)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return response.Unauthorized(c, "Unauthorized")
		}
		return response.NotFound(c, "Member profile not found")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid request ID")
	}

	var req RespondBody
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	request, err := h.socialService.Respond(c.Context(), uint(id), memberID, req.Accept)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Friend request not found")
		case errors.Is(err, domain.ErrNotRecipient):
			return response.Forbidden(c, "Only the recipient can respond to this request")
		case errors.Is(err, domain.ErrRequestClosed):
			return response.Conflict(c, "This request has already been answered")
		default:
			return response.InternalServerError(c, "Failed to respond to friend request")
		}
	}

	return response.Success(c, "Friend request "+request.Status, request)
}

// PendingRequests handles listing pending requests
// @Summary List pending requests
// @Description List the member's pending friend requests, sent or received
// @Tags Social
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sent query bool false "List requests sent by me instead of received"
// @Success 200 {object} response.Response
// @Router /friends/requests [get]
func (h *SocialHandler) PendingRequests(c *fiber.Ctx) error {
	memberID, err := h.memberID(c)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return response.Unauthorized(c, "Unauthorized")
		}
		return response.NotFound(c, "Member profile not found")
	}

	sentByMe := c.QueryBool("sent", false)

	requests, err := h.socialService.PendingRequests(c.Context(), memberID, sentByMe)
	if err != nil {
		return response.InternalServerError(c, "Failed to list friend requests")
	}

	return response.Success(c, "Friend requests retrieved successfully", requests)
}

// Friends handles listing the member's friends
// @Summary List friends
// @Description List the members this member is friends with
// @Tags Social
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /friends [get]
func (h *SocialHandler) Friends(c *fiber.Ctx) error {
	memberID, err := h.memberID(c)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return response.Unauthorized(c, "Unauthorized")
		}
		return response.NotFound(c, "Member profile not found")
	}

	friends, err := h.socialService.Friends(c.Context(), memberID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list friends")
	}

	return response.Success(c, "Friends retrieved successfully", friends)
}
