package services

import (
	"context"
	"errors"
	"log"

	"fitconnect/internal/adapters/persistence/models"
	"fitconnect/internal/adapters/persistence/repositories"
	"fitconnect/internal/core/domain"

	"gorm.io/gorm"
)

// SocialService handles the member friendship graph
type SocialService struct {
	friendRequestRepo repositories.FriendRequestRepository
	memberRepo        repositories.MemberRepository
}

// NewSocialService creates a new social service
func NewSocialService(
	friendRequestRepo repositories.FriendRequestRepository,
	memberRepo repositories.MemberRepository,
) *SocialService {
	return &SocialService{
		friendRequestRepo: friendRequestRepo,
		memberRepo:        memberRepo,
	}
}

// SendRequest creates a pending friend request between two members. At most
// one pending request may exist per pair regardless of direction, and pairs
// that are already friends cannot open another.
func (s *SocialService) SendRequest(ctx context.Context, fromMemberID, toMemberID uint) (*models.FriendRequestResponse, error) {
	// 1. No self-friendship
	if fromMemberID == toMemberID {
		return nil, domain.ErrSelfRequest
	}

	// 2. Both members must exist
	if _, err := s.memberRepo.GetByID(ctx, fromMemberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	if _, err := s.memberRepo.GetByID(ctx, toMemberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}

	// 3. Create under the pair invariants
	request, err := s.friendRequestRepo.CreatePending(ctx, fromMemberID, toMemberID)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Friend request %d sent: member %d -> member %d", request.ID, fromMemberID, toMemberID)
	return request.ToResponse(), nil
}

// Respond accepts or declines a pending request. Only the recipient may
// respond, and a request answered once stays answered.
func (s *SocialService) Respond(ctx context.Context, requestID, responderID uint, accept bool) (*models.FriendRequestResponse, error) {
	request, err := s.friendRequestRepo.Respond(ctx, requestID, responderID, accept)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	log.Printf("✅ Friend request %d %s by member %d", requestID, request.Status, responderID)
	return request.ToResponse(), nil
}

// PendingRequests lists a member's open requests, sent or received
func (s *SocialService) PendingRequests(ctx context.Context, memberID uint, sentByMe bool) ([]*models.FriendRequestResponse, error) {
	if _, err := s.memberRepo.GetByID(ctx, memberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}

	var requests []*models.FriendRequest
	var err error
	if sentByMe {
		requests, err = s.friendRequestRepo.ListPendingSentBy(ctx, memberID)
	} else {
		requests, err = s.friendRequestRepo.ListPendingReceivedBy(ctx, memberID)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]*models.FriendRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, request.ToResponse())
	}
	return responses, nil
}

// Friends lists the members this member has accepted requests with, in
// either direction
func (s *SocialService) Friends(ctx context.Context, memberID uint) ([]*models.MemberResponse, error) {
	if _, err := s.memberRepo.GetByID(ctx, memberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}

	friends, err := s.friendRequestRepo.ListFriendsOf(ctx, memberID)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.MemberResponse, 0, len(friends))
	for _, friend := range friends {
		responses = append(responses, friend.ToResponse())
	}
	return responses, nil
}
