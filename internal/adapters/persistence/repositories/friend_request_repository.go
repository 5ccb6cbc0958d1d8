package repositories

import (
	"context"
	"errors"

	"fitconnect/internal/adapters/persistence/models"
	"fitconnect/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// friendRequestRepository implements FriendRequestRepository interface
type friendRequestRepository struct {
	db *gorm.DB
}

// NewFriendRequestRepository creates a new friend request repository
func NewFriendRequestRepository(db *gorm.DB) FriendRequestRepository {
	return &friendRequestRepository{db: db}
}

// GetByID gets a friend request by ID
func (r *friendRequestRepository) GetByID(ctx context.Context, id uint) (*models.FriendRequest, error) {
	var request models.FriendRequest
	err := r.db.WithContext(ctx).
		Preload("FromMember").
		Preload("ToMember").
		Where("id = ?", id).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// CreatePending inserts a new PENDING request after checking the pair
// invariants: no PENDING row in either direction, no ACCEPTED row in either
// direction. Checks and insert run in one transaction so concurrent sends for
// the same pair cannot both pass the uniqueness check.
func (r *friendRequestRepository) CreatePending(ctx context.Context, fromMemberID, toMemberID uint) (*models.FriendRequest, error) {
	request := &models.FriendRequest{
		FromMemberID: fromMemberID,
		ToMemberID:   toMemberID,
		Status:       models.FriendRequestPending,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		pair := tx.Model(&models.FriendRequest{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("(from_member_id = ? AND to_member_id = ?) OR (from_member_id = ? AND to_member_id = ?)",
				fromMemberID, toMemberID, toMemberID, fromMemberID)

		if err := pair.Where("status = ?", models.FriendRequestPending).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrRequestPending
		}

		count = 0
		pair = tx.Model(&models.FriendRequest{}).
			Where("(from_member_id = ? AND to_member_id = ?) OR (from_member_id = ? AND to_member_id = ?)",
				fromMemberID, toMemberID, toMemberID, fromMemberID)
		if err := pair.Where("status = ?", models.FriendRequestAccepted).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrAlreadyFriends
		}

		return tx.Create(request).Error
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

// Respond transitions a PENDING request to ACCEPTED or DECLINED.
// Only the recipient may respond; terminal rows are never overwritten.
func (r *friendRequestRepository) Respond(ctx context.Context, requestID, responderID uint, accept bool) (*models.FriendRequest, error) {
	var request models.FriendRequest

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", requestID).
			First(&request).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}

		if request.ToMemberID != responderID {
			return domain.ErrNotRecipient
		}
		if !request.IsPending() {
			return domain.ErrRequestClosed
		}

		status := models.FriendRequestDeclined
		if accept {
			status = models.FriendRequestAccepted
		}
		request.Status = status

		return tx.Model(&request).Update("status", status).Error
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// ListPendingSentBy lists PENDING requests sent by a member, newest first
func (r *friendRequestRepository) ListPendingSentBy(ctx context.Context, memberID uint) ([]*models.FriendRequest, error) {
	return r.listPending(ctx, "from_member_id = ?", memberID)
}

// ListPendingReceivedBy lists PENDING requests received by a member, newest first
func (r *friendRequestRepository) ListPendingReceivedBy(ctx context.Context, memberID uint) ([]*models.FriendRequest, error) {
	return r.listPending(ctx, "to_member_id = ?", memberID)
}

func (r *friendRequestRepository) listPending(ctx context.Context, condition string, memberID uint) ([]*models.FriendRequest, error) {
	var requests []*models.FriendRequest
	err := r.db.WithContext(ctx).
		Preload("FromMember").
		Preload("ToMember").
		Where(condition, memberID).
		Where("status = ?", models.FriendRequestPending).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// ListFriendsOf returns the counterpart member of every ACCEPTED pair
// involving the given member
func (r *friendRequestRepository) ListFriendsOf(ctx context.Context, memberID uint) ([]*models.Member, error) {
	var members []*models.Member
	err := r.db.WithContext(ctx).
		Table("members").
		Joins(`JOIN friend_requests fr ON (
			(fr.from_member_id = ? AND fr.to_member_id = members.id) OR
			(fr.to_member_id = ? AND fr.from_member_id = members.id)
		)`, memberID, memberID).
		Where("fr.status = ?", models.FriendRequestAccepted).
		Order("members.full_name ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}
