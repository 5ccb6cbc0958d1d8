package repositories

import (
	"context"
	"time"

	"fitconnect/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetActiveByUsernameAndRole(ctx context.Context, username, role string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, role string, offset, limit int) ([]*models.User, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// TrainerRepository defines trainer profile repository interface
type TrainerRepository interface {
	Create(ctx context.Context, trainer *models.Trainer) error
	GetByID(ctx context.Context, id uint) (*models.Trainer, error)
	GetByUserID(ctx context.Context, userID uint) (*models.Trainer, error)
	ListActive(ctx context.Context) ([]*models.Trainer, error)
}

// MemberRepository defines member profile repository interface
type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	GetByID(ctx context.Context, id uint) (*models.Member, error)
	GetByUserID(ctx context.Context, userID uint) (*models.Member, error)
	ListActive(ctx context.Context) ([]*models.Member, error)
}

// AssignmentRepository defines the trainer-member assignment ledger interface.
// Assign supersedes any prior ACTIVE row and inserts the new one inside a
// single transaction, never leaving the member with zero or two active rows.
type AssignmentRepository interface {
	ActiveByMember(ctx context.Context, memberID uint) (*models.TrainerAssignment, error)
	Assign(ctx context.Context, trainerID, memberID uint, assignedDate time.Time) error
	CountActiveByTrainer(ctx context.Context, trainerID uint) (int64, error)
	ListActiveByTrainer(ctx context.Context, trainerID uint) ([]*models.TrainerAssignment, error)
}

// FriendRequestRepository defines the friend request graph interface.
// CreatePending and Respond enforce the pair invariants transactionally.
type FriendRequestRepository interface {
	GetByID(ctx context.Context, id uint) (*models.FriendRequest, error)
	CreatePending(ctx context.Context, fromMemberID, toMemberID uint) (*models.FriendRequest, error)
	Respond(ctx context.Context, requestID, responderID uint, accept bool) (*models.FriendRequest, error)
	ListPendingSentBy(ctx context.Context, memberID uint) ([]*models.FriendRequest, error)
	ListPendingReceivedBy(ctx context.Context, memberID uint) ([]*models.FriendRequest, error)
	ListFriendsOf(ctx context.Context, memberID uint) ([]*models.Member, error)
}

// MembershipPlanRepository defines membership plan master interface
type MembershipPlanRepository interface {
	GetByCode(ctx context.Context, code string) (*models.MembershipPlan, error)
	List(ctx context.Context) ([]*models.MembershipPlan, error)
}

// MembershipRepository defines membership repository interface
type MembershipRepository interface {
	Create(ctx context.Context, membership *models.Membership) error
	HasActiveOn(ctx context.Context, memberID uint, on time.Time) (bool, error)
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
}

// PaymentRepository defines payment repository interface
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
}
