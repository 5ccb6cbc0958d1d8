package services

import (
	"context"
	"time"

	"fitconnect/internal/adapters/persistence/models"
	"fitconnect/internal/core/domain"

	"gorm.io/gorm"
)

// In-memory repository fakes. They mirror the invariants the real
// repositories enforce so service behavior can be tested without a
// database.

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetActiveByUsernameAndRole(_ context.Context, username, role string) (*models.User, error) {
	for _, user := range r.users {
		// Username matching is case sensitive
		if user.Username == username && user.Role == role && user.Status == models.UserStatusActive {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, role string, offset, limit int) ([]*models.User, int64, error) {
	var all []*models.User
	for _, user := range r.users {
		if role == "" || user.Role == role {
			all = append(all, user)
		}
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakeUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, user := range r.users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, user := range r.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type fakeRefreshTokenRepo struct {
	tokens map[uint]*models.RefreshToken
	nextID uint
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: make(map[uint]*models.RefreshToken), nextID: 1}
}

func (r *fakeRefreshTokenRepo) Create(_ context.Context, token *models.RefreshToken) error {
	token.ID = r.nextID
	r.nextID++
	r.tokens[token.ID] = token
	return nil
}

func (r *fakeRefreshTokenRepo) GetByTokenHash(_ context.Context, tokenHash string) (*models.RefreshToken, error) {
	for _, token := range r.tokens {
		if token.TokenHash == tokenHash {
			return token, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRefreshTokenRepo) Revoke(_ context.Context, id uint) error {
	token, ok := r.tokens[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	now := time.Now()
	token.RevokedAt = &now
	return nil
}

func (r *fakeRefreshTokenRepo) RevokeByTokenHash(_ context.Context, tokenHash string) error {
	for _, token := range r.tokens {
		if token.TokenHash == tokenHash && token.RevokedAt == nil {
			now := time.Now()
			token.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeRefreshTokenRepo) RevokeAllByUserID(_ context.Context, userID uint) error {
	for _, token := range r.tokens {
		if token.UserID == userID && token.RevokedAt == nil {
			now := time.Now()
			token.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeRefreshTokenRepo) DeleteExpired(_ context.Context) error {
	for id, token := range r.tokens {
		if token.IsExpired() {
			delete(r.tokens, id)
		}
	}
	return nil
}

type fakeTrainerRepo struct {
	trainers map[uint]*models.Trainer
	nextID   uint
}

func newFakeTrainerRepo() *fakeTrainerRepo {
	return &fakeTrainerRepo{trainers: make(map[uint]*models.Trainer), nextID: 1}
}

func (r *fakeTrainerRepo) Create(_ context.Context, trainer *models.Trainer) error {
	trainer.ID = r.nextID
	r.nextID++
	r.trainers[trainer.ID] = trainer
	return nil
}

func (r *fakeTrainerRepo) GetByID(_ context.Context, id uint) (*models.Trainer, error) {
	trainer, ok := r.trainers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return trainer, nil
}

func (r *fakeTrainerRepo) GetByUserID(_ context.Context, userID uint) (*models.Trainer, error) {
	for _, trainer := range r.trainers {
		if trainer.UserID == userID {
			return trainer, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeTrainerRepo) ListActive(_ context.Context) ([]*models.Trainer, error) {
	var out []*models.Trainer
	for _, trainer := range r.trainers {
		if trainer.Status == models.UserStatusActive {
			out = append(out, trainer)
		}
	}
	return out, nil
}

type fakeMemberRepo struct {
	members map[uint]*models.Member
	nextID  uint
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: make(map[uint]*models.Member), nextID: 1}
}

func (r *fakeMemberRepo) Create(_ context.Context, member *models.Member) error {
	member.ID = r.nextID
	r.nextID++
	r.members[member.ID] = member
	return nil
}

func (r *fakeMemberRepo) GetByID(_ context.Context, id uint) (*models.Member, error) {
	member, ok := r.members[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return member, nil
}

func (r *fakeMemberRepo) GetByUserID(_ context.Context, userID uint) (*models.Member, error) {
	for _, member := range r.members {
		if member.UserID == userID {
			return member, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeMemberRepo) ListActive(_ context.Context) ([]*models.Member, error) {
	var out []*models.Member
	for _, member := range r.members {
		if member.Status == models.UserStatusActive {
			out = append(out, member)
		}
	}
	return out, nil
}

type fakeMembershipRepo struct {
	memberships []*models.Membership
	nextID      uint
}

func newFakeMembershipRepo() *fakeMembershipRepo {
	return &fakeMembershipRepo{nextID: 1}
}

func (r *fakeMembershipRepo) Create(_ context.Context, membership *models.Membership) error {
	membership.ID = r.nextID
	r.nextID++
	r.memberships = append(r.memberships, membership)
	return nil
}

func (r *fakeMembershipRepo) HasActiveOn(_ context.Context, memberID uint, on time.Time) (bool, error) {
	for _, m := range r.memberships {
		if m.MemberID == memberID && m.Status == models.MembershipStatusActive && !m.EndDate.Before(on.Truncate(24*time.Hour)) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeMembershipRepo) ExpireOverdue(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, m := range r.memberships {
		if m.Status == models.MembershipStatusActive && m.EndDate.Before(now) {
			m.Status = models.MembershipStatusExpired
			n++
		}
	}
	return n, nil
}

type fakeAssignmentRepo struct {
	assignments []*models.TrainerAssignment
	memberRepo  *fakeMemberRepo
	nextID      uint
}

func newFakeAssignmentRepo(memberRepo *fakeMemberRepo) *fakeAssignmentRepo {
	return &fakeAssignmentRepo{memberRepo: memberRepo, nextID: 1}
}

func (r *fakeAssignmentRepo) ActiveByMember(_ context.Context, memberID uint) (*models.TrainerAssignment, error) {
	for _, a := range r.assignments {
		if a.MemberID == memberID && a.Status == models.AssignmentStatusActive {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakeAssignmentRepo) Assign(ctx context.Context, trainerID, memberID uint, assignedDate time.Time) error {
	current, _ := r.ActiveByMember(ctx, memberID)
	if current != nil {
		if current.TrainerID == trainerID {
			return domain.ErrAlreadyAssigned
		}
		current.Status = models.AssignmentStatusCompleted
	}
	r.assignments = append(r.assignments, &models.TrainerAssignment{
		ID:           r.nextID,
		MemberID:     memberID,
		TrainerID:    trainerID,
		AssignedDate: assignedDate,
		Status:       models.AssignmentStatusActive,
	})
	r.nextID++
	return nil
}

func (r *fakeAssignmentRepo) CountActiveByTrainer(_ context.Context, trainerID uint) (int64, error) {
	var n int64
	for _, a := range r.assignments {
		if a.TrainerID == trainerID && a.Status == models.AssignmentStatusActive {
			n++
		}
	}
	return n, nil
}

func (r *fakeAssignmentRepo) ListActiveByTrainer(_ context.Context, trainerID uint) ([]*models.TrainerAssignment, error) {
	var out []*models.TrainerAssignment
	for _, a := range r.assignments {
		if a.TrainerID == trainerID && a.Status == models.AssignmentStatusActive {
			if a.Member == nil && r.memberRepo != nil {
				a.Member = r.memberRepo.members[a.MemberID]
			}
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeFriendRequestRepo struct {
	requests   map[uint]*models.FriendRequest
	memberRepo *fakeMemberRepo
	nextID     uint
}

func newFakeFriendRequestRepo(memberRepo *fakeMemberRepo) *fakeFriendRequestRepo {
	return &fakeFriendRequestRepo{requests: make(map[uint]*models.FriendRequest), memberRepo: memberRepo, nextID: 1}
}

func (r *fakeFriendRequestRepo) GetByID(_ context.Context, id uint) (*models.FriendRequest, error) {
	request, ok := r.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return request, nil
}

func (r *fakeFriendRequestRepo) CreatePending(_ context.Context, fromMemberID, toMemberID uint) (*models.FriendRequest, error) {
	for _, request := range r.requests {
		samePair := (request.FromMemberID == fromMemberID && request.ToMemberID == toMemberID) ||
			(request.FromMemberID == toMemberID && request.ToMemberID == fromMemberID)
		if !samePair {
			continue
		}
		if request.Status == models.FriendRequestPending {
			return nil, domain.ErrRequestPending
		}
		if request.Status == models.FriendRequestAccepted {
			return nil, domain.ErrAlreadyFriends
		}
	}
	request := &models.FriendRequest{
		ID:           r.nextID,
		FromMemberID: fromMemberID,
		ToMemberID:   toMemberID,
		Status:       models.FriendRequestPending,
		CreatedAt:    time.Now(),
	}
	r.nextID++
	r.requests[request.ID] = request
	return request, nil
}

func (r *fakeFriendRequestRepo) Respond(_ context.Context, requestID, responderID uint, accept bool) (*models.FriendRequest, error) {
	request, ok := r.requests[requestID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if request.ToMemberID != responderID {
		return nil, domain.ErrNotRecipient
	}
	if !request.IsPending() {
		return nil, domain.ErrRequestClosed
	}
	if accept {
		request.Status = models.FriendRequestAccepted
	} else {
		request.Status = models.FriendRequestDeclined
	}
	return request, nil
}

func (r *fakeFriendRequestRepo) ListPendingSentBy(_ context.Context, memberID uint) ([]*models.FriendRequest, error) {
	var out []*models.FriendRequest
	for _, request := range r.requests {
		if request.FromMemberID == memberID && request.IsPending() {
			out = append(out, request)
		}
	}
	return out, nil
}

func (r *fakeFriendRequestRepo) ListPendingReceivedBy(_ context.Context, memberID uint) ([]*models.FriendRequest, error) {
	var out []*models.FriendRequest
	for _, request := range r.requests {
		if request.ToMemberID == memberID && request.IsPending() {
			out = append(out, request)
		}
	}
	return out, nil
}

func (r *fakeFriendRequestRepo) ListFriendsOf(_ context.Context, memberID uint) ([]*models.Member, error) {
	var out []*models.Member
	for _, request := range r.requests {
		if request.Status != models.FriendRequestAccepted {
			continue
		}
		var otherID uint
		switch memberID {
		case request.FromMemberID:
			otherID = request.ToMemberID
		case request.ToMemberID:
			otherID = request.FromMemberID
		default:
			continue
		}
		if member, ok := r.memberRepo.members[otherID]; ok {
			out = append(out, member)
		}
	}
	return out, nil
}

type fakePlanRepo struct {
	plans map[string]*models.MembershipPlan
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: map[string]*models.MembershipPlan{
		"MONTHLY": {ID: 1, Code: "MONTHLY", Name: "Monthly", DurationMonths: 1, Fee: 1500, IsActive: true},
		"YEARLY":  {ID: 4, Code: "YEARLY", Name: "Yearly", DurationMonths: 12, Fee: 14000, IsActive: true},
	}}
}

func (r *fakePlanRepo) GetByCode(_ context.Context, code string) (*models.MembershipPlan, error) {
	plan, ok := r.plans[code]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return plan, nil
}

func (r *fakePlanRepo) List(_ context.Context) ([]*models.MembershipPlan, error) {
	var out []*models.MembershipPlan
	for _, plan := range r.plans {
		out = append(out, plan)
	}
	return out, nil
}

type fakePaymentRepo struct {
	payments []*models.Payment
}

func (r *fakePaymentRepo) Create(_ context.Context, payment *models.Payment) error {
	payment.ID = uint(len(r.payments) + 1)
	r.payments = append(r.payments, payment)
	return nil
}

type memorySessionStore struct {
	state map[string]string
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{state: make(map[string]string)}
}

func (s *memorySessionStore) Save(_ context.Context, state map[string]string) error {
	s.state = make(map[string]string, len(state))
	for k, v := range state {
		s.state[k] = v
	}
	return nil
}

func (s *memorySessionStore) Load(_ context.Context) (map[string]string, error) {
	return s.state, nil
}

func (s *memorySessionStore) Wipe(_ context.Context) error {
	s.state = make(map[string]string)
	return nil
}
