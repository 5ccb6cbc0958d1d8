package services

import (
	"context"
	"errors"
	"testing"

	"fitconnect/internal/adapters/persistence/models"
	"fitconnect/internal/core/domain"
)

type assignmentFixture struct {
	service     *AssignmentService
	trainers    *fakeTrainerRepo
	members     *fakeMemberRepo
	assignments *fakeAssignmentRepo
}

func newAssignmentFixture(t *testing.T) *assignmentFixture {
	t.Helper()
	ctx := context.Background()

	trainers := newFakeTrainerRepo()
	members := newFakeMemberRepo()
	assignments := newFakeAssignmentRepo(members)

	_ = trainers.Create(ctx, &models.Trainer{UserID: 10, FullName: "Kru Somsak", Status: models.UserStatusActive})
	_ = trainers.Create(ctx, &models.Trainer{UserID: 11, FullName: "Kru Malee", Status: models.UserStatusActive})
	_ = members.Create(ctx, &models.Member{UserID: 20, FullName: "Somchai J.", Status: models.UserStatusActive})
	_ = members.Create(ctx, &models.Member{UserID: 21, FullName: "Nok P.", Status: models.UserStatusActive})

	return &assignmentFixture{
		service:     NewAssignmentService(assignments, trainers, members),
		trainers:    trainers,
		members:     members,
		assignments: assignments,
	}
}

func TestAssignAndReadBack(t *testing.T) {
	fx := newAssignmentFixture(t)
	ctx := context.Background()

	if err := fx.service.Assign(ctx, 1, 1); err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	trainer, err := fx.service.ActiveTrainerFor(ctx, 1)
	if err != nil {
		t.Fatalf("active trainer lookup failed: %v", err)
	}
	if trainer == nil || trainer.ID != 1 {
		t.Fatalf("expected trainer 1, got %+v", trainer)
	}
	if trainer.AssignedClients != 1 {
		t.Errorf("expected 1 assigned client, got %d", trainer.AssignedClients)
	}
}

func TestAssignUnknownParties(t *testing.T) {
	fx := newAssignmentFixture(t)
	ctx := context.Background()

	if err := fx.service.Assign(ctx, 99, 1); !errors.Is(err, domain.ErrTrainerNotFound) {
		t.Fatalf("expected ErrTrainerNotFound, got %v", err)
	}
	if err := fx.service.Assign(ctx, 1, 99); !errors.Is(err, domain.ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound, got %v", err)
	}
}

func TestReassignSupersedes(t *testing.T) {
	fx := newAssignmentFixture(t)
	ctx := context.Background()

	if err := fx.service.Assign(ctx, 1, 1); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if err := fx.service.Assign(ctx, 2, 1); err != nil {
		t.Fatalf("reassign failed: %v", err)
	}

	// Exactly one active row, pointing at the new trainer
	var active int
	for _, a := range fx.assignments.assignments {
		if a.MemberID == 1 && a.Status == models.AssignmentStatusActive {
			active++
			if a.TrainerID != 2 {
				t.Errorf("active assignment points at trainer %d, want 2", a.TrainerID)
			}
		}
	}
	if active != 1 {
		t.Fatalf("expected exactly 1 active assignment, got %d", active)
	}

	// The prior row is closed out, not deleted
	var completed int
	for _, a := range fx.assignments.assignments {
		if a.MemberID == 1 && a.Status == models.AssignmentStatusCompleted {
			completed++
		}
	}
	if completed != 1 {
		t.Errorf("expected 1 completed assignment, got %d", completed)
	}
}

func TestAssignSameTrainerTwice(t *testing.T) {
	fx := newAssignmentFixture(t)
	ctx := context.Background()

	if err := fx.service.Assign(ctx, 1, 1); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if err := fx.service.Assign(ctx, 1, 1); !errors.Is(err, domain.ErrAlreadyAssigned) {
		t.Fatalf("expected ErrAlreadyAssigned, got %v", err)
	}
}

func TestActiveTrainerForUnassignedMember(t *testing.T) {
	fx := newAssignmentFixture(t)

	trainer, err := fx.service.ActiveTrainerFor(context.Background(), 2)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if trainer != nil {
		t.Errorf("expected nil for unassigned member, got %+v", trainer)
	}
}

func TestAvailableTrainersCounts(t *testing.T) {
	fx := newAssignmentFixture(t)
	ctx := context.Background()

	if err := fx.service.Assign(ctx, 1, 1); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if err := fx.service.Assign(ctx, 1, 2); err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	trainers, err := fx.service.AvailableTrainers(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(trainers) != 2 {
		t.Fatalf("expected 2 trainers, got %d", len(trainers))
	}
	counts := map[uint]int64{}
	for _, tr := range trainers {
		counts[tr.ID] = tr.AssignedClients
	}
	if counts[1] != 2 || counts[2] != 0 {
		t.Errorf("unexpected client counts: %v", counts)
	}
}

func TestClientsOf(t *testing.T) {
	fx := newAssignmentFixture(t)
	ctx := context.Background()

	if err := fx.service.Assign(ctx, 1, 1); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if err := fx.service.Assign(ctx, 1, 2); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	// Member 2 moves on; only member 1 remains with trainer 1
	if err := fx.service.Assign(ctx, 2, 2); err != nil {
		t.Fatalf("reassign failed: %v", err)
	}

	clients, err := fx.service.ClientsOf(ctx, 1)
	if err != nil {
		t.Fatalf("clients lookup failed: %v", err)
	}
	if len(clients) != 1 || clients[0].ID != 1 {
		t.Fatalf("expected member 1 only, got %+v", clients)
	}

	if _, err := fx.service.ClientsOf(ctx, 99); !errors.Is(err, domain.ErrTrainerNotFound) {
		t.Fatalf("expected ErrTrainerNotFound, got %v", err)
	}
}

func TestResolveProfileIDs(t *testing.T) {
	fx := newAssignmentFixture(t)
	ctx := context.Background()

	memberID, err := fx.service.ResolveMemberID(ctx, 20)
	if err != nil {
		t.Fatalf("resolve member failed: %v", err)
	}
	if memberID != 1 {
		t.Errorf("expected member profile 1 for user 20, got %d", memberID)
	}

	trainerID, err := fx.service.ResolveTrainerID(ctx, 11)
	if err != nil {
		t.Fatalf("resolve trainer failed: %v", err)
	}
	if trainerID != 2 {
		t.Errorf("expected trainer profile 2 for user 11, got %d", trainerID)
	}

	if _, err := fx.service.ResolveMemberID(ctx, 999); !errors.Is(err, domain.ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound, got %v", err)
	}
}
