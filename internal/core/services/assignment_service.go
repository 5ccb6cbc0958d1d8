package services

import (
	"context"
	"errors"
	"log"
	"time"

	"fitconnect/internal/adapters/persistence/models"
	"fitconnect/internal/adapters/persistence/repositories"
	"fitconnect/internal/core/domain"

	"gorm.io/gorm"
)

// AssignmentService handles the trainer-member assignment ledger
type AssignmentService struct {
	assignmentRepo repositories.AssignmentRepository
	trainerRepo    repositories.TrainerRepository
	memberRepo     repositories.MemberRepository
}

// NewAssignmentService creates a new assignment service
func NewAssignmentService(
	assignmentRepo repositories.AssignmentRepository,
	trainerRepo repositories.TrainerRepository,
	memberRepo repositories.MemberRepository,
) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		trainerRepo:    trainerRepo,
		memberRepo:     memberRepo,
	}
}

// Assign gives the member a new active trainer. Any prior active assignment
// is closed out in the same transaction; assigning the trainer the member
// already has returns ErrAlreadyAssigned.
func (s *AssignmentService) Assign(ctx context.Context, trainerID, memberID uint) error {
	// 1. Both sides must exist
	if _, err := s.trainerRepo.GetByID(ctx, trainerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrTrainerNotFound
		}
		return err
	}
	if _, err := s.memberRepo.GetByID(ctx, memberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrMemberNotFound
		}
		return err
	}

	// 2. Supersede-and-insert, atomically
	if err := s.assignmentRepo.Assign(ctx, trainerID, memberID, time.Now()); err != nil {
		return err
	}

	log.Printf("✅ Trainer %d assigned to member %d", trainerID, memberID)
	return nil
}

// ActiveTrainerFor returns the member's current trainer, or nil when the
// member has none
func (s *AssignmentService) ActiveTrainerFor(ctx context.Context, memberID uint) (*models.TrainerResponse, error) {
	if _, err := s.memberRepo.GetByID(ctx, memberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}

	assignment, err := s.assignmentRepo.ActiveByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, nil
	}

	trainer, err := s.trainerRepo.GetByID(ctx, assignment.TrainerID)
	if err != nil {
		return nil, err
	}

	resp := trainer.ToResponse()
	count, err := s.assignmentRepo.CountActiveByTrainer(ctx, trainer.ID)
	if err != nil {
		return nil, err
	}
	resp.AssignedClients = count
	return resp, nil
}

// AvailableTrainers lists active trainers with their current client counts,
// ordered by name
func (s *AssignmentService) AvailableTrainers(ctx context.Context) ([]*models.TrainerResponse, error) {
	trainers, err := s.trainerRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.TrainerResponse, 0, len(trainers))
	for _, trainer := range trainers {
		resp := trainer.ToResponse()
		count, err := s.assignmentRepo.CountActiveByTrainer(ctx, trainer.ID)
		if err != nil {
			return nil, err
		}
		resp.AssignedClients = count
		responses = append(responses, resp)
	}
	return responses, nil
}

// ClientsOf lists the members currently assigned to a trainer
func (s *AssignmentService) ClientsOf(ctx context.Context, trainerID uint) ([]*models.MemberResponse, error) {
	if _, err := s.trainerRepo.GetByID(ctx, trainerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTrainerNotFound
		}
		return nil, err
	}

	assignments, err := s.assignmentRepo.ListActiveByTrainer(ctx, trainerID)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.MemberResponse, 0, len(assignments))
	for _, assignment := range assignments {
		if assignment.Member != nil {
			responses = append(responses, assignment.Member.ToResponse())
		}
	}
	return responses, nil
}

// ResolveMemberID maps an account id to its member profile id. Profile ids
// and account ids are separate sequences; never pass one for the other.
func (s *AssignmentService) ResolveMemberID(ctx context.Context, userID uint) (uint, error) {
	member, err := s.memberRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domain.ErrMemberNotFound
		}
		return 0, err
	}
	return member.ID, nil
}

// ResolveTrainerID maps an account id to its trainer profile id
func (s *AssignmentService) ResolveTrainerID(ctx context.Context, userID uint) (uint, error) {
	trainer, err := s.trainerRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domain.ErrTrainerNotFound
		}
		return 0, err
	}
	return trainer.ID, nil
}
