package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"pitchcraft/internal/domain"
	"pitchcraft/internal/domain/models"
	"pitchcraft/internal/domain/repositories"
	"pitchcraft/internal/domain/services"

	"github.com/google/uuid"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// sectionService implements the SectionService interface.
//
// Sections store no owner of their own. Every operation first re-confirms,
// through an owner-scoped load of the parent proposal, that the acting user
// owns the declared proposal_id. A proposal that is absent or owned by
// someone else fails that load with not-found, which is exactly the failure
// the caller sees.
type sectionService struct {
	proposalRepo repositories.ProposalRepository
	sectionRepo  repositories.SectionRepository
	logger       *slog.Logger
}

// NewSectionService creates a new section service
func NewSectionService(
	proposalRepo repositories.ProposalRepository,
	sectionRepo repositories.SectionRepository,
	logger *slog.Logger,
) services.SectionService {
	return &sectionService{
		proposalRepo: proposalRepo,
		sectionRepo:  sectionRepo,
		logger:       logger,
	}
}

// SaveSection inserts a new section (no id) or updates an existing one (id
// given). The update path loads the section by id alone and treats a stored
// proposal_id that differs from the declared one the same as a missing
// section, so a section id can never be probed across proposals and a
// section can never be reparented.
func (s *sectionService) SaveSection(ctx context.Context, req *services.SaveSectionRequest) (*models.Section, error) {
	if err := s.validateSaveRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Transitive ownership: the parent lookup is owner-scoped
	if _, err := s.proposalRepo.GetByID(ctx, req.ProposalID, req.UserID); err != nil {
		return nil, err
	}

	if req.ID == "" {
		section := &models.Section{
			ID:         uuid.New().String(),
			ProposalID: req.ProposalID,
			Type:       req.Type,
			OrderIndex: req.OrderIndex,
			Heading:    req.Heading,
			Content:    req.Content,
			CreatedAt:  time.Now(),
		}

		if err := s.sectionRepo.Create(ctx, section); err != nil {
			return nil, err
		}

		s.logger.Info("section created",
			"id", section.ID,
			"proposal_id", section.ProposalID,
			"order_index", section.OrderIndex,
		)

		return section, nil
	}

	section, err := s.sectionRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if section.ProposalID != req.ProposalID {
		// Parent mismatch reads exactly like a missing section
		return nil, fmt.Errorf("section %s: %w", req.ID, domain.ErrNotFound)
	}

	section.Type = req.Type
	section.OrderIndex = req.OrderIndex
	section.Heading = req.Heading
	section.Content = req.Content
	// created_at doubles as a "last saved" marker on the update path
	section.CreatedAt = time.Now()

	if err := s.sectionRepo.Update(ctx, section); err != nil {
		return nil, err
	}

	s.logger.Info("section updated",
		"id", section.ID,
		"proposal_id", section.ProposalID,
		"order_index", section.OrderIndex,
	)

	return section, nil
}

// DeleteSection deletes a section scoped to (id, proposalID) and returns its
// prior state
func (s *sectionService) DeleteSection(ctx context.Context, id, proposalID, userID string) (*models.Section, error) {
	if _, err := s.proposalRepo.GetByID(ctx, proposalID, userID); err != nil {
		return nil, err
	}

	section, err := s.sectionRepo.Delete(ctx, id, proposalID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("section deleted",
		"id", id,
		"proposal_id", proposalID,
	)

	return section, nil
}

// validateSaveRequest validates a save section request
func (s *sectionService) validateSaveRequest(req *services.SaveSectionRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.ProposalID, validation.Required),
		validation.Field(&req.OrderIndex, validation.Required, validation.Min(1)),
		validation.Field(&req.Content,
			validation.Required,
			validation.By(validateNonBlank("content")),
		),
	)
}
