package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"pitchcraft/internal/config"
	"pitchcraft/internal/domain"
	"pitchcraft/internal/domain/models"
	"pitchcraft/internal/domain/repositories"
	"pitchcraft/internal/domain/services"

	"github.com/google/uuid"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// proposalService implements the ProposalService interface
type proposalService struct {
	proposalRepo repositories.ProposalRepository
	sectionRepo  repositories.SectionRepository
	logger       *slog.Logger
}

// NewProposalService creates a new proposal service
func NewProposalService(
	proposalRepo repositories.ProposalRepository,
	sectionRepo repositories.SectionRepository,
	logger *slog.Logger,
) services.ProposalService {
	return &proposalService{
		proposalRepo: proposalRepo,
		sectionRepo:  sectionRepo,
		logger:       logger,
	}
}

// CreateProposal creates a new proposal owned by the acting user
func (s *proposalService) CreateProposal(ctx context.Context, req *services.CreateProposalRequest) (*models.Proposal, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	id := req.ID
	if id == "" {
		id = uuid.New().String()
	}

	now := time.Now()
	proposal := &models.Proposal{
		ID:             id,
		UserID:         req.UserID,
		Title:          strings.TrimSpace(req.Title),
		ClientName:     req.ClientName,
		ProjectName:    req.ProjectName,
		Currency:       req.Currency,
		EstimatedValue: req.EstimatedValue,
		Status:         req.Status,
		Notes:          req.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.proposalRepo.Create(ctx, proposal); err != nil {
		return nil, err
	}

	s.logger.Info("proposal created",
		"id", proposal.ID,
		"title", proposal.Title,
		"user_id", req.UserID,
	)

	return proposal, nil
}

// ListProposals retrieves all proposals owned by the user
func (s *proposalService) ListProposals(ctx context.Context, userID string) ([]models.Proposal, error) {
	proposals, err := s.proposalRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	return proposals, nil
}

// UpdateProposal applies a field patch to a proposal. Fields absent from the
// request body are left untouched. An empty effective change set returns the
// stored record as-is without advancing updated_at.
func (s *proposalService) UpdateProposal(ctx context.Context, id, userID string, req *services.UpdateProposalRequest) (*models.Proposal, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Owner-scoped load; a proposal owned by someone else reads as absent
	proposal, err := s.proposalRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if !hasChanges(req) {
		return proposal, nil
	}

	applyPatch(proposal, req)
	proposal.UpdatedAt = time.Now()

	if err := s.proposalRepo.Update(ctx, proposal); err != nil {
		return nil, err
	}

	s.logger.Info("proposal updated",
		"id", proposal.ID,
		"user_id", userID,
	)

	return proposal, nil
}

// DeleteProposal deletes a proposal and returns its prior state. Sections of
// the proposal are intentionally left in place; see DESIGN.md on the absent
// cascade.
func (s *proposalService) DeleteProposal(ctx context.Context, id, userID string) (*models.Proposal, error) {
	proposal, err := s.proposalRepo.Delete(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("proposal deleted",
		"id", id,
		"user_id", userID,
	)

	return proposal, nil
}

// GetProposalWithSections retrieves a proposal and all of its sections.
// The section listing needs no further scoping: ownership of the parent
// already implies ownership of every section under it.
func (s *proposalService) GetProposalWithSections(ctx context.Context, id, userID string) (*services.ProposalWithSections, error) {
	proposal, err := s.proposalRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	sections, err := s.sectionRepo.ListByProposal(ctx, proposal.ID)
	if err != nil {
		return nil, err
	}

	return &services.ProposalWithSections{
		Proposal: proposal,
		Sections: sections,
	}, nil
}

// hasChanges reports whether any field is explicitly present in the patch
func hasChanges(req *services.UpdateProposalRequest) bool {
	return req.Title.Present ||
		req.ClientName.Present ||
		req.ProjectName.Present ||
		req.Currency.Present ||
		req.EstimatedValue.Present ||
		req.Status.Present ||
		req.Notes.Present
}

// applyPatch copies every present field onto the stored record. Optional
// columns accept an explicit null as "clear"; title is required and its
// patch value is validated before this point.
func applyPatch(proposal *models.Proposal, req *services.UpdateProposalRequest) {
	if req.Title.Present {
		proposal.Title = strings.TrimSpace(*req.Title.Value)
	}
	if req.ClientName.Present {
		proposal.ClientName = req.ClientName.Value
	}
	if req.ProjectName.Present {
		proposal.ProjectName = req.ProjectName.Value
	}
	if req.Currency.Present {
		proposal.Currency = req.Currency.Value
	}
	if req.EstimatedValue.Present {
		proposal.EstimatedValue = req.EstimatedValue.Value
	}
	if req.Status.Present {
		proposal.Status = req.Status.Value
	}
	if req.Notes.Present {
		proposal.Notes = req.Notes.Value
	}
}

// validateCreateRequest validates a create proposal request
func (s *proposalService) validateCreateRequest(req *services.CreateProposalRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.Title,
			validation.Required,
			validation.Length(1, config.MaxTitleLength),
			validation.By(validateNonBlank("title")),
		),
	)
}

// validateUpdateRequest validates an update proposal patch. Only the title
// carries a constraint: when present it must be a non-blank string.
func (s *proposalService) validateUpdateRequest(req *services.UpdateProposalRequest) error {
	if !req.Title.Present {
		return nil
	}
	if req.Title.Value == nil {
		return fmt.Errorf("title cannot be null")
	}
	title := strings.TrimSpace(*req.Title.Value)
	if title == "" {
		return fmt.Errorf("title cannot be empty")
	}
	if len(title) > config.MaxTitleLength {
		return fmt.Errorf("title must be at most %d characters", config.MaxTitleLength)
	}
	return nil
}

// validateNonBlank rejects strings that are empty after trimming
func validateNonBlank(field string) validation.RuleFunc {
	return func(value interface{}) error {
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("%s must be a string", field)
		}
		if strings.TrimSpace(str) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
		return nil
	}
}
