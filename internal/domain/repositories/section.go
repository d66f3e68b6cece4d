package repositories

import (
	"context"

	"pitchcraft/internal/domain/models"
)

// SectionRepository defines data access operations for proposal sections.
// Sections are never owner-scoped here: the service layer establishes
// ownership through the parent proposal before any call.
type SectionRepository interface {
	// Create inserts a new section
	Create(ctx context.Context, section *models.Section) error

	// GetByID retrieves a section by its id alone, regardless of parent
	GetByID(ctx context.Context, id string) (*models.Section, error)

	// ListByProposal retrieves all sections of a proposal, ordered by order_index
	ListByProposal(ctx context.Context, proposalID string) ([]models.Section, error)

	// Update overwrites a section's content fields and created_at timestamp
	Update(ctx context.Context, section *models.Section) error

	// Delete removes a section filtered by (id, proposal_id) and returns its
	// prior state
	Delete(ctx context.Context, id, proposalID string) (*models.Section, error)
}
