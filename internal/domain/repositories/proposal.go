package repositories

import (
	"context"

	"pitchcraft/internal/domain/models"
)

// ProposalRepository defines data access operations for proposals.
// Every operation that takes a userID is owner-scoped in the query itself:
// a record that exists but belongs to someone else behaves as absent.
type ProposalRepository interface {
	// Create inserts a new proposal. Returns ErrConflict-compatible error
	// when the caller-supplied id already exists.
	Create(ctx context.Context, proposal *models.Proposal) error

	// GetByID retrieves a proposal by ID, scoped to the owner
	GetByID(ctx context.Context, id, userID string) (*models.Proposal, error)

	// List retrieves all proposals owned by a user
	List(ctx context.Context, userID string) ([]models.Proposal, error)

	// Update persists a proposal's mutable fields and updated_at timestamp
	Update(ctx context.Context, proposal *models.Proposal) error

	// Delete removes a proposal scoped to the owner and returns its prior state
	Delete(ctx context.Context, id, userID string) (*models.Proposal, error)
}
