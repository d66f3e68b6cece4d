package services

import (
	"context"

	"pitchcraft/internal/domain/models"
)

// SaveSectionRequest represents an upsert of a proposal section: insert when
// ID is empty, update otherwise. UserID is set by the handler from the
// verified identity, never parsed from the body.
type SaveSectionRequest struct {
	UserID     string  `json:"-"`
	ID         string  `json:"id"`
	ProposalID string  `json:"proposal_id"`
	Type       *string `json:"type"`
	OrderIndex int     `json:"order_index"`
	Heading    *string `json:"heading"`
	Content    string  `json:"content"`
}

// SectionService defines business logic operations for proposal sections.
// Every operation re-confirms that the acting user owns the referenced
// proposal before touching any section.
type SectionService interface {
	// SaveSection inserts or updates a section. The update path rejects a
	// proposal_id that differs from the stored one (no reparenting) and
	// re-stamps created_at.
	SaveSection(ctx context.Context, req *SaveSectionRequest) (*models.Section, error)

	// DeleteSection deletes a section scoped to (id, proposalID) and returns
	// its prior state
	DeleteSection(ctx context.Context, id, proposalID, userID string) (*models.Section, error)
}
