package services

import (
	"context"

	"pitchcraft/internal/domain/models"
	"pitchcraft/internal/httputil"
)

// CreateProposalRequest represents a request to create a proposal.
// ID is optional; one is generated when absent. The owner is never taken
// from the request body: handlers set UserID from the verified identity.
type CreateProposalRequest struct {
	UserID         string   `json:"-"`
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	ClientName     *string  `json:"client_name"`
	ProjectName    *string  `json:"project_name"`
	Currency       *string  `json:"currency"`
	EstimatedValue *float64 `json:"estimated_value"`
	Status         *string  `json:"status"`
	Notes          *string  `json:"notes"`
}

// UpdateProposalRequest is a field patch: only fields present in the JSON
// body are applied, absent fields are left unchanged. Tri-state Optional
// types distinguish "omitted" from "explicitly set".
type UpdateProposalRequest struct {
	Title          httputil.OptionalString  `json:"title"`
	ClientName     httputil.OptionalString  `json:"client_name"`
	ProjectName    httputil.OptionalString  `json:"project_name"`
	Currency       httputil.OptionalString  `json:"currency"`
	EstimatedValue httputil.OptionalFloat64 `json:"estimated_value"`
	Status         httputil.OptionalString  `json:"status"`
	Notes          httputil.OptionalString  `json:"notes"`
}

// ProposalWithSections bundles a proposal with all of its sections
type ProposalWithSections struct {
	Proposal *models.Proposal `json:"proposal"`
	Sections []models.Section `json:"sections"`
}

// ProposalService defines business logic operations for proposals
type ProposalService interface {
	// CreateProposal creates a new proposal owned by the acting user
	CreateProposal(ctx context.Context, req *CreateProposalRequest) (*models.Proposal, error)

	// ListProposals retrieves all proposals owned by the user
	ListProposals(ctx context.Context, userID string) ([]models.Proposal, error)

	// UpdateProposal applies a field patch to a proposal. An empty effective
	// change set returns the record unchanged without advancing updated_at.
	UpdateProposal(ctx context.Context, id, userID string, req *UpdateProposalRequest) (*models.Proposal, error)

	// DeleteProposal deletes a proposal and returns its prior state.
	// Sections of the proposal are NOT deleted (see DESIGN.md).
	DeleteProposal(ctx context.Context, id, userID string) (*models.Proposal, error)

	// GetProposalWithSections retrieves a proposal and all of its sections
	GetProposalWithSections(ctx context.Context, id, userID string) (*ProposalWithSections, error)
}
