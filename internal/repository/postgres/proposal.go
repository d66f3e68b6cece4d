package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"pitchcraft/internal/domain"
	"pitchcraft/internal/domain/models"
	"pitchcraft/internal/domain/repositories"
)

// PostgresProposalRepository implements the ProposalRepository interface.
// Owner scoping is enforced in SQL: every lookup and mutation that takes a
// userID filters on (id, user_id), so a proposal owned by someone else is
// indistinguishable from one that does not exist.
type PostgresProposalRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewProposalRepository creates a new proposal repository
func NewProposalRepository(config *RepositoryConfig) repositories.ProposalRepository {
	return &PostgresProposalRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const proposalColumns = "id, user_id, title, client_name, project_name, currency, estimated_value, status, notes, created_at, updated_at"

// Create inserts a new proposal
func (r *PostgresProposalRepository) Create(ctx context.Context, proposal *models.Proposal) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, r.tables.Proposals, proposalColumns)

	_, err := r.pool.Exec(ctx, query,
		proposal.ID,
		proposal.UserID,
		proposal.Title,
		proposal.ClientName,
		proposal.ProjectName,
		proposal.Currency,
		proposal.EstimatedValue,
		proposal.Status,
		proposal.Notes,
		proposal.CreatedAt,
		proposal.UpdatedAt,
	)

	if err != nil {
		if isPgDuplicateError(err) {
			// Caller-supplied id collided with an existing proposal
			return &domain.ConflictError{
				Message:      fmt.Sprintf("proposal %s already exists", proposal.ID),
				ResourceType: "proposal",
				ResourceID:   proposal.ID,
			}
		}
		return fmt.Errorf("create proposal: %w", err)
	}

	return nil
}

// GetByID retrieves a proposal by ID, scoped to the owner
func (r *PostgresProposalRepository) GetByID(ctx context.Context, id, userID string) (*models.Proposal, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, proposalColumns, r.tables.Proposals)

	proposal, err := scanProposal(r.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("proposal %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get proposal: %w", err)
	}

	return proposal, nil
}

// List retrieves all proposals owned by a user. Ordering is not part of the
// repository contract; created_at DESC keeps output stable for clients.
func (r *PostgresProposalRepository) List(ctx context.Context, userID string) ([]models.Proposal, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, proposalColumns, r.tables.Proposals)

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list proposals: %w", err)
	}
	defer rows.Close()

	var proposals []models.Proposal
	for rows.Next() {
		proposal, err := scanProposal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan proposal: %w", err)
		}
		proposals = append(proposals, *proposal)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate proposals: %w", err)
	}

	// Return empty slice instead of nil if no proposals
	if proposals == nil {
		proposals = []models.Proposal{}
	}

	return proposals, nil
}

// Update persists a proposal's mutable fields and updated_at timestamp
func (r *PostgresProposalRepository) Update(ctx context.Context, proposal *models.Proposal) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, client_name = $2, project_name = $3, currency = $4,
		    estimated_value = $5, status = $6, notes = $7, updated_at = $8
		WHERE id = $9 AND user_id = $10
	`, r.tables.Proposals)

	result, err := r.pool.Exec(ctx, query,
		proposal.Title,
		proposal.ClientName,
		proposal.ProjectName,
		proposal.Currency,
		proposal.EstimatedValue,
		proposal.Status,
		proposal.Notes,
		proposal.UpdatedAt,
		proposal.ID,
		proposal.UserID,
	)

	if err != nil {
		return fmt.Errorf("update proposal: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("proposal %s: %w", proposal.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a proposal scoped to the owner and returns its prior state.
// Sections referencing the proposal are left in place intentionally.
func (r *PostgresProposalRepository) Delete(ctx context.Context, id, userID string) (*models.Proposal, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND user_id = $2
		RETURNING %s
	`, r.tables.Proposals, proposalColumns)

	proposal, err := scanProposal(r.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("proposal %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("delete proposal: %w", err)
	}

	return proposal, nil
}

// rowScanner covers both pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProposal(row rowScanner) (*models.Proposal, error) {
	var proposal models.Proposal
	err := row.Scan(
		&proposal.ID,
		&proposal.UserID,
		&proposal.Title,
		&proposal.ClientName,
		&proposal.ProjectName,
		&proposal.Currency,
		&proposal.EstimatedValue,
		&proposal.Status,
		&proposal.Notes,
		&proposal.CreatedAt,
		&proposal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &proposal, nil
}
