package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"pitchcraft/internal/domain"
	"pitchcraft/internal/domain/models"
	"pitchcraft/internal/domain/repositories"
)

// PostgresSectionRepository implements the SectionRepository interface.
// Sections carry no user_id column; callers are expected to have verified
// ownership of the parent proposal before invoking any method here.
type PostgresSectionRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewSectionRepository creates a new section repository
func NewSectionRepository(config *RepositoryConfig) repositories.SectionRepository {
	return &PostgresSectionRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const sectionColumns = "id, proposal_id, type, order_index, heading, content, created_at"

// Create inserts a new section
func (r *PostgresSectionRepository) Create(ctx context.Context, section *models.Section) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, r.tables.Sections, sectionColumns)

	_, err := r.pool.Exec(ctx, query,
		section.ID,
		section.ProposalID,
		section.Type,
		section.OrderIndex,
		section.Heading,
		section.Content,
		section.CreatedAt,
	)

	if err != nil {
		if isPgForeignKeyError(err) {
			// Parent vanished between the ownership check and the insert
			return fmt.Errorf("proposal %s: %w", section.ProposalID, domain.ErrNotFound)
		}
		return fmt.Errorf("create section: %w", err)
	}

	return nil
}

// GetByID retrieves a section by its id alone, regardless of parent.
// The service layer compares the stored proposal_id against the declared
// one and treats a mismatch as not found.
func (r *PostgresSectionRepository) GetByID(ctx context.Context, id string) (*models.Section, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, sectionColumns, r.tables.Sections)

	section, err := scanSection(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("section %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get section: %w", err)
	}

	return section, nil
}

// ListByProposal retrieves all sections of a proposal, ordered by order_index.
// Duplicate indices are permitted; created_at breaks ties deterministically.
func (r *PostgresSectionRepository) ListByProposal(ctx context.Context, proposalID string) ([]models.Section, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE proposal_id = $1
		ORDER BY order_index, created_at
	`, sectionColumns, r.tables.Sections)

	rows, err := r.pool.Query(ctx, query, proposalID)
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	defer rows.Close()

	var sections []models.Section
	for rows.Next() {
		section, err := scanSection(rows)
		if err != nil {
			return nil, fmt.Errorf("scan section: %w", err)
		}
		sections = append(sections, *section)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sections: %w", err)
	}

	if sections == nil {
		sections = []models.Section{}
	}

	return sections, nil
}

// Update overwrites a section's content fields. created_at is written too:
// the save path re-stamps it as a "last saved" marker.
func (r *PostgresSectionRepository) Update(ctx context.Context, section *models.Section) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET type = $1, order_index = $2, heading = $3, content = $4, created_at = $5
		WHERE id = $6 AND proposal_id = $7
	`, r.tables.Sections)

	result, err := r.pool.Exec(ctx, query,
		section.Type,
		section.OrderIndex,
		section.Heading,
		section.Content,
		section.CreatedAt,
		section.ID,
		section.ProposalID,
	)

	if err != nil {
		return fmt.Errorf("update section: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("section %s: %w", section.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a section filtered by (id, proposal_id) and returns its
// prior state
func (r *PostgresSectionRepository) Delete(ctx context.Context, id, proposalID string) (*models.Section, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND proposal_id = $2
		RETURNING %s
	`, r.tables.Sections, sectionColumns)

	section, err := scanSection(r.pool.QueryRow(ctx, query, id, proposalID))
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("section %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("delete section: %w", err)
	}

	return section, nil
}

func scanSection(row rowScanner) (*models.Section, error) {
	var section models.Section
	err := row.Scan(
		&section.ID,
		&section.ProposalID,
		&section.Type,
		&section.OrderIndex,
		&section.Heading,
		&section.Content,
		&section.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &section, nil
}
