package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"pitchcraft/internal/domain"
	"pitchcraft/internal/domain/models"
)

// testLogger returns a logger that discards everything
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeProposalRepo is an in-memory ProposalRepository that mirrors the SQL
// semantics of the postgres implementation: owner scoping happens inside the
// repository, and reads return copies so callers cannot mutate stored state.
type fakeProposalRepo struct {
	mu        sync.Mutex
	proposals map[string]models.Proposal
}

func newFakeProposalRepo() *fakeProposalRepo {
	return &fakeProposalRepo{proposals: make(map[string]models.Proposal)}
}

func (f *fakeProposalRepo) Create(ctx context.Context, proposal *models.Proposal) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.proposals[proposal.ID]; exists {
		return &domain.ConflictError{
			Message:      fmt.Sprintf("proposal %s already exists", proposal.ID),
			ResourceType: "proposal",
			ResourceID:   proposal.ID,
		}
	}
	f.proposals[proposal.ID] = *proposal
	return nil
}

func (f *fakeProposalRepo) GetByID(ctx context.Context, id, userID string) (*models.Proposal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.proposals[id]
	if !ok || stored.UserID != userID {
		return nil, fmt.Errorf("proposal %s: %w", id, domain.ErrNotFound)
	}
	out := stored
	return &out, nil
}

func (f *fakeProposalRepo) List(ctx context.Context, userID string) ([]models.Proposal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	proposals := []models.Proposal{}
	for _, stored := range f.proposals {
		if stored.UserID == userID {
			proposals = append(proposals, stored)
		}
	}
	sort.Slice(proposals, func(i, j int) bool {
		return proposals[i].CreatedAt.After(proposals[j].CreatedAt)
	})
	return proposals, nil
}

func (f *fakeProposalRepo) Update(ctx context.Context, proposal *models.Proposal) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.proposals[proposal.ID]
	if !ok || stored.UserID != proposal.UserID {
		return fmt.Errorf("proposal %s: %w", proposal.ID, domain.ErrNotFound)
	}
	f.proposals[proposal.ID] = *proposal
	return nil
}

func (f *fakeProposalRepo) Delete(ctx context.Context, id, userID string) (*models.Proposal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.proposals[id]
	if !ok || stored.UserID != userID {
		return nil, fmt.Errorf("proposal %s: %w", id, domain.ErrNotFound)
	}
	delete(f.proposals, id)
	return &stored, nil
}

// fakeSectionRepo is an in-memory SectionRepository. Like its postgres
// counterpart it knows nothing about users.
type fakeSectionRepo struct {
	mu       sync.Mutex
	sections map[string]models.Section
}

func newFakeSectionRepo() *fakeSectionRepo {
	return &fakeSectionRepo{sections: make(map[string]models.Section)}
}

func (f *fakeSectionRepo) Create(ctx context.Context, section *models.Section) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sections[section.ID] = *section
	return nil
}

func (f *fakeSectionRepo) GetByID(ctx context.Context, id string) (*models.Section, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.sections[id]
	if !ok {
		return nil, fmt.Errorf("section %s: %w", id, domain.ErrNotFound)
	}
	out := stored
	return &out, nil
}

func (f *fakeSectionRepo) ListByProposal(ctx context.Context, proposalID string) ([]models.Section, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	sections := []models.Section{}
	for _, stored := range f.sections {
		if stored.ProposalID == proposalID {
			sections = append(sections, stored)
		}
	}
	sort.Slice(sections, func(i, j int) bool {
		return sections[i].OrderIndex < sections[j].OrderIndex
	})
	return sections, nil
}

func (f *fakeSectionRepo) Update(ctx context.Context, section *models.Section) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.sections[section.ID]
	if !ok || stored.ProposalID != section.ProposalID {
		return fmt.Errorf("section %s: %w", section.ID, domain.ErrNotFound)
	}
	f.sections[section.ID] = *section
	return nil
}

func (f *fakeSectionRepo) Delete(ctx context.Context, id, proposalID string) (*models.Section, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.sections[id]
	if !ok || stored.ProposalID != proposalID {
		return nil, fmt.Errorf("section %s: %w", id, domain.ErrNotFound)
	}
	delete(f.sections, id)
	return &stored, nil
}
