package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"pitchcraft/internal/domain"
	"pitchcraft/internal/domain/services"
	"pitchcraft/internal/httputil"
)

func newProposalService(t *testing.T) (services.ProposalService, *fakeProposalRepo, *fakeSectionRepo) {
	t.Helper()
	proposalRepo := newFakeProposalRepo()
	sectionRepo := newFakeSectionRepo()
	svc := NewProposalService(proposalRepo, sectionRepo, testLogger())
	return svc, proposalRepo, sectionRepo
}

func strPtr(s string) *string       { return &s }
func floatPtr(f float64) *float64   { return &f }
func optStr(s string) httputil.OptionalString {
	return httputil.OptionalString{Present: true, Value: &s}
}

func TestCreateProposal(t *testing.T) {
	ctx := context.Background()

	t.Run("generates id and sets owner and timestamps", func(t *testing.T) {
		svc, _, _ := newProposalService(t)

		proposal, err := svc.CreateProposal(ctx, &services.CreateProposalRequest{
			UserID: "user-a",
			Title:  "Website proposal",
		})
		if err != nil {
			t.Fatalf("CreateProposal failed: %v", err)
		}

		if proposal.ID == "" {
			t.Error("expected generated id")
		}
		if proposal.UserID != "user-a" {
			t.Errorf("expected owner user-a, got %s", proposal.UserID)
		}
		if proposal.CreatedAt.IsZero() || proposal.UpdatedAt.IsZero() {
			t.Error("expected timestamps to be set")
		}
		if proposal.Status != nil || proposal.ClientName != nil {
			t.Error("expected optional fields to stay unset")
		}
	})

	t.Run("keeps caller-supplied id", func(t *testing.T) {
		svc, _, _ := newProposalService(t)

		proposal, err := svc.CreateProposal(ctx, &services.CreateProposalRequest{
			UserID: "user-a",
			ID:     "prop-1",
			Title:  "Custom id",
		})
		if err != nil {
			t.Fatalf("CreateProposal failed: %v", err)
		}
		if proposal.ID != "prop-1" {
			t.Errorf("expected id prop-1, got %s", proposal.ID)
		}
	})

	t.Run("rejects empty title", func(t *testing.T) {
		svc, _, _ := newProposalService(t)

		_, err := svc.CreateProposal(ctx, &services.CreateProposalRequest{
			UserID: "user-a",
			Title:  "   ",
		})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("duplicate id conflicts", func(t *testing.T) {
		svc, _, _ := newProposalService(t)

		req := &services.CreateProposalRequest{UserID: "user-a", ID: "prop-1", Title: "First"}
		if _, err := svc.CreateProposal(ctx, req); err != nil {
			t.Fatalf("CreateProposal failed: %v", err)
		}

		_, err := svc.CreateProposal(ctx, &services.CreateProposalRequest{
			UserID: "user-a", ID: "prop-1", Title: "Second",
		})
		if !errors.Is(err, domain.ErrConflict) {
			t.Errorf("expected conflict error, got %v", err)
		}
	})
}

func TestUpdateProposal(t *testing.T) {
	ctx := context.Background()

	create := func(t *testing.T, svc services.ProposalService) string {
		t.Helper()
		proposal, err := svc.CreateProposal(ctx, &services.CreateProposalRequest{
			UserID: "user-a",
			Title:  "Original title",
			Status: strPtr("draft"),
		})
		if err != nil {
			t.Fatalf("CreateProposal failed: %v", err)
		}
		return proposal.ID
	}

	t.Run("other user gets not found, not forbidden", func(t *testing.T) {
		svc, _, _ := newProposalService(t)
		id := create(t, svc)

		_, err := svc.UpdateProposal(ctx, id, "user-b", &services.UpdateProposalRequest{
			Title: optStr("Hijacked"),
		})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected not found, got %v", err)
		}
	})

	t.Run("empty patch leaves record and updated_at untouched", func(t *testing.T) {
		svc, repo, _ := newProposalService(t)
		id := create(t, svc)

		before, err := repo.GetByID(ctx, id, "user-a")
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}

		updated, err := svc.UpdateProposal(ctx, id, "user-a", &services.UpdateProposalRequest{})
		if err != nil {
			t.Fatalf("UpdateProposal failed: %v", err)
		}

		if !updated.UpdatedAt.Equal(before.UpdatedAt) {
			t.Errorf("updated_at moved from %v to %v on empty patch", before.UpdatedAt, updated.UpdatedAt)
		}
		if updated.Title != before.Title {
			t.Errorf("title changed on empty patch")
		}
	})

	t.Run("patch advances updated_at and applies present fields only", func(t *testing.T) {
		svc, _, _ := newProposalService(t)
		id := create(t, svc)

		before, err := svc.GetProposalWithSections(ctx, id, "user-a")
		if err != nil {
			t.Fatalf("GetProposalWithSections failed: %v", err)
		}

		updated, err := svc.UpdateProposal(ctx, id, "user-a", &services.UpdateProposalRequest{
			ClientName: optStr("Acme Corp"),
			EstimatedValue: httputil.OptionalFloat64{
				Present: true,
				Value:   floatPtr(5000),
			},
		})
		if err != nil {
			t.Fatalf("UpdateProposal failed: %v", err)
		}

		if updated.UpdatedAt.Before(before.Proposal.UpdatedAt) {
			t.Error("updated_at went backwards")
		}
		if updated.ClientName == nil || *updated.ClientName != "Acme Corp" {
			t.Errorf("client_name not applied: %v", updated.ClientName)
		}
		if updated.EstimatedValue == nil || *updated.EstimatedValue != 5000 {
			t.Errorf("estimated_value not applied: %v", updated.EstimatedValue)
		}
		if updated.Title != "Original title" {
			t.Errorf("omitted title changed to %q", updated.Title)
		}
		if updated.Status == nil || *updated.Status != "draft" {
			t.Errorf("omitted status changed: %v", updated.Status)
		}
	})

	t.Run("explicit null clears an optional field", func(t *testing.T) {
		svc, _, _ := newProposalService(t)
		id := create(t, svc)

		updated, err := svc.UpdateProposal(ctx, id, "user-a", &services.UpdateProposalRequest{
			Status: httputil.OptionalString{Present: true, Value: nil},
		})
		if err != nil {
			t.Fatalf("UpdateProposal failed: %v", err)
		}
		if updated.Status != nil {
			t.Errorf("expected status cleared, got %v", *updated.Status)
		}
	})

	t.Run("rejects blank or null title", func(t *testing.T) {
		svc, _, _ := newProposalService(t)
		id := create(t, svc)

		for name, patch := range map[string]services.UpdateProposalRequest{
			"blank": {Title: optStr("  ")},
			"null":  {Title: httputil.OptionalString{Present: true, Value: nil}},
		} {
			patch := patch
			_, err := svc.UpdateProposal(ctx, id, "user-a", &patch)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("%s title: expected validation error, got %v", name, err)
			}
		}
	})
}

func TestListProposals(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newProposalService(t)

	for _, title := range []string{"First", "Second"} {
		if _, err := svc.CreateProposal(ctx, &services.CreateProposalRequest{
			UserID: "user-a", Title: title,
		}); err != nil {
			t.Fatalf("CreateProposal failed: %v", err)
		}
	}
	if _, err := svc.CreateProposal(ctx, &services.CreateProposalRequest{
		UserID: "user-b", Title: "Other user's",
	}); err != nil {
		t.Fatalf("CreateProposal failed: %v", err)
	}

	proposals, err := svc.ListProposals(ctx, "user-a")
	if err != nil {
		t.Fatalf("ListProposals failed: %v", err)
	}
	if len(proposals) != 2 {
		t.Fatalf("expected 2 proposals, got %d", len(proposals))
	}
	for _, p := range proposals {
		if p.UserID != "user-a" {
			t.Errorf("leaked proposal owned by %s", p.UserID)
		}
	}
}

func TestDeleteProposal(t *testing.T) {
	ctx := context.Background()

	t.Run("returns prior state, second delete fails", func(t *testing.T) {
		svc, _, _ := newProposalService(t)

		created, err := svc.CreateProposal(ctx, &services.CreateProposalRequest{
			UserID: "user-a", Title: "Doomed",
		})
		if err != nil {
			t.Fatalf("CreateProposal failed: %v", err)
		}

		deleted, err := svc.DeleteProposal(ctx, created.ID, "user-a")
		if err != nil {
			t.Fatalf("DeleteProposal failed: %v", err)
		}
		if deleted.Title != "Doomed" {
			t.Errorf("expected prior state, got title %q", deleted.Title)
		}

		if _, err := svc.DeleteProposal(ctx, created.ID, "user-a"); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected not found on second delete, got %v", err)
		}
	})

	t.Run("other user cannot delete", func(t *testing.T) {
		svc, _, _ := newProposalService(t)

		created, err := svc.CreateProposal(ctx, &services.CreateProposalRequest{
			UserID: "user-a", Title: "Mine",
		})
		if err != nil {
			t.Fatalf("CreateProposal failed: %v", err)
		}

		if _, err := svc.DeleteProposal(ctx, created.ID, "user-b"); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected not found, got %v", err)
		}
		// Still present for the owner
		if _, err := svc.GetProposalWithSections(ctx, created.ID, "user-a"); err != nil {
			t.Errorf("proposal vanished after foreign delete attempt: %v", err)
		}
	})

	t.Run("sections survive their proposal", func(t *testing.T) {
		proposalRepo := newFakeProposalRepo()
		sectionRepo := newFakeSectionRepo()
		proposalSvc := NewProposalService(proposalRepo, sectionRepo, testLogger())
		sectionSvc := NewSectionService(proposalRepo, sectionRepo, testLogger())

		created, err := proposalSvc.CreateProposal(ctx, &services.CreateProposalRequest{
			UserID: "user-a", Title: "Parent",
		})
		if err != nil {
			t.Fatalf("CreateProposal failed: %v", err)
		}
		section, err := sectionSvc.SaveSection(ctx, &services.SaveSectionRequest{
			UserID:     "user-a",
			ProposalID: created.ID,
			OrderIndex: 1,
			Content:    "Intro text",
		})
		if err != nil {
			t.Fatalf("SaveSection failed: %v", err)
		}

		if _, err := proposalSvc.DeleteProposal(ctx, created.ID, "user-a"); err != nil {
			t.Fatalf("DeleteProposal failed: %v", err)
		}

		// No cascade: the orphaned section row is still there
		if _, err := sectionRepo.GetByID(ctx, section.ID); err != nil {
			t.Errorf("expected orphaned section to remain, got %v", err)
		}
	})
}

func TestGetProposalWithSections(t *testing.T) {
	ctx := context.Background()
	proposalRepo := newFakeProposalRepo()
	sectionRepo := newFakeSectionRepo()
	proposalSvc := NewProposalService(proposalRepo, sectionRepo, testLogger())
	sectionSvc := NewSectionService(proposalRepo, sectionRepo, testLogger())

	created, err := proposalSvc.CreateProposal(ctx, &services.CreateProposalRequest{
		UserID: "user-a", Title: "With sections",
	})
	if err != nil {
		t.Fatalf("CreateProposal failed: %v", err)
	}
	for i, content := range []string{"Scope", "Intro"} {
		if _, err := sectionSvc.SaveSection(ctx, &services.SaveSectionRequest{
			UserID:     "user-a",
			ProposalID: created.ID,
			OrderIndex: 2 - i, // inserted out of order on purpose
			Content:    content,
		}); err != nil {
			t.Fatalf("SaveSection failed: %v", err)
		}
	}

	t.Run("returns proposal and ordered sections", func(t *testing.T) {
		result, err := proposalSvc.GetProposalWithSections(ctx, created.ID, "user-a")
		if err != nil {
			t.Fatalf("GetProposalWithSections failed: %v", err)
		}
		if result.Proposal.ID != created.ID {
			t.Errorf("wrong proposal returned")
		}
		if len(result.Sections) != 2 {
			t.Fatalf("expected 2 sections, got %d", len(result.Sections))
		}
		if result.Sections[0].Content != "Intro" || result.Sections[1].Content != "Scope" {
			t.Errorf("sections not ordered by order_index: %v", result.Sections)
		}
	})

	t.Run("hidden from other users", func(t *testing.T) {
		_, err := proposalSvc.GetProposalWithSections(ctx, created.ID, "user-b")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected not found, got %v", err)
		}
	})
}

// Guard against timestamp helpers accidentally using a fixed clock
func TestTimestampsMove(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newProposalService(t)

	created, err := svc.CreateProposal(ctx, &services.CreateProposalRequest{
		UserID: "user-a", Title: "Clock check",
	})
	if err != nil {
		t.Fatalf("CreateProposal failed: %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	updated, err := svc.UpdateProposal(ctx, created.ID, "user-a", &services.UpdateProposalRequest{
		Notes: optStr("touched"),
	})
	if err != nil {
		t.Fatalf("UpdateProposal failed: %v", err)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("updated_at did not advance: %v -> %v", created.UpdatedAt, updated.UpdatedAt)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("created_at changed on update")
	}
}
