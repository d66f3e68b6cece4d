package handler

import (
	"log/slog"
	"net/http"
	"time"

	"pitchcraft/internal/domain/services"
	"pitchcraft/internal/httputil"
)

// ProposalHandler handles proposal HTTP requests
type ProposalHandler struct {
	proposalService services.ProposalService
	logger          *slog.Logger
}

// NewProposalHandler creates a new proposal handler
func NewProposalHandler(proposalService services.ProposalService, logger *slog.Logger) *ProposalHandler {
	return &ProposalHandler{
		proposalService: proposalService,
		logger:          logger,
	}
}

// ListProposals retrieves all proposals owned by the user
// GET /api/proposals
func (h *ProposalHandler) ListProposals(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	proposals, err := h.proposalService.ListProposals(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"proposals": proposals})
}

// CreateProposal creates a new proposal
// POST /api/proposals
func (h *ProposalHandler) CreateProposal(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req services.CreateProposalRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	// The owner always comes from the verified identity
	req.UserID = userID

	proposal, err := h.proposalService.CreateProposal(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, map[string]interface{}{"proposal": proposal})
}

// GetProposal retrieves a proposal together with all of its sections
// GET /api/proposals/{id}
func (h *ProposalHandler) GetProposal(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "proposal ID is required")
		return
	}

	result, err := h.proposalService.GetProposalWithSections(r.Context(), id, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// UpdateProposal applies a partial update to a proposal
// PATCH /api/proposals/{id}
func (h *ProposalHandler) UpdateProposal(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "proposal ID is required")
		return
	}

	var req services.UpdateProposalRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	proposal, err := h.proposalService.UpdateProposal(r.Context(), id, userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"proposal": proposal})
}

// DeleteProposal deletes a proposal and returns its prior state
// DELETE /api/proposals/{id}
func (h *ProposalHandler) DeleteProposal(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "proposal ID is required")
		return
	}

	proposal, err := h.proposalService.DeleteProposal(r.Context(), id, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"proposal": proposal})
}

// HealthCheck is a simple health check endpoint
// GET /health
func (h *ProposalHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now(),
	})
}
