package handler

import (
	"log/slog"
	"net/http"

	"pitchcraft/internal/domain/services"
	"pitchcraft/internal/httputil"
)

// SectionHandler handles proposal section HTTP requests
type SectionHandler struct {
	sectionService services.SectionService
	logger         *slog.Logger
}

// NewSectionHandler creates a new section handler
func NewSectionHandler(sectionService services.SectionService, logger *slog.Logger) *SectionHandler {
	return &SectionHandler{
		sectionService: sectionService,
		logger:         logger,
	}
}

// SaveSection inserts or updates a section (upsert keyed on the optional id)
// POST /api/sections
func (h *SectionHandler) SaveSection(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req services.SaveSectionRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.UserID = userID

	created := req.ID == ""

	section, err := h.sectionService.SaveSection(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	httputil.RespondJSON(w, status, map[string]interface{}{"section": section})
}

// DeleteSection deletes a section scoped to its declared parent proposal
// DELETE /api/sections/{id}?proposal_id=...
func (h *SectionHandler) DeleteSection(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "section ID is required")
		return
	}

	proposalID := r.URL.Query().Get("proposal_id")
	if proposalID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "proposal_id is required")
		return
	}

	section, err := h.sectionService.DeleteSection(r.Context(), id, proposalID, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"section": section})
}
