// Package importcsv accepts CSV uploads and turns them into items.
package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/stockroomhq/stockroom/internal/auth"
	"github.com/stockroomhq/stockroom/internal/folder"
	"github.com/stockroomhq/stockroom/internal/importer"
	"github.com/stockroomhq/stockroom/internal/item"
)

// Uploads above this size are rejected before parsing.
const maxUploadBytes = 10 << 20

type Handler struct {
	imports *importer.Service
	items   *item.Service
	folders *folder.Service
}

func NewHandler(imports *importer.Service, items *item.Service, folders *folder.Service) *Handler {
	return &Handler{imports: imports, items: items, folders: folders}
}

type importResponse struct {
	Created int         `json:"created"`
	Items   []uuid.UUID `json:"items"`
}

// Import reads the uploaded "file" form field as CSV and creates one item per
// parsed row. A partial failure reports the items created before the error.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	folderID, err := uuid.Parse(chi.URLParam(r, "folderID"))
	if err != nil {
		http.Error(w, "invalid folder id", http.StatusBadRequest)
		return
	}

	actorID := auth.UserID(r.Context())

	roles, err := h.folders.RolesFor(r.Context(), folderID, actorID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if !roles.CanAddItem() {
		http.Error(w, "permission denied", http.StatusForbidden)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.imports.Import(importer.FormatCSV, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.items.CreateBatch(r.Context(), folderID, actorID, params)
	if err != nil {
		slog.Error("csv import aborted", "folder_id", folderID, "created", len(created), "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	ids := make([]uuid.UUID, 0, len(created))
	for _, it := range created {
		ids = append(ids, it.ID)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(importResponse{Created: len(ids), Items: ids}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
