package item

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockroomhq/stockroom/internal/auth"
	"github.com/stockroomhq/stockroom/internal/folder"
	"github.com/stockroomhq/stockroom/internal/item"
)

type Handler struct {
	items   *item.Service
	folders *folder.Service
}

func NewHandler(items *item.Service, folders *folder.Service) *Handler {
	return &Handler{items: items, folders: folders}
}

// FolderRoutes covers the folder-scoped collection endpoints.
func (h *Handler) FolderRoutes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/low-stock", h.lowStock)
}

// Routes covers endpoints addressing a single item by id.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/{itemID}", h.get)
	r.Patch("/{itemID}", h.update)
	r.Delete("/{itemID}", h.delete)
	r.Post("/{itemID}/clone", h.clone)
}

type createItemRequest struct {
	Name        string          `json:"name"`
	Note        string          `json:"note"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"amount"`
	MinQuantity int64           `json:"min_amount"`
	Tag         string          `json:"tag"`
	ImageURLs   []string        `json:"image_url"`
	AmountType  item.AmountType `json:"type_amount"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	folderID, err := uuid.Parse(chi.URLParam(r, "folderID"))
	if err != nil {
		http.Error(w, "invalid folder id", http.StatusBadRequest)
		return
	}

	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
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

	it, err := h.items.Create(r.Context(), folderID, actorID, item.CreateParams{
		Name:        req.Name,
		Note:        req.Note,
		Price:       req.Price,
		Quantity:    req.Quantity,
		MinQuantity: req.MinQuantity,
		Tag:         req.Tag,
		ImageURLs:   req.ImageURLs,
		AmountType:  req.AmountType,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(it))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	folderID, err := uuid.Parse(chi.URLParam(r, "folderID"))
	if err != nil {
		http.Error(w, "invalid folder id", http.StatusBadRequest)
		return
	}

	items, err := h.items.ListByFolder(r.Context(), folderID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toResponseList(items))
}

func (h *Handler) lowStock(w http.ResponseWriter, r *http.Request) {
	folderID, err := uuid.Parse(chi.URLParam(r, "folderID"))
	if err != nil {
		http.Error(w, "invalid folder id", http.StatusBadRequest)
		return
	}

	items, err := h.items.LowStock(r.Context(), folderID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toResponseList(items))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	it, err := h.items.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(it))
}

type updateItemRequest struct {
	Name        *string          `json:"name"`
	Note        *string          `json:"note"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *int64           `json:"amount"`
	MinQuantity *int64           `json:"min_amount"`
	Tag         *string          `json:"tag"`
	ImageURLs   []string         `json:"image_url"`
	AmountType  *item.AmountType `json:"type_amount"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	actorID := auth.UserID(r.Context())

	roles, err := h.rolesForItem(r, id, actorID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	it, err := h.items.Update(r.Context(), id, actorID, roles, item.UpdateParams{
		Name:        req.Name,
		Note:        req.Note,
		Price:       req.Price,
		Quantity:    req.Quantity,
		MinQuantity: req.MinQuantity,
		Tag:         req.Tag,
		ImageURLs:   req.ImageURLs,
		AmountType:  req.AmountType,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(it))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	actorID := auth.UserID(r.Context())

	roles, err := h.rolesForItem(r, id, actorID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if err := h.items.Delete(r.Context(), id, actorID, roles); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) clone(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	actorID := auth.UserID(r.Context())

	roles, err := h.rolesForItem(r, id, actorID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	clone, err := h.items.Clone(r.Context(), id, actorID, roles)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(clone))
}

// rolesForItem loads the item to find its folder, then resolves the actor's
// roles there.
func (h *Handler) rolesForItem(r *http.Request, itemID, actorID uuid.UUID) (folder.Roles, error) {
	it, err := h.items.Get(r.Context(), itemID)
	if err != nil {
		return folder.Roles{}, err
	}

	return h.folders.RolesFor(r.Context(), it.FolderID, actorID)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, folder.ErrPermissionDenied):
		http.Error(w, "permission denied", http.StatusForbidden)
	case errors.Is(err, item.ErrNotFound):
		http.Error(w, "item not found", http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
