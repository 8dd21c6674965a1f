package folder

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/stockroomhq/stockroom/internal/auth"
	"github.com/stockroomhq/stockroom/internal/folder"
)

type Handler struct {
	svc *folder.Service
}

func NewHandler(svc *folder.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{folderID}", h.get)
	r.Patch("/{folderID}", h.rename)
	r.Delete("/{folderID}", h.delete)

	r.Get("/{folderID}/members", h.members)
	r.Post("/{folderID}/members", h.invite)
	r.Patch("/{folderID}/members/{userID}", h.updateRoles)
	r.Delete("/{folderID}/members/{userID}", h.removeMember)
}

func folderID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "folderID"))
}

// actorRoles resolves the authenticated user's role set for the folder.
func (h *Handler) actorRoles(r *http.Request, id uuid.UUID) (folder.Roles, error) {
	return h.svc.RolesFor(r.Context(), id, auth.UserID(r.Context()))
}

type createFolderRequest struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	owner := folder.Member{
		UserID:   auth.UserID(r.Context()),
		Email:    req.Email,
		FullName: req.FullName,
	}

	f, err := h.svc.Create(r.Context(), folder.CreateParams{Name: req.Name, Currency: req.Currency}, owner)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(f))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	folders, err := h.svc.List(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toResponseList(folders))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := folderID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	f, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, folder.ErrNotFound) {
			http.Error(w, "folder not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, toResponse(f))
}

type renameFolderRequest struct {
	Name string `json:"name"`
}

func (h *Handler) rename(w http.ResponseWriter, r *http.Request) {
	id, err := folderID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req renameFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	roles, err := h.actorRoles(r, id)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if err := h.svc.Rename(r.Context(), id, roles, req.Name); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := folderID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	roles, err := h.actorRoles(r, id)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if err := h.svc.Delete(r.Context(), id, roles); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) members(w http.ResponseWriter, r *http.Request) {
	id, err := folderID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	members, err := h.svc.Members(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toMemberResponseList(members))
}

type inviteMemberRequest struct {
	UserID   uuid.UUID    `json:"user_id"`
	Email    string       `json:"email"`
	FullName string       `json:"full_name"`
	Roles    rolesPayload `json:"roles"`
}

func (h *Handler) invite(w http.ResponseWriter, r *http.Request) {
	id, err := folderID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req inviteMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	roles, err := h.actorRoles(r, id)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	member := folder.Member{
		UserID:   req.UserID,
		Email:    req.Email,
		FullName: req.FullName,
		Roles:    req.Roles.toRoles(),
	}

	if err := h.svc.Invite(r.Context(), id, roles, member); err != nil {
		if errors.Is(err, folder.ErrAlreadyMember) {
			http.Error(w, "user is already a member", http.StatusConflict)
			return
		}

		writeServiceError(w, err)

		return
	}

	w.WriteHeader(http.StatusCreated)
}

type updateRolesRequest struct {
	Roles rolesPayload `json:"roles"`
}

func (h *Handler) updateRoles(w http.ResponseWriter, r *http.Request) {
	id, err := folderID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	var req updateRolesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	roles, err := h.actorRoles(r, id)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if err := h.svc.UpdateRoles(r.Context(), id, roles, userID, req.Roles.toRoles()); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) removeMember(w http.ResponseWriter, r *http.Request) {
	id, err := folderID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	roles, err := h.actorRoles(r, id)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	actorID := auth.UserID(r.Context())
	if err := h.svc.Remove(r.Context(), id, roles, actorID, userID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, folder.ErrPermissionDenied):
		http.Error(w, "permission denied", http.StatusForbidden)
	case errors.Is(err, folder.ErrNotFound):
		http.Error(w, "folder not found", http.StatusNotFound)
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
