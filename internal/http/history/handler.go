package history

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/stockroomhq/stockroom/internal/auth"
	"github.com/stockroomhq/stockroom/internal/folder"
	"github.com/stockroomhq/stockroom/internal/history"
	"github.com/stockroomhq/stockroom/internal/item"
)

type Handler struct {
	histories *history.Service
	folders   *folder.Service
	items     *item.Service
}

func NewHandler(histories *history.Service, folders *folder.Service, items *item.Service) *Handler {
	return &Handler{histories: histories, folders: folders, items: items}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{entryID}", h.get)
	r.Post("/{entryID}/revert", h.revert)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	folderID, err := uuid.Parse(chi.URLParam(r, "folderID"))
	if err != nil {
		http.Error(w, "invalid folder id", http.StatusBadRequest)
		return
	}

	settings, window, err := parseListQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entries, err := h.histories.List(r.Context(), folderID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	names, err := h.folders.MemberNames(r.Context(), folderID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	entries = history.FilterByWindow(entries, window)
	entries = history.ApplySettings(entries, names, settings)

	writeJSON(w, http.StatusOK, toResponseList(entries, names))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "entryID"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	entry, err := h.histories.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	names, err := h.folders.MemberNames(r.Context(), entry.FolderID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toDetailResponse(entry, names))
}

func (h *Handler) revert(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "entryID"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	entry, err := h.histories.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	actorID := auth.UserID(r.Context())

	roles, err := h.folders.RolesFor(r.Context(), entry.FolderID, actorID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if err := h.histories.Revert(r.Context(), id, actorID, roles); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Analytics rolls a folder's history inside the requested window into net
// quantity/price movement, per-member activity and the current low-stock count.
func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	folderID, err := uuid.Parse(chi.URLParam(r, "folderID"))
	if err != nil {
		http.Error(w, "invalid folder id", http.StatusBadRequest)
		return
	}

	q := r.URL.Query()

	window, err := parseWindowQuery(q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entries, err := h.histories.List(r.Context(), folderID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// An item_id narrows the summary to a single item's history.
	if s := q.Get("item_id"); s != "" {
		itemID, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid item_id", http.StatusBadRequest)
			return
		}

		entries = slices.DeleteFunc(slices.Clone(entries), func(e *history.Entry) bool {
			return e.ItemID != itemID
		})
	}

	low, err := h.items.LowStock(r.Context(), folderID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	names, err := h.folders.MemberNames(r.Context(), folderID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	sum := history.Aggregate(history.FilterByWindow(entries, window))

	writeJSON(w, http.StatusOK, toAnalyticsResponse(sum, names, len(low)))
}

func parseListQuery(q url.Values) (history.Settings, history.Window, error) {
	settings := history.Settings{
		SortBy:    history.SortKey(q.Get("sort_by")),
		Ascending: q.Get("ascending") == "true",
		Search:    q.Get("search"),
	}

	var err error

	settings.MemberIDs, err = parseIDs(q["member_id"])
	if err != nil {
		return settings, history.Window{}, errors.New("invalid member_id")
	}

	settings.ItemIDs, err = parseIDs(q["item_id"])
	if err != nil {
		return settings, history.Window{}, errors.New("invalid item_id")
	}

	for _, action := range q["action"] {
		switch history.Action(action) {
		case history.ActionCreated:
			settings.Actions.Created = true
		case history.ActionEdited:
			settings.Actions.Edited = true
		case history.ActionDeleted:
			settings.Actions.Deleted = true
		case history.ActionReverted:
			settings.Actions.Reverted = true
		default:
			return settings, history.Window{}, errors.New("unknown action " + action)
		}
	}

	window, err := parseWindowQuery(q)

	return settings, window, err
}

func parseWindowQuery(q url.Values) (history.Window, error) {
	rng := history.Range(q.Get("range"))
	if rng == "" {
		rng = history.RangeAll
	}

	start, err := parseTime(q.Get("start"))
	if err != nil {
		return history.Window{}, errors.New("invalid start")
	}

	end, err := parseTime(q.Get("end"))
	if err != nil {
		return history.Window{}, errors.New("invalid end")
	}

	return history.WindowFor(rng, time.Now(), start, end), nil
}

func parseIDs(raw []string) ([]uuid.UUID, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(raw))

	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, nil
}

func parseTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, folder.ErrPermissionDenied):
		http.Error(w, "permission denied", http.StatusForbidden)
	case errors.Is(err, history.ErrNotFound):
		http.Error(w, "history entry not found", http.StatusNotFound)
	case errors.Is(err, history.ErrRevertDeleted), errors.Is(err, history.ErrNoPreviousState):
		http.Error(w, err.Error(), http.StatusConflict)
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
