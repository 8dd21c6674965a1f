// Package export serves a folder's history as a CSV download.
package export

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/stockroomhq/stockroom/internal/export"
	"github.com/stockroomhq/stockroom/internal/history"
)

type Handler struct {
	exports *export.Service
}

func NewHandler(exports *export.Service) *Handler {
	return &Handler{exports: exports}
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	folderID, err := uuid.Parse(chi.URLParam(r, "folderID"))
	if err != nil {
		http.Error(w, "invalid folder id", http.StatusBadRequest)
		return
	}

	window, err := parseWindowQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "history_"+folderID.String()+".csv"))

	if err := h.exports.Export(r.Context(), folderID, w, window); err != nil {
		// Headers are already out; all we can do is log.
		slog.Error("csv export failed", "folder_id", folderID, "error", err)
	}
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
