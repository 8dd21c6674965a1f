package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	exportHandler "github.com/stockroomhq/stockroom/internal/http/export"
	folderHandler "github.com/stockroomhq/stockroom/internal/http/folder"
	historyHandler "github.com/stockroomhq/stockroom/internal/http/history"
	importHandler "github.com/stockroomhq/stockroom/internal/http/importcsv"
	itemHandler "github.com/stockroomhq/stockroom/internal/http/item"
)

func New(
	foldersV1 *folderHandler.Handler,
	itemsV1 *itemHandler.Handler,
	historyV1 *historyHandler.Handler,
	importV1 *importHandler.Handler,
	exportV1 *exportHandler.Handler,
	authMiddleware func(http.Handler) http.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// The mobile client runs in a webview during development.
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(authMiddleware)

		r.Route("/folders", func(r chi.Router) {
			foldersV1.Routes(r)

			r.Route("/{folderID}/items", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				itemsV1.FolderRoutes(r)
			})

			r.Route("/{folderID}/history", historyV1.Routes)
			r.Get("/{folderID}/analytics", historyV1.Analytics)
			r.Get("/{folderID}/export", exportV1.Export)
			r.Post("/{folderID}/import", importV1.Import)
		})

		r.Route("/items", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			itemsV1.Routes(r)
		})
	})

	return router
}
