package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/stockroomhq/stockroom/internal/auth"
	"github.com/stockroomhq/stockroom/internal/config"
	"github.com/stockroomhq/stockroom/internal/database"
	"github.com/stockroomhq/stockroom/internal/export"
	"github.com/stockroomhq/stockroom/internal/folder"
	folderStore "github.com/stockroomhq/stockroom/internal/folder/store"
	"github.com/stockroomhq/stockroom/internal/history"
	historyStore "github.com/stockroomhq/stockroom/internal/history/store"
	stockroomHttp "github.com/stockroomhq/stockroom/internal/http"
	exportHandler "github.com/stockroomhq/stockroom/internal/http/export"
	folderHandler "github.com/stockroomhq/stockroom/internal/http/folder"
	historyHandler "github.com/stockroomhq/stockroom/internal/http/history"
	importHandler "github.com/stockroomhq/stockroom/internal/http/importcsv"
	itemHandler "github.com/stockroomhq/stockroom/internal/http/item"
	"github.com/stockroomhq/stockroom/internal/importer"
	"github.com/stockroomhq/stockroom/internal/item"
	itemStore "github.com/stockroomhq/stockroom/internal/item/store"
	"github.com/stockroomhq/stockroom/internal/tagging"
	taggingStore "github.com/stockroomhq/stockroom/internal/tagging/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	items := itemStore.New(db)

	var (
		folderService  = folder.NewService(folderStore.New(db))
		taggingService = tagging.NewService(taggingStore.New(db))
		itemService    = item.NewService(items, taggingService)
		historyService = history.NewService(historyStore.New(db), items)
		importService  = importer.NewService()
		exportService  = export.NewService(historyService, folderService)
	)

	var (
		folderH  = folderHandler.NewHandler(folderService)
		itemH    = itemHandler.NewHandler(itemService, folderService)
		historyH = historyHandler.NewHandler(historyService, folderService, itemService)
		importH  = importHandler.NewHandler(importService, itemService, folderService)
		exportH  = exportHandler.NewHandler(exportService)
	)

	verifier := auth.NewVerifier(cfg.Auth.Secret)
	router := stockroomHttp.New(folderH, itemH, historyH, importH, exportH, verifier.Middleware)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
