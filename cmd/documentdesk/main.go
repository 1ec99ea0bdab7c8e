package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/campusunion/documentdesk/internal/config"
	"github.com/campusunion/documentdesk/internal/gsuite"
	"github.com/campusunion/documentdesk/internal/schema"
	"github.com/campusunion/documentdesk/internal/server"
	"github.com/campusunion/documentdesk/internal/services"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("Fatal error during startup.", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	registry, err := schema.NewRegistry(cfg.Sheets, cfg.Folders)
	if err != nil {
		return err
	}

	clients, err := gsuite.NewClients(ctx, cfg.GoogleCredentialsBase64)
	if err != nil {
		return err
	}

	table := gsuite.NewSheetsTable(clients.Sheets)
	blob := gsuite.NewDriveStore(clients.Drive)
	calendar := gsuite.NewCalendarScheduler(clients.Calendar, cfg.CalendarID)

	locator := services.NewLocator(table)
	updater := services.NewUpdater(table, locator)
	attacher := services.NewAttacher(table, blob, locator)
	creator := services.NewCreator(table, blob, calendar)
	overview := services.NewOverview(registry, table, 25)
	mailer := services.NewMailer(table, cfg.MailSheetID)

	srv := server.New(registry, locator, updater, attacher, creator, overview, mailer)

	slog.Info("Document desk listening.", "port", cfg.HTTPPort)
	return http.ListenAndServe(":"+cfg.HTTPPort, srv.Handler())
}
