// Package config loads process configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/campusunion/documentdesk/internal/schema"
)

// Config is the process-wide configuration, built once at startup and
// injected into every component constructor.
type Config struct {
	HTTPPort string

	// GoogleCredentialsBase64 is the base64-encoded service-account JSON
	// shared by every request handler.
	GoogleCredentialsBase64 string

	Sheets  schema.SheetIDs
	Folders schema.FolderIDs

	CalendarID  string
	MailSheetID string
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info(".env not found, using environment variables")
	}

	cfg := Config{
		HTTPPort:                getEnv("HTTP_PORT", "8080"),
		GoogleCredentialsBase64: os.Getenv("GOOGLE_CREDENTIALS_BASE64"),
		Sheets: schema.SheetIDs{
			GeneralCOI:             os.Getenv("COI_GENERAL_SPREADSHEET_ID"),
			AdditionallyInsuredCOI: os.Getenv("COI_AI_SPREADSHEET_ID"),
			CharityLetter:          os.Getenv("CHARITY_LETTER_SPREADSHEET_ID"),
			Contract:               os.Getenv("CONTRACT_SPREADSHEET_ID"),
			PurchaseOrder:          os.Getenv("PO_SPREADSHEET_ID"),
			Sponsorship:            os.Getenv("SPONSORSHIP_SPREADSHEET_ID"),
		},
		Folders: schema.FolderIDs{
			GeneralCOI:             os.Getenv("COI_GENERAL_DRIVE_FOLDER_ID"),
			AdditionallyInsuredCOI: os.Getenv("COI_AI_DRIVE_FOLDER_ID"),
			CharityLetter:          os.Getenv("CHARITY_LETTER_DRIVE_FOLDER_ID"),
			Contract:               os.Getenv("CONTRACT_DRIVE_FOLDER_ID"),
			PurchaseOrder:          os.Getenv("PO_DRIVE_FOLDER_ID"),
			Sponsorship:            os.Getenv("SPONSORSHIP_DRIVE_FOLDER_ID"),
		},
		CalendarID:  os.Getenv("CLUBS_CALENDAR_ID"),
		MailSheetID: os.Getenv("MAIL_SCHEDULE_SPREADSHEET_ID"),
	}

	if cfg.GoogleCredentialsBase64 == "" {
		return Config{}, fmt.Errorf("GOOGLE_CREDENTIALS_BASE64 must be set")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
