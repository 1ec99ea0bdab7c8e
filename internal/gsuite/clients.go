// Package gsuite constructs the Google API clients and adapts them to the
// store interfaces. It centralizes client creation for all services; one set
// of service-account credentials is decoded at process start and injected
// into every constructor.
package gsuite

import (
	"context"
	"encoding/base64"
	"fmt"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Clients bundles the three Google services the application talks to.
type Clients struct {
	Sheets   *sheets.Service
	Drive    *drive.Service
	Calendar *calendar.Service
}

// NewClients decodes base64 service-account credentials and builds all
// clients with the scopes the operations need.
func NewClients(ctx context.Context, credentialsBase64 string) (*Clients, error) {
	if credentialsBase64 == "" {
		return nil, fmt.Errorf("service account credentials must be provided")
	}
	creds, err := base64.StdEncoding.DecodeString(credentialsBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode service account credentials: %w", err)
	}

	sheetsSvc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(creds),
		option.WithScopes(sheets.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets client: %w", err)
	}
	driveSvc, err := drive.NewService(ctx,
		option.WithCredentialsJSON(creds),
		option.WithScopes(drive.DriveScope))
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive client: %w", err)
	}
	calendarSvc, err := calendar.NewService(ctx,
		option.WithCredentialsJSON(creds),
		option.WithScopes(calendar.CalendarScope))
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar client: %w", err)
	}

	return &Clients{Sheets: sheetsSvc, Drive: driveSvc, Calendar: calendarSvc}, nil
}
