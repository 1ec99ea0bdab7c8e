package gsuite

import (
	"context"

	"google.golang.org/api/calendar/v3"

	"github.com/campusunion/documentdesk/internal/docerr"
)

// CalendarScheduler adapts the Calendar API to store.Calendar. Reminders are
// all-day events on the shared clubs calendar.
type CalendarScheduler struct {
	svc        *calendar.Service
	calendarID string
}

// NewCalendarScheduler wraps a Calendar service targeting one calendar.
func NewCalendarScheduler(svc *calendar.Service, calendarID string) *CalendarScheduler {
	return &CalendarScheduler{svc: svc, calendarID: calendarID}
}

func (s *CalendarScheduler) InsertAllDayEvent(ctx context.Context, date, summary, description string) (string, error) {
	event := &calendar.Event{
		Summary:     summary,
		Description: description,
		Start:       &calendar.EventDateTime{Date: date},
		End:         &calendar.EventDateTime{Date: date},
	}
	created, err := s.svc.Events.Insert(s.calendarID, event).Context(ctx).Do()
	if err != nil {
		return "", docerr.Wrap(docerr.KindInternal, err, "failed to create calendar reminder")
	}
	return created.HtmlLink, nil
}
