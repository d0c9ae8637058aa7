package service

import (
	"context"
	"fmt"
	"strings"

	"fleet-service/internal/repository"
)

// CalendarEvent is shaped for the fullcalendar board on the scheduling
// screen; the description carries HTML rendered into the event popover.
type CalendarEvent struct {
	ID              uint   `json:"id"`
	Title           string `json:"title"`
	Start           string `json:"start"`
	End             string `json:"end,omitempty"`
	BackgroundColor string `json:"backgroundColor"`
	Description     string `json:"description"`
}

const (
	calendarColorPlanned    = "#007bff"
	calendarColorInProgress = "#28a745"
	calendarColorOther      = "#dc3545"
)

func calendarColor(status string) string {
	switch status {
	case "planned":
		return calendarColorPlanned
	case "in_progress":
		return calendarColorInProgress
	default:
		return calendarColorOther
	}
}

func buildCalendarEvent(row repository.CalendarRow) CalendarEvent {
	start := row.DepartureDate.Format(tripDateLayout)
	if row.DepartureTime != nil {
		start += "T" + *row.DepartureTime
	}

	var end string
	if row.ArrivalDate != nil {
		end = row.ArrivalDate.Format(tripDateLayout)
		if row.ArrivalTime != nil {
			end += "T" + *row.ArrivalTime
		}
	}

	var lines []string
	if row.ClientName != "" {
		lines = append(lines, "<strong>Client:</strong> "+row.ClientName)
	}
	if row.ClientPhone != "" {
		lines = append(lines, "<strong>Phone:</strong> "+row.ClientPhone)
	}
	if row.DriverFirstName != nil && row.DriverLastName != nil {
		lines = append(lines, "<strong>Driver:</strong> "+*row.DriverFirstName+" "+*row.DriverLastName)
	}
	if row.PlateNumber != nil {
		vehicle := *row.PlateNumber
		if row.VehicleModel != nil {
			vehicle += " - " + *row.VehicleModel
		}
		lines = append(lines, "<strong>Vehicle:</strong> "+vehicle)
	}
	passengers := row.Adults + row.Children + row.Infants
	if passengers > 0 {
		lines = append(lines, fmt.Sprintf("<strong>Passengers:</strong> %d", passengers))
	}

	return CalendarEvent{
		ID:              row.TripID,
		Title:           fmt.Sprintf("%s - %s -> %s", row.Type, row.DeparturePoint, row.ArrivalPoint),
		Start:           start,
		End:             end,
		BackgroundColor: calendarColor(row.Status),
		Description:     strings.Join(lines, "<br>"),
	}
}

func (s *TripService) ListCalendarEvents(ctx context.Context) ([]CalendarEvent, error) {
	rows, err := s.trips.ListCalendarRows(ctx)
	if err != nil {
		return nil, err
	}
	events := make([]CalendarEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, buildCalendarEvent(row))
	}
	return events, nil
}
