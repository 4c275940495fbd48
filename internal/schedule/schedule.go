// Package schedule interprets a company's operating profile: the legacy flat
// openingTime/closingTime/workDays fields and the structured per-day
// workSchedule that supersedes them when present.
package schedule

import (
	"strconv"
	"strings"
	"time"

	"github.com/reservaon/api/internal/models"
)

const (
	DefaultOpeningTime = "09:00"
	DefaultClosingTime = "18:00"
	DefaultWorkDays    = "1,2,3,4,5"
)

// Window is the open interval of a single day, in whole hours. A requested
// hour is valid when openHour <= hour < closeHour. Minutes inside the
// boundary hours are intentionally not validated; the granularity is hours.
type Window struct {
	Open    string
	Close   string
	Working bool
}

// OpenHour parses the window's opening "HH:MM" into its hour component.
func (w Window) OpenHour() int {
	return parseHour(w.Open, 9)
}

// CloseHour parses the window's closing "HH:MM" into its hour component.
func (w Window) CloseHour() int {
	return parseHour(w.Close, 18)
}

// Contains reports whether the hour of day falls inside [open, close).
func (w Window) Contains(hour int) bool {
	return hour >= w.OpenHour() && hour < w.CloseHour()
}

// For resolves the operating window of a company for the given weekday. The
// structured workSchedule wins when it has an entry for the day; otherwise
// the flat fields apply uniformly to every configured work day.
func For(company *models.Company, weekday time.Weekday) Window {
	for _, d := range company.WorkSchedule {
		if d.Day == int(weekday) {
			return Window{Open: d.Start, Close: d.End, Working: d.Active}
		}
	}

	open := company.OpeningTime
	if open == "" {
		open = DefaultOpeningTime
	}
	closing := company.ClosingTime
	if closing == "" {
		closing = DefaultClosingTime
	}

	return Window{Open: open, Close: closing, Working: isWorkDay(company.WorkDays, weekday)}
}

func isWorkDay(workDays string, weekday time.Weekday) bool {
	if workDays == "" {
		workDays = DefaultWorkDays
	}
	for _, part := range strings.Split(workDays, ",") {
		day, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		if day == int(weekday) {
			return true
		}
	}
	return false
}

func parseHour(hhmm string, fallback int) int {
	h, _, ok := strings.Cut(hhmm, ":")
	if !ok && hhmm == "" {
		return fallback
	}
	hour, err := strconv.Atoi(h)
	if err != nil {
		return fallback
	}
	return hour
}
