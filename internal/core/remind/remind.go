// Package remind defines dated reminders and the calendar helpers used to
// decide which of them are due.
package remind

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// DateLayout is the accepted input format for reminder dates.
const DateLayout = "2006-01-02"

var (
	// ErrOutOfRange is returned when an id does not address a reminder.
	ErrOutOfRange = errors.New("reminder id out of range")
	// ErrInvalidDate is returned when a date is not in DateLayout.
	ErrInvalidDate = errors.New("date must be in YYYY-MM-DD format")
	// ErrEmptyMessage is returned when adding a blank reminder.
	ErrEmptyMessage = errors.New("reminder message is empty")
)

// Reminder is a message attached to a calendar day.
type Reminder struct {
	Date    time.Time `json:"date"`
	Message string    `json:"message"`
}

// Store defines the interface for reminder persistence.
type Store interface {
	// List returns every reminder in insertion order.
	List(ctx context.Context) ([]Reminder, error)

	// Add appends r.
	Add(ctx context.Context, r Reminder) error

	// Remove deletes the reminder at the 1-based id and returns it.
	// Returns ErrOutOfRange if id addresses nothing.
	Remove(ctx context.Context, id int) (Reminder, error)

	// Prune deletes every reminder dated before the day of before and
	// returns how many were dropped.
	Prune(ctx context.Context, before time.Time) (int, error)
}

// New validates msg and day and returns a reminder for that day.
func New(day string, msg string, loc *time.Location) (Reminder, error) {
	date, err := ParseDate(day, loc)
	if err != nil {
		return Reminder{}, err
	}

	msg = strings.TrimSpace(msg)
	if msg == "" {
		return Reminder{}, ErrEmptyMessage
	}

	return Reminder{Date: date, Message: msg}, nil
}

// ParseDate parses s as DateLayout at midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Due returns the reminders dated on the same day as today, keeping their order.
func Due(reminders []Reminder, today time.Time) []Reminder {
	var due []Reminder
	for _, r := range reminders {
		if SameDay(r.Date, today) {
			due = append(due, r)
		}
	}
	return due
}

// Expired reports whether r is dated before the day of now.
func Expired(r Reminder, now time.Time) bool {
	return calendarDay(r.Date).Before(calendarDay(now))
}

// Until describes the distance from now to the reminder's day, e.g.
// "today", "1 day from now" or "2 weeks ago".
func Until(r Reminder, now time.Time) string {
	day, today := calendarDay(r.Date), calendarDay(now)
	if day.Equal(today) {
		return "today"
	}
	return humanize.RelTime(day, today, "ago", "from now")
}

// calendarDay maps the date of t onto UTC midnight so day arithmetic is not
// affected by DST shifts.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
