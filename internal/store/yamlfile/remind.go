package yamlfile

import (
	"context"
	"fmt"
	"time"

	"github.com/hay-kot/termassist/internal/core/remind"
)

// reminderDateLayout is the on-disk date format. Dates are stored at local
// midnight.
const reminderDateLayout = "2006-01-02 15:04:05"

// ReminderFile is the root YAML structure of the reminder store.
type ReminderFile struct {
	Reminders []ReminderEntry `yaml:"reminders"`
}

// ReminderEntry is one stored reminder.
type ReminderEntry struct {
	Date    string `yaml:"date"`
	Message string `yaml:"message"`
}

// ReminderStore implements remind.Store using a YAML file for persistence.
type ReminderStore struct {
	file *File[ReminderFile]
	loc  *time.Location
}

var _ remind.Store = (*ReminderStore)(nil)

// NewReminderStore creates a reminder store at the given path. Stored dates
// are interpreted in the local time zone.
func NewReminderStore(path string) *ReminderStore {
	return &ReminderStore{file: NewFile[ReminderFile](path), loc: time.Local}
}

// List returns all reminders in insertion order.
func (s *ReminderStore) List(ctx context.Context) ([]remind.Reminder, error) {
	doc, err := s.file.Load()
	if err != nil {
		return nil, err
	}

	out := make([]remind.Reminder, 0, len(doc.Reminders))
	for i, e := range doc.Reminders {
		r, err := s.decode(e)
		if err != nil {
			return nil, fmt.Errorf("reminder %d in %s: %w", i+1, s.file.Path(), err)
		}
		out = append(out, r)
	}
	return out, nil
}

// Add appends r, stored at midnight of its day.
func (s *ReminderStore) Add(ctx context.Context, r remind.Reminder) error {
	return s.file.Update(func(doc *ReminderFile) error {
		doc.Reminders = append(doc.Reminders, s.encode(r))
		return nil
	})
}

// Remove deletes the reminder at the 1-based id.
func (s *ReminderStore) Remove(ctx context.Context, id int) (remind.Reminder, error) {
	var removed remind.Reminder
	err := s.file.Update(func(doc *ReminderFile) error {
		if id < 1 || id > len(doc.Reminders) {
			return fmt.Errorf("%w: %d (have %d)", remind.ErrOutOfRange, id, len(doc.Reminders))
		}

		r, err := s.decode(doc.Reminders[id-1])
		if err != nil {
			return err
		}

		removed = r
		doc.Reminders = append(doc.Reminders[:id-1], doc.Reminders[id:]...)
		return nil
	})
	return removed, err
}

// Prune drops reminders dated before the day of before. Entries with
// unreadable dates are kept.
func (s *ReminderStore) Prune(ctx context.Context, before time.Time) (int, error) {
	var pruned int
	err := s.file.Update(func(doc *ReminderFile) error {
		kept := doc.Reminders[:0]
		for _, e := range doc.Reminders {
			r, err := s.decode(e)
			if err == nil && remind.Expired(r, before) {
				pruned++
				continue
			}
			kept = append(kept, e)
		}
		doc.Reminders = kept
		return nil
	})
	if err != nil {
		return 0, err
	}
	return pruned, nil
}

func (s *ReminderStore) encode(r remind.Reminder) ReminderEntry {
	return ReminderEntry{
		Date:    remind.Day(r.Date.In(s.loc)).Format(reminderDateLayout),
		Message: r.Message,
	}
}

func (s *ReminderStore) decode(e ReminderEntry) (remind.Reminder, error) {
	date, err := time.ParseInLocation(reminderDateLayout, e.Date, s.loc)
	if err != nil {
		// accept bare dates written by hand
		date, err = remind.ParseDate(e.Date, s.loc)
		if err != nil {
			return remind.Reminder{}, err
		}
	}
	return remind.Reminder{Date: date, Message: e.Message}, nil
}
