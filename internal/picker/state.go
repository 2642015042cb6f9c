package picker

import "slices"

// DefaultCancelLabel is the label of the trailing entry that cancels the pick.
const DefaultCancelLabel = "Exit"

// Outcome is the terminal result of a selection, or Running while the user
// is still choosing.
type Outcome int

const (
	Running Outcome = iota
	Confirmed
	Cancelled
)

func (o Outcome) String() string {
	switch o {
	case Confirmed:
		return "confirmed"
	case Cancelled:
		return "cancelled"
	default:
		return "running"
	}
}

// State tracks the cursor over a fixed list of labels. The last label is
// always the synthetic cancel entry. The cursor is always a valid index and
// the outcome only ever leaves Running once.
type State struct {
	items   []string
	cursor  int
	outcome Outcome
}

// NewState builds a State over items plus a trailing cancel entry.
func NewState(items []string, cancelLabel string) *State {
	if cancelLabel == "" {
		cancelLabel = DefaultCancelLabel
	}

	all := make([]string, 0, len(items)+1)
	all = append(all, items...)
	all = append(all, cancelLabel)

	return &State{items: all}
}

// Items returns every label including the cancel entry.
func (s *State) Items() []string { return slices.Clone(s.items) }

// Len is the number of labels including the cancel entry.
func (s *State) Len() int { return len(s.items) }

func (s *State) Cursor() int         { return s.cursor }
func (s *State) Outcome() Outcome    { return s.outcome }
func (s *State) Done() bool          { return s.outcome != Running }
func (s *State) IsCancel(i int) bool { return i == len(s.items)-1 }

// Selected returns the chosen index when the outcome is Confirmed.
func (s *State) Selected() (int, bool) {
	if s.outcome != Confirmed {
		return -1, false
	}
	return s.cursor, true
}

// Down moves the cursor one entry down, stopping at the cancel entry.
// It reports whether the state changed.
func (s *State) Down() bool {
	if s.Done() || s.cursor >= len(s.items)-1 {
		return false
	}
	s.cursor++
	return true
}

// Up moves the cursor one entry up, stopping at the first entry.
func (s *State) Up() bool {
	if s.Done() || s.cursor <= 0 {
		return false
	}
	s.cursor--
	return true
}

// Cancel aborts the selection.
func (s *State) Cancel() bool {
	if s.Done() {
		return false
	}
	s.outcome = Cancelled
	return true
}

// Confirm picks the entry under the cursor. Picking the cancel entry
// cancels.
func (s *State) Confirm() bool {
	if s.Done() {
		return false
	}
	if s.IsCancel(s.cursor) {
		s.outcome = Cancelled
	} else {
		s.outcome = Confirmed
	}
	return true
}
