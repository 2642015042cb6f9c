package picker

import (
	"errors"

	"github.com/charmbracelet/huh"
)

// HuhConfirmer asks yes/no questions with a huh confirm field.
type HuhConfirmer struct{}

// Confirm returns false without error when the user aborts the prompt.
func (HuhConfirmer) Confirm(title string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return ok, nil
}
