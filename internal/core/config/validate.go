package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hay-kot/criterio"
)

// Validate checks that the configuration is valid. All problems are reported
// together as criterio.FieldErrors.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("data_dir", c.DataDir, validDataDir),
		criterio.Run("picker.tick_interval", c.Picker.TickInterval, positive),
		criterio.Run("picker.cancel_label", c.Picker.CancelLabel, notEmpty),
		c.validateKeys(),
		criterio.Run("plugins.todo.file", c.Plugins.Todo.File, notEmpty),
		criterio.Run("plugins.remind.file", c.Plugins.Remind.File, notEmpty),
	)
}

// validateKeys rejects a key bound to more than one picker action.
func (c *Config) validateKeys() error {
	actions := []struct {
		name string
		keys []string
	}{
		{"up", c.Picker.Keys.Up},
		{"down", c.Picker.Keys.Down},
		{"confirm", c.Picker.Keys.Confirm},
		{"cancel", c.Picker.Keys.Cancel},
	}

	var errs criterio.FieldErrorsBuilder
	owner := make(map[string]string)
	for _, a := range actions {
		for i, k := range a.keys {
			field := fmt.Sprintf("picker.keys.%s[%d]", a.name, i)
			if k == "" {
				errs = errs.Append(field, errors.New("key name is empty"))
				continue
			}
			if prev, ok := owner[k]; ok && prev != a.name {
				errs = errs.Append(field, fmt.Errorf("key %q is already bound to %s", k, prev))
				continue
			}
			owner[k] = a.name
		}
	}
	return errs.ToError()
}

func notEmpty(s string) error {
	if s == "" {
		return errors.New("cannot be empty")
	}
	return nil
}

func positive(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("must be positive, got %s", d)
	}
	return nil
}

// validDataDir validates that a path is set and is a directory or doesn't exist.
func validDataDir(path string) error {
	if path == "" {
		return errors.New("cannot be empty")
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return errors.New("exists but is not a directory")
	}
	return nil
}
