package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a Config with all required fields set for testing.
func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	return &cfg
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := validConfig(t)
	cfg.Picker.Keys.Down = []string{"down", "j"}

	assert.NoError(t, cfg.Validate())
}

func TestValidate_FieldErrors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(t *testing.T, c *Config)
		wantField string
		wantErr   string
	}{
		{
			name:      "empty data dir",
			mutate:    func(_ *testing.T, c *Config) { c.DataDir = "" },
			wantField: "data_dir",
			wantErr:   "cannot be empty",
		},
		{
			name: "data dir is a file",
			mutate: func(t *testing.T, c *Config) {
				path := filepath.Join(t.TempDir(), "file")
				require.NoError(t, os.WriteFile(path, nil, 0o644))
				c.DataDir = path
			},
			wantField: "data_dir",
			wantErr:   "not a directory",
		},
		{
			name:      "zero tick",
			mutate:    func(_ *testing.T, c *Config) { c.Picker.TickInterval = 0 },
			wantField: "picker.tick_interval",
			wantErr:   "must be positive",
		},
		{
			name:      "empty cancel label",
			mutate:    func(_ *testing.T, c *Config) { c.Picker.CancelLabel = "" },
			wantField: "picker.cancel_label",
			wantErr:   "cannot be empty",
		},
		{
			name:      "key bound twice",
			mutate:    func(_ *testing.T, c *Config) { c.Picker.Keys.Confirm = []string{"enter", "down"} },
			wantField: "picker.keys.confirm[1]",
			wantErr:   `"down" is already bound to down`,
		},
		{
			name:      "empty key name",
			mutate:    func(_ *testing.T, c *Config) { c.Picker.Keys.Cancel = []string{""} },
			wantField: "picker.keys.cancel[0]",
			wantErr:   "key name is empty",
		},
		{
			name:      "empty plugin file",
			mutate:    func(_ *testing.T, c *Config) { c.Plugins.Remind.File = "" },
			wantField: "plugins.remind.file",
			wantErr:   "cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(t, cfg)

			err := cfg.Validate()

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			require.Len(t, fieldErrs, 1)
			assert.Equal(t, tt.wantField, fieldErrs[0].Field)
			assert.Contains(t, fieldErrs[0].Err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg := validConfig(t)
	cfg.Picker.TickInterval = -1
	cfg.Picker.CancelLabel = ""
	cfg.Plugins.Todo.File = ""

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, cfg.Validate(), &fieldErrs)
	assert.Len(t, fieldErrs, 3)
}
