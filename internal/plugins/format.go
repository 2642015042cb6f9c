package plugins

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7aa2f7"))

// Block renders a summary block: the header on its own line followed by one
// indented line per entry.
func Block(header string, lines ...string) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(header))
	for _, l := range lines {
		b.WriteString("\n  ")
		b.WriteString(l)
	}
	return b.String()
}

// ShowError formats a failure inside a plugin's Show as its summary.
func ShowError(plugin string, err error) string {
	return fmt.Sprintf("Error in %s show: %v", plugin, err)
}
