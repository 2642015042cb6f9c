package picker

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	ansiClearDown = "\033[J"
	cursorMark    = "> "
	noMark        = "  "
	lineBreak     = "\r\n" // raw mode does not translate \n
	ellipsis      = "…"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7aa2f7"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7dcfff"))
	itemStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#c0caf5"))
	cancelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89"))
)

// Renderer redraws the picker in place on a terminal.
type Renderer struct {
	out   io.Writer
	title string
	keys  KeyMap
	help  help.Model
	width int // 0 means unknown, lines are not clipped
	lines int // height of the last frame
}

// NewRenderer returns a Renderer writing frames to out. Lines are clipped to
// width columns so every line of a frame takes exactly one terminal row.
func NewRenderer(out io.Writer, title string, keys KeyMap, width int) *Renderer {
	h := help.New()
	h.Width = width

	return &Renderer{
		out:   out,
		title: title,
		keys:  keys,
		help:  h,
		width: width,
	}
}

// Frame renders s without touching the terminal.
func (r *Renderer) Frame(s *State) []string {
	lines := make([]string, 0, s.Len()+2)
	if r.title != "" {
		lines = append(lines, titleStyle.Render(r.title))
	}

	for i, label := range s.Items() {
		switch {
		case i == s.Cursor():
			lines = append(lines, selectedStyle.Render(cursorMark+label))
		case s.IsCancel(i):
			lines = append(lines, cancelStyle.Render(noMark+label))
		default:
			lines = append(lines, itemStyle.Render(noMark+label))
		}
	}

	lines = append(lines, r.help.View(r.keys))

	if r.width > 0 {
		for i, l := range lines {
			lines[i] = ansi.Truncate(l, r.width, ellipsis)
		}
	}
	return lines
}

// Render replaces the previous frame with the frame for s.
func (r *Renderer) Render(s *State) error {
	if err := r.Clear(); err != nil {
		return err
	}

	lines := r.Frame(s)
	if _, err := io.WriteString(r.out, strings.Join(lines, lineBreak)+lineBreak); err != nil {
		return err
	}
	r.lines = len(lines)
	return nil
}

// Clear erases the last frame, if any.
func (r *Renderer) Clear() error {
	if r.lines == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(r.out, "\033[%dA%s", r.lines, ansiClearDown); err != nil {
		return err
	}
	r.lines = 0
	return nil
}
