package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"
)

const descriptionWidth = 60

// Describe writes a styled listing of the registered commands to w: one name column
// and the wrapped description next to it.
func (a *App) Describe(w io.Writer) error {
	r := lipgloss.NewRenderer(w, termenv.WithProfile(a.profile))
	titleStyle := r.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("#7D56F4"))
	keyStyle := r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFCC00"))
	descStyle := r.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))

	commands := a.Registry.List()
	if len(commands) == 0 {
		_, err := fmt.Fprintln(w, "no commands registered")
		return err
	}

	nameWidth := 0
	for _, cmd := range commands {
		nameWidth = max(nameWidth, runewidth.StringWidth(cmd.Name()))
	}
	nameWidth += 2

	lines := []string{titleStyle.Render("Commands"), ""}
	for _, cmd := range commands {
		desc := strings.Split(wordwrap.String(cmd.Description(), descriptionWidth), "\n")
		line := keyStyle.Render(runewidth.FillRight(cmd.Name(), nameWidth)) + descStyle.Render(desc[0])
		if len(desc) > 1 {
			rest := indent.String(strings.Join(desc[1:], "\n"), uint(nameWidth))
			line += "\n" + descStyle.Render(rest)
		}
		lines = append(lines, line)
	}

	_, err := fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left, lines...))
	return err
}
