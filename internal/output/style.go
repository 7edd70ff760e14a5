package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Styles groups the lipgloss styles used by console output
type Styles struct {
	Command lipgloss.Style
	Success lipgloss.Style
	Warn    lipgloss.Style
	Error   lipgloss.Style
	URL     lipgloss.Style
	Label   lipgloss.Style
}

// NewStyles returns the default console styles
func NewStyles() Styles {
	return Styles{
		Command: lipgloss.NewStyle().Faint(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		URL:     lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Underline(true),
		Label:   lipgloss.NewStyle().Bold(true),
	}
}

// IsTTY returns true if both stdin and stdout are terminals
func IsTTY() bool {
	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ColorEnabled reports whether ANSI styling should be emitted
func ColorEnabled() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return isTerminal(os.Stdout)
}

// ConfigureColor disables styling when output is piped or NO_COLOR is set
func ConfigureColor() {
	if !ColorEnabled() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}
