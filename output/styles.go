// Package output renders summarize results for terminals, JSON consumers
// and spreadsheets.
package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Symbols prefixed to status lines.
const (
	SuccessSymbol = "✓"
	ErrorSymbol   = "✗"
	InfoSymbol    = "→"
)

// Styles provides styled output helpers for the CLI.
type Styles struct {
	success lipgloss.Style
	err     lipgloss.Style
	info    lipgloss.Style
	path    lipgloss.Style
	header  lipgloss.Style
	dim     lipgloss.Style
	warning lipgloss.Style
}

// NewStyles creates the default style set.
func NewStyles() *Styles {
	return &Styles{
		success: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00D787", Dark: "#00D787"}),
		err:     lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"}),
		info:    lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#5FAFFF", Dark: "#5FAFFF"}),
		path:    lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00D7D7", Dark: "#00D7D7"}),
		header:  lipgloss.NewStyle().Bold(true),
		dim:     lipgloss.NewStyle().Faint(true),
		warning: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D7AF00", Dark: "#FFD700"}),
	}
}

// Success returns a styled success string.
func (s *Styles) Success(text string) string { return s.success.Render(text) }

// Error returns a styled error string.
func (s *Styles) Error(text string) string { return s.err.Render(text) }

// Info returns a styled informational string.
func (s *Styles) Info(text string) string { return s.info.Render(text) }

// Path returns a styled file path.
func (s *Styles) Path(text string) string { return s.path.Render(text) }

// Header returns a styled section header.
func (s *Styles) Header(text string) string { return s.header.Render(text) }

// Dim returns dimmed text for secondary information.
func (s *Styles) Dim(text string) string { return s.dim.Render(text) }

// Warning returns a styled warning string.
func (s *Styles) Warning(text string) string { return s.warning.Render(text) }
