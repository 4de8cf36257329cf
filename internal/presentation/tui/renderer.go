package tui

import (
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// The style follows the terminal background.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)
	if err != nil {
		return PlainRenderer
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// PlainRenderer returns markdown untouched, for pipes and files.
func PlainRenderer(markdown string) (string, error) {
	return markdown, nil
}
