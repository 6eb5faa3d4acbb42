// Package theme holds the light and dark palettes used to render quizzes
// in the terminal.
package theme

import (
	"fmt"
	"image/color"
	"sort"

	"charm.land/lipgloss/v2"
)

// Palette is the set of colors a Theme is built from.
type Palette struct {
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	Border    color.Color
}

// Dark suits terminals with a dark background.
var Dark = Palette{
	Primary:   lipgloss.Color("#8B5CF6"), // Vivid Purple
	Secondary: lipgloss.Color("#14B8A6"), // Teal
	Accent:    lipgloss.Color("#F97316"), // Orange
	Success:   lipgloss.Color("#22C55E"), // Green
	Error:     lipgloss.Color("#F43F5E"), // Rose
	Text:      lipgloss.Color("#F8FAFC"), // White
	TextDim:   lipgloss.Color("#94A3B8"), // Slate
	Border:    lipgloss.Color("#334155"), // Slate
}

// Light suits terminals with a light background.
var Light = Palette{
	Primary:   lipgloss.Color("#6D28D9"), // Deep Purple
	Secondary: lipgloss.Color("#0F766E"), // Dark Teal
	Accent:    lipgloss.Color("#C2410C"), // Burnt Orange
	Success:   lipgloss.Color("#15803D"), // Green
	Error:     lipgloss.Color("#BE123C"), // Rose
	Text:      lipgloss.Color("#0F172A"), // Navy
	TextDim:   lipgloss.Color("#64748B"), // Slate
	Border:    lipgloss.Color("#CBD5E1"), // Light Slate
}

// Default is the theme name used when none is configured.
const Default = "dark"

var palettes = map[string]Palette{
	"dark":  Dark,
	"light": Light,
}

// Names returns the known theme names, sorted.
func Names() []string {
	names := make([]string, 0, len(palettes))
	for n := range palettes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Theme is a set of styles derived from a Palette.
type Theme struct {
	Name    string
	Palette Palette

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Hint     lipgloss.Style
	Card     lipgloss.Style

	Selected  lipgloss.Style
	Correct   lipgloss.Style
	Incorrect lipgloss.Style

	ProgressFilled lipgloss.Style
	ProgressEmpty  lipgloss.Style
}

// New builds the styles for p.
func New(name string, p Palette) Theme {
	return Theme{
		Name:    name,
		Palette: p,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),

		Subtitle: lipgloss.NewStyle().
			Foreground(p.TextDim),

		Body: lipgloss.NewStyle().
			Foreground(p.Text),

		Hint: lipgloss.NewStyle().
			Foreground(p.TextDim).
			Italic(true),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),

		Selected: lipgloss.NewStyle().
			Foreground(p.Primary).
			Bold(true),

		Correct: lipgloss.NewStyle().
			Foreground(p.Success).
			Bold(true),

		Incorrect: lipgloss.NewStyle().
			Foreground(p.Error).
			Bold(true),

		ProgressFilled: lipgloss.NewStyle().
			Background(p.Secondary),

		ProgressEmpty: lipgloss.NewStyle().
			Background(p.Border),
	}
}

// Lookup returns the theme called name. An empty name selects Default.
func Lookup(name string) (Theme, error) {
	if name == "" {
		name = Default
	}
	p, ok := palettes[name]
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme %q (want one of %v)", name, Names())
	}
	return New(name, p), nil
}
