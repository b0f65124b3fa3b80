// Package ui provides the visual styling for the phonebook terminal client.
// Light and dark palettes share the same semantic colors.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	LightBackground = lipgloss.Color("#f7f7f5")
	LightForeground = lipgloss.Color("#1f2933")
	LightPrimary    = lipgloss.Color("#1d4e89")
	LightAccent     = lipgloss.Color("#e07a1f")
	LightMuted      = lipgloss.Color("#8a939e")
	LightBorder     = lipgloss.Color("#d3d8de")
	LightCard       = lipgloss.Color("#ffffff")

	DarkBackground = lipgloss.Color("#161b22")
	DarkForeground = lipgloss.Color("#e6e8eb")
	DarkPrimary    = lipgloss.Color("#6cb6ff")
	DarkAccent     = lipgloss.Color("#f0a35e")
	DarkMuted      = lipgloss.Color("#6e7781")
	DarkBorder     = lipgloss.Color("#30363d")
	DarkCard       = lipgloss.Color("#1c2128")

	// Semantic colors (same in both modes)
	Destructive = lipgloss.Color("#e5534b")
	Warning     = lipgloss.Color("#c69026")
)

// Theme holds the current color scheme
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
		Border:     LightBorder,
		Card:       LightCard,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Card:       DarkCard,
		IsDark:     true,
	}
}

// DetectTheme resolves a configured preference ("light", "dark" or "auto").
// For "auto" it consults PHONEBOOK_DARK_MODE and then COLORFGBG, falling back
// to light.
func DetectTheme(pref string) Theme {
	switch strings.ToLower(pref) {
	case "light":
		return LightTheme()
	case "dark":
		return DarkTheme()
	}

	if os.Getenv("PHONEBOOK_DARK_MODE") == "1" {
		return DarkTheme()
	}

	// COLORFGBG is "fg;bg"; background indexes 0-6 and 8 are dark.
	if parts := strings.Split(os.Getenv("COLORFGBG"), ";"); len(parts) >= 2 {
		if bg, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
			if (bg >= 0 && bg <= 6) || bg == 8 {
				return DarkTheme()
			}
		}
	}

	return LightTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Layout
	Header  lipgloss.Style
	Footer  lipgloss.Style
	Content lipgloss.Style

	// Text
	Title lipgloss.Style
	Muted lipgloss.Style

	// Form
	Label        lipgloss.Style
	FocusedLabel lipgloss.Style
	Hint         lipgloss.Style
	Button       lipgloss.Style
	ButtonFocus  lipgloss.Style
	ButtonBusy   lipgloss.Style

	// Person list
	Card      lipgloss.Style
	CardName  lipgloss.Style
	CardField lipgloss.Style

	// Status
	Error lipgloss.Style

	// Components
	Spinner lipgloss.Style
	Divider lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		Content: lipgloss.NewStyle().
			Padding(1, 2),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Label: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Width(8),

		FocusedLabel: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true).
			Width(8),

		Hint: lipgloss.NewStyle().
			Foreground(Warning).
			PaddingLeft(9),

		Button: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 2),

		ButtonFocus: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Accent).
			Padding(0, 2),

		ButtonBusy: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Muted).
			Padding(0, 2),

		Card: lipgloss.NewStyle().
			PaddingLeft(1).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(theme.Primary),

		CardName: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		CardField: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),
	}
}

// RenderDivider returns a horizontal divider of the given width.
func (s Styles) RenderDivider(width int) string {
	if width <= 0 {
		return ""
	}
	return s.Divider.Render(strings.Repeat("─", width))
}
