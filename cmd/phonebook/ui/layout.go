package ui

// Layout constants
const (
	ViewportHorizontalPadding = 4
	ContentIndent             = 2

	MinimumTerminalWidth = 40
	DefaultContentWidth  = 76
	MaxContentWidth      = 100
)

// ContentWidth returns the usable width for a terminal of the given width.
// A zero width (no WindowSizeMsg yet) yields DefaultContentWidth.
func ContentWidth(terminalWidth int) int {
	if terminalWidth <= 0 {
		return DefaultContentWidth
	}
	w := terminalWidth - ViewportHorizontalPadding
	if w < MinimumTerminalWidth-ViewportHorizontalPadding {
		w = MinimumTerminalWidth - ViewportHorizontalPadding
	}
	if w > MaxContentWidth {
		w = MaxContentWidth
	}
	return w
}
