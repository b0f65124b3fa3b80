package app

import (
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

const helpMarkdown = `## Phonebook

The list below the form always shows what the server returned for the last
successful query. After a person is added the list is fetched again.

| Key | Action |
|-----|--------|
| tab, down | next field |
| shift+tab, up | previous field |
| enter | add the person |
| f1 | toggle this help |
| esc, ctrl+c | quit |

*Name*, *Street* and *City* are required. Leave *Phone* empty to store no number.
`

// helpPanel renders helpMarkdown with glamour, once per width.
type helpPanel struct {
	dark     bool
	width    int
	rendered string
}

func newHelpPanel(dark bool) *helpPanel {
	return &helpPanel{dark: dark}
}

func (h *helpPanel) View(width int) string {
	if h.rendered != "" && h.width == width {
		return h.rendered
	}

	style := styles.LightStyle
	if h.dark {
		style = styles.DarkStyle
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	h.width = width
	h.rendered = out
	return out
}
