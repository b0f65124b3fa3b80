// Package app is the interactive phonebook client: a bubbletea program that
// loads all persons, shows a create form above the list, and refetches the
// list after every successful addition.
package app

import (
	"strings"

	"phonebook/cmd/phonebook/ui"
	"phonebook/internal/api"
	"phonebook/internal/logging"
	"phonebook/internal/phonebook"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Model is the page root. It owns the all-persons query and composes the
// create form and the person list.
type Model struct {
	persons api.PersonsAPI
	styles  ui.Styles
	keys    keyMap

	phase      Phase
	list       []phonebook.Person
	err        error
	seq        int // number of the latest issued query
	refreshing bool

	form     Form
	spinner  spinner.Model
	help     help.Model
	helpView *helpPanel
	showHelp bool
	cache    *ui.RenderCache

	width    int
	height   int
	quitting bool
}

// New returns a model in PhaseLoading. Init issues the first query.
func New(persons api.PersonsAPI, styles ui.Styles) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	return Model{
		persons:  persons,
		styles:   styles,
		keys:     defaultKeyMap(),
		phase:    PhaseLoading,
		seq:      1,
		form:     NewForm(persons, styles),
		spinner:  sp,
		help:     help.New(),
		helpView: newHelpPanel(styles.Theme.IsDark),
		cache:    ui.NewRenderCache(16),
	}
}

// Phase returns the page phase.
func (m Model) Phase() Phase { return m.phase }

// Persons returns the list from the last successful query.
func (m Model) Persons() []phonebook.Person { return m.list }

// Form returns the create form.
func (m Model) Form() Form { return m.form }

// Err returns the error shown in PhaseFailed.
func (m Model) Err() error { return m.err }

// Refreshing reports whether a refetch is outstanding behind a rendered list.
func (m Model) Refreshing() bool { return m.refreshing }

// Init issues the all-persons query.
func (m Model) Init() tea.Cmd {
	logging.UI("starting, query %d", m.seq)
	return tea.Batch(fetchPersonsCmd(m.persons, m.seq), m.spinner.Tick)
}

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.form = m.form.SetWidth(ui.ContentWidth(msg.Width))
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		}
		if m.phase != PhaseReady {
			return m, nil
		}
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case personsLoadedMsg:
		if msg.seq < m.seq {
			logging.UIDebug("dropping stale result of query %d (latest %d)", msg.seq, m.seq)
			return m, nil
		}
		m.list = msg.persons
		m.phase = PhaseReady
		m.err = nil
		m.refreshing = false
		logging.UIDebug("phase=%s persons=%d", m.phase, len(m.list))
		return m, nil

	case personsFailedMsg:
		if msg.seq < m.seq {
			logging.UIDebug("dropping stale failure of query %d (latest %d)", msg.seq, m.seq)
			return m, nil
		}
		m.phase = PhaseFailed
		m.err = msg.err
		m.refreshing = false
		logging.UIDebug("phase=%s err=%v", m.phase, msg.err)
		return m, nil

	case personAddedMsg:
		m.form, _ = m.form.Update(msg)
		return m.refetch()

	case addPersonFailedMsg:
		m.form, _ = m.form.Update(msg)
		return m, nil
	}

	return m, nil
}

// refetch re-issues the all-persons query. The current list stays on screen
// until the result arrives.
func (m Model) refetch() (Model, tea.Cmd) {
	m.seq++
	m.refreshing = true
	logging.UIDebug("refetching, query %d", m.seq)
	return m, fetchPersonsCmd(m.persons, m.seq)
}

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.phase {
	case PhaseLoading:
		return m.spinner.View() + " Loading...\n"
	case PhaseFailed:
		return m.styles.Error.Render("Error: "+m.err.Error()) + "\n"
	}

	width := ui.ContentWidth(m.width)

	var sb strings.Builder
	sb.WriteString(m.styles.Header.Render("GraphQL Phonebook"))
	sb.WriteString("\n\n")

	if m.showHelp {
		sb.WriteString(m.helpView.View(width))
		sb.WriteString("\n")
	}

	sb.WriteString(m.form.View())
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.RenderDivider(width))
	sb.WriteString("\n")

	if m.refreshing {
		sb.WriteString(m.styles.Muted.Render(m.spinner.View() + " refreshing"))
		sb.WriteString("\n")
	}

	listKey := personsKey(m.styles, m.list, width)
	sb.WriteString(m.cache.GetOrCompute(listKey, func() string {
		return RenderPersons(m.styles, m.list, width)
	}))
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.Footer.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	sb.WriteString("\n")

	return m.styles.Content.Render(sb.String())
}
