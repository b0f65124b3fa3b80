package app

import (
	"errors"
	"strings"

	"phonebook/cmd/phonebook/ui"
	"phonebook/internal/api"
	"phonebook/internal/logging"
	"phonebook/internal/phonebook"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// fieldCount matches len(phonebook.Fields). The inputs live in an array so
// copies of a Form never share input state.
const fieldCount = 4

// submitIndex is the focus position of the submit control.
const submitIndex = fieldCount

const requiredHint = "Please fill out this field."

// Form is the create-person form: four text inputs and a submit control.
type Form struct {
	persons api.PersonsAPI
	styles  ui.Styles
	keys    keyMap

	inputs [fieldCount]textinput.Model
	focus  int
	state  FormState
	err    error
	hint   phonebook.Field // required field flagged by the last submit attempt
	width  int
}

// NewForm returns an idle form with empty fields and focus on Name.
func NewForm(persons api.PersonsAPI, styles ui.Styles) Form {
	f := Form{
		persons: persons,
		styles:  styles,
		keys:    defaultKeyMap(),
		width:   ui.DefaultContentWidth,
	}
	for i, field := range phonebook.Fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 128
		ti.Placeholder = strings.ToLower(field.Label())
		if !field.Required() {
			ti.Placeholder += " (optional)"
		}
		ti.Cursor.SetMode(cursor.CursorStatic)
		f.inputs[i] = ti
	}
	f.setFocus(0)
	f.setWidth(f.width)
	return f
}

// Draft returns the current field values.
func (f Form) Draft() phonebook.Draft {
	var d phonebook.Draft
	for i, field := range phonebook.Fields {
		d.Set(field, f.inputs[i].Value())
	}
	return d
}

// State returns the submission state.
func (f Form) State() FormState { return f.state }

// Err returns the error of the last failed submission, nil after a success.
func (f Form) Err() error { return f.err }

// Hint returns the required field the last submit attempt flagged, or "".
func (f Form) Hint() phonebook.Field { return f.hint }

// SetWidth sizes the inputs for a content area of the given width.
func (f Form) SetWidth(width int) Form {
	f.setWidth(width)
	return f
}

func (f *Form) setWidth(width int) {
	f.width = width
	inputWidth := width - lipgloss.Width(f.styles.Label.Render("")) - 2
	if inputWidth < 10 {
		inputWidth = 10
	}
	for i := range f.inputs {
		f.inputs[i].Width = inputWidth
	}
}

func (f *Form) setFocus(i int) {
	n := fieldCount + 1
	f.focus = ((i % n) + n) % n
	for j := range f.inputs {
		if j == f.focus {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

func (f *Form) clear() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
}

// Submit validates the draft and, if it is complete, returns the command that
// sends the addPerson mutation and clears the previous error. It returns no
// command while a submission is pending or when a required field is empty; a
// blocked submit keeps the previous error.
func (f Form) Submit() (Form, tea.Cmd) {
	if f.state == FormPending {
		logging.UIDebug("submit ignored: previous addPerson still pending")
		return f, nil
	}

	np, err := f.Draft().ToNewPerson()
	if err != nil {
		var verr *phonebook.ValidationError
		if errors.As(err, &verr) && len(verr.Missing) > 0 {
			f.hint = verr.Missing[0]
			for i, field := range phonebook.Fields {
				if field == f.hint {
					f.setFocus(i)
				}
			}
		}
		logging.UIDebug("submit blocked: %v", err)
		return f, nil
	}

	f.hint = ""
	f.err = nil
	f.state = FormPending
	logging.UI("submitting addPerson for %q", np.Name)
	return f, addPersonCmd(f.persons, np)
}

// Update handles key input and the outcome of the form's own mutation.
func (f Form) Update(msg tea.Msg) (Form, tea.Cmd) {
	switch msg := msg.(type) {
	case personAddedMsg:
		f.state = FormIdle
		f.err = nil
		f.hint = ""
		f.clear()
		f.setFocus(0)
		return f, nil

	case addPersonFailedMsg:
		f.state = FormIdle
		f.err = msg.err
		return f, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, f.keys.Submit):
			return f.Submit()
		case key.Matches(msg, f.keys.Next):
			f.setFocus(f.focus + 1)
			return f, nil
		case key.Matches(msg, f.keys.Prev):
			f.setFocus(f.focus - 1)
			return f, nil
		}
	}

	if f.focus == submitIndex {
		return f, nil
	}

	before := f.inputs[f.focus].Value()
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	if f.inputs[f.focus].Value() != before && phonebook.Fields[f.focus] == f.hint {
		f.hint = ""
	}
	return f, cmd
}

// View renders the form.
func (f Form) View() string {
	var sb strings.Builder
	sb.WriteString(f.styles.Title.Render("Add a new person"))
	sb.WriteString("\n")

	if f.err != nil {
		sb.WriteString(f.styles.Error.Render("Error: " + f.err.Error()))
		sb.WriteString("\n")
	}

	for i, field := range phonebook.Fields {
		label := f.styles.Label
		if i == f.focus {
			label = f.styles.FocusedLabel
		}
		sb.WriteString(label.Render(field.Label() + ":"))
		sb.WriteString(" ")
		sb.WriteString(f.inputs[i].View())
		sb.WriteString("\n")
		if field == f.hint {
			sb.WriteString(f.styles.Hint.Render(requiredHint))
			sb.WriteString("\n")
		}
	}

	switch {
	case f.state == FormPending:
		sb.WriteString(f.styles.ButtonBusy.Render("Adding..."))
	case f.focus == submitIndex:
		sb.WriteString(f.styles.ButtonFocus.Render("Add"))
	default:
		sb.WriteString(f.styles.Button.Render("Add"))
	}
	return sb.String()
}
