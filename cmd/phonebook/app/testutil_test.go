package app

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"phonebook/cmd/phonebook/ui"
	"phonebook/internal/phonebook"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// fakeAPI is an in-memory PersonsAPI that records every call.
type fakeAPI struct {
	mu       sync.Mutex
	persons  []phonebook.Person
	allCalls int
	added    []phonebook.NewPerson
	allErr   error
	addErr   error
}

func (f *fakeAPI) AllPersons(ctx context.Context) ([]phonebook.Person, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.allCalls++
	if f.allErr != nil {
		return nil, f.allErr
	}
	out := make([]phonebook.Person, len(f.persons))
	copy(out, f.persons)
	return out, nil
}

func (f *fakeAPI) AddPerson(ctx context.Context, np phonebook.NewPerson) (phonebook.Person, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.added = append(f.added, np)
	if f.addErr != nil {
		return phonebook.Person{}, f.addErr
	}
	p := phonebook.Person{
		ID:      fmt.Sprintf("id-%d", len(f.persons)+1),
		Name:    np.Name,
		Phone:   np.Phone,
		Address: phonebook.Address{Street: np.Street, City: np.City},
	}
	f.persons = append(f.persons, p)
	return p, nil
}

func (f *fakeAPI) calls() (all, add int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.allCalls, len(f.added)
}

func strPtr(s string) *string { return &s }

func seedPersons() []phonebook.Person {
	return []phonebook.Person{
		{ID: "1", Name: "Arto Hellas", Phone: strPtr("040-123543"), Address: phonebook.Address{Street: "Tapiolankatu 5 A", City: "Espoo"}},
		{ID: "2", Name: "Matti Luukkainen", Phone: strPtr("040-432342"), Address: phonebook.Address{Street: "Malminkaari 10 A", City: "Helsinki"}},
		{ID: "3", Name: "Venla Ruuskanen", Address: phonebook.Address{Street: "Nallemäentie 22 C", City: "Helsinki"}},
	}
}

func testStyles() ui.Styles {
	return ui.NewStyles(ui.LightTheme())
}

// collect runs cmd and returns the messages it produces, flattening batches.
// Spinner ticks are dropped so tests never wait on the animation.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case nil:
		return nil
	case spinner.TickMsg:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, collect(c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

// drive feeds the messages of cmd back into m until no work remains.
func drive(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	msgs := collect(cmd)
	for round := 0; len(msgs) > 0; round++ {
		if round > 20 {
			t.Fatalf("command chain did not settle")
		}
		var next []tea.Msg
		for _, msg := range msgs {
			updated, c := m.Update(msg)
			m = updated.(Model)
			next = append(next, collect(c)...)
		}
		msgs = next
	}
	return m
}

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func typeText(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// fill types the draft into the form field by field, leaving focus on the
// submit control.
func fill(m Model, d phonebook.Draft) Model {
	for _, field := range phonebook.Fields {
		if v := d.Get(field); v != "" {
			m, _ = send(m, typeText(v))
		}
		m, _ = send(m, tea.KeyMsg{Type: tea.KeyTab})
	}
	return m
}

// readyModel returns a model that finished its initial load against api.
func readyModel(t *testing.T, api *fakeAPI) Model {
	t.Helper()
	m := New(api, testStyles())
	m = drive(t, m, m.Init())
	if m.Phase() != PhaseReady {
		t.Fatalf("expected ready phase, got %s", m.Phase())
	}
	return m
}
