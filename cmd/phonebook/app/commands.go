package app

import (
	"context"

	"phonebook/internal/api"
	"phonebook/internal/logging"
	"phonebook/internal/phonebook"

	tea "github.com/charmbracelet/bubbletea"
)

// Commands run on bubbletea's goroutines. No cancellation is wired: a result
// that arrives after the program exits is dropped along with the program, and
// the HTTP client timeout bounds each request.

func fetchPersonsCmd(persons api.PersonsAPI, seq int) tea.Cmd {
	return func() tea.Msg {
		timer := logging.StartTimer(logging.CategoryAPI, "AllPersons")
		defer timer.Stop()

		list, err := persons.AllPersons(context.Background())
		if err != nil {
			logging.APIError("query %d failed: %v", seq, err)
			return personsFailedMsg{seq: seq, err: err}
		}
		logging.APIDebug("query %d returned %d persons", seq, len(list))
		return personsLoadedMsg{seq: seq, persons: list}
	}
}

func addPersonCmd(persons api.PersonsAPI, np phonebook.NewPerson) tea.Cmd {
	return func() tea.Msg {
		timer := logging.StartTimer(logging.CategoryAPI, "addPerson")
		defer timer.Stop()

		p, err := persons.AddPerson(context.Background(), np)
		if err != nil {
			logging.APIError("addPerson failed: %v", err)
			return addPersonFailedMsg{err: err}
		}
		logging.API("added person %s", p.ID)
		return personAddedMsg{person: p}
	}
}
