package app

import (
	"phonebook/internal/phonebook"
)

// =============================================================================
// PAGE PHASES
// =============================================================================

// Phase is the lifecycle of the all-persons query that owns the page.
type Phase int

const (
	PhaseLoading Phase = iota // first query outstanding, nothing to show yet
	PhaseReady                // at least one successful result
	PhaseFailed               // the latest query failed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	}
	return "unknown"
}

// FormState is the state of the create form's current submission.
type FormState int

const (
	FormIdle FormState = iota
	FormPending
)

func (s FormState) String() string {
	if s == FormPending {
		return "pending"
	}
	return "idle"
}

// =============================================================================
// MESSAGES
// =============================================================================

// personsLoadedMsg carries the result of query number seq.
type personsLoadedMsg struct {
	seq     int
	persons []phonebook.Person
}

// personsFailedMsg reports that query number seq failed.
type personsFailedMsg struct {
	seq int
	err error
}

// personAddedMsg is sent once the server confirmed the addPerson mutation.
type personAddedMsg struct {
	person phonebook.Person
}

// addPersonFailedMsg reports a rejected or failed addPerson mutation.
type addPersonFailedMsg struct {
	err error
}
