package graphql

import "strings"

// Location is a line/column position in the query document.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// ErrorEntry is one member of a response's errors array.
type ErrorEntry struct {
	Message    string                 `json:"message"`
	Path       []interface{}          `json:"path,omitempty"`
	Locations  []Location             `json:"locations,omitempty"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`
}

// Error carries the errors a GraphQL server reported for one operation.
// Callers show Error() verbatim; the entries are not classified further.
type Error struct {
	StatusCode int
	Errors     []ErrorEntry
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, entry := range e.Errors {
		if entry.Message != "" {
			msgs = append(msgs, entry.Message)
		}
	}
	if len(msgs) == 0 {
		return "graphql: unknown error"
	}
	return strings.Join(msgs, "; ")
}
