// Package phonebook holds the person records shown by the client and the
// draft-to-mutation rules the create form applies before writing.
package phonebook

import (
	"errors"
	"fmt"
	"strings"
)

// Person is one phonebook entry as returned by the server.
type Person struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Phone   *string `json:"phone"`
	Address Address `json:"address"`
}

// Address is embedded in Person; it has no identity of its own.
type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
}

// HasPhone reports whether the person has a non-empty phone number.
func (p Person) HasPhone() bool {
	return p.Phone != nil && *p.Phone != ""
}

// PhoneOrEmpty returns the phone number, or "" when absent.
func (p Person) PhoneOrEmpty() string {
	if p.Phone == nil {
		return ""
	}
	return *p.Phone
}

// Field names a draft field.
type Field string

const (
	FieldName   Field = "name"
	FieldPhone  Field = "phone"
	FieldStreet Field = "street"
	FieldCity   Field = "city"
)

// Fields lists the draft fields in form order.
var Fields = []Field{FieldName, FieldPhone, FieldStreet, FieldCity}

// Required reports whether a field must be non-empty before submission.
func (f Field) Required() bool {
	return f != FieldPhone
}

// Label is the display label for a field.
func (f Field) Label() string {
	switch f {
	case FieldName:
		return "Name"
	case FieldPhone:
		return "Phone"
	case FieldStreet:
		return "Street"
	case FieldCity:
		return "City"
	}
	return string(f)
}

// Draft is the unsaved form state: four plain strings.
type Draft struct {
	Name   string
	Phone  string
	Street string
	City   string
}

// Get returns the value of a field.
func (d Draft) Get(f Field) string {
	switch f {
	case FieldName:
		return d.Name
	case FieldPhone:
		return d.Phone
	case FieldStreet:
		return d.Street
	case FieldCity:
		return d.City
	}
	return ""
}

// Set assigns the value of a field.
func (d *Draft) Set(f Field, v string) {
	switch f {
	case FieldName:
		d.Name = v
	case FieldPhone:
		d.Phone = v
	case FieldStreet:
		d.Street = v
	case FieldCity:
		d.City = v
	}
}

// IsEmpty reports whether every field is the empty string.
func (d Draft) IsEmpty() bool {
	return d == Draft{}
}

// ErrMissingField is matched by every ValidationError.
var ErrMissingField = errors.New("required field is empty")

// ValidationError lists the required fields a draft left empty, in form order.
type ValidationError struct {
	Missing []Field
}

func (e *ValidationError) Error() string {
	labels := make([]string, len(e.Missing))
	for i, f := range e.Missing {
		labels[i] = f.Label()
	}
	return fmt.Sprintf("missing required fields: %s", strings.Join(labels, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrMissingField }

// Validate checks the required fields. Only the empty string fails, a value
// of spaces is accepted just like an HTML required input would.
func (d Draft) Validate() error {
	var missing []Field
	for _, f := range Fields {
		if f.Required() && d.Get(f) == "" {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// NewPerson is the argument set of the addPerson mutation.
type NewPerson struct {
	Name   string  `json:"name"`
	Phone  *string `json:"phone"`
	Street string  `json:"street"`
	City   string  `json:"city"`
}

// ToNewPerson validates the draft and converts it to mutation arguments.
// An empty phone becomes nil so it is sent as null, never as "".
func (d Draft) ToNewPerson() (NewPerson, error) {
	if err := d.Validate(); err != nil {
		return NewPerson{}, err
	}
	np := NewPerson{Name: d.Name, Street: d.Street, City: d.City}
	if d.Phone != "" {
		phone := d.Phone
		np.Phone = &phone
	}
	return np, nil
}
