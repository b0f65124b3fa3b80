package phonebook

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestToNewPerson_EmptyPhoneIsNull(t *testing.T) {
	d := Draft{Name: "Ada", Phone: "", Street: "Main St", City: "Metropolis"}

	np, err := d.ToNewPerson()
	require.NoError(t, err)
	assert.Nil(t, np.Phone)

	data, err := json.Marshal(np)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ada","phone":null,"street":"Main St","city":"Metropolis"}`, string(data))
}

func TestToNewPerson_KeepsPhone(t *testing.T) {
	d := Draft{Name: "Ada", Phone: "040-123", Street: "Main St", City: "Metropolis"}

	np, err := d.ToNewPerson()
	require.NoError(t, err)
	require.NotNil(t, np.Phone)
	assert.Equal(t, "040-123", *np.Phone)

	// The pointer must not alias the draft.
	d.Phone = "changed"
	assert.Equal(t, "040-123", *np.Phone)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		draft   Draft
		missing []Field
	}{
		{"complete", Draft{Name: "A", Street: "S", City: "C"}, nil},
		{"no name", Draft{Street: "S", City: "C"}, []Field{FieldName}},
		{"only phone", Draft{Phone: "1"}, []Field{FieldName, FieldStreet, FieldCity}},
		{"no city", Draft{Name: "A", Street: "S"}, []Field{FieldCity}},
		{"spaces count as a value", Draft{Name: " ", Street: " ", City: " "}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.draft.Validate()
			if tt.missing == nil {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.missing, verr.Missing)
			assert.ErrorIs(t, err, ErrMissingField)
		})
	}
}

func TestToNewPerson_RejectsMissingName(t *testing.T) {
	_, err := Draft{Street: "Main St", City: "Metropolis"}.ToNewPerson()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Name")
}

func TestHasPhone(t *testing.T) {
	assert.False(t, Person{}.HasPhone())
	assert.False(t, Person{Phone: strPtr("")}.HasPhone())
	assert.True(t, Person{Phone: strPtr("555")}.HasPhone())
	assert.Equal(t, "", Person{}.PhoneOrEmpty())
	assert.Equal(t, "555", Person{Phone: strPtr("555")}.PhoneOrEmpty())
}

func TestDraftGetSet(t *testing.T) {
	var d Draft
	assert.True(t, d.IsEmpty())

	for i, f := range Fields {
		d.Set(f, string(rune('a'+i)))
	}
	assert.Equal(t, Draft{Name: "a", Phone: "b", Street: "c", City: "d"}, d)
	assert.Equal(t, "c", d.Get(FieldStreet))
	assert.False(t, d.IsEmpty())
}

func TestPersonJSON_NullPhone(t *testing.T) {
	var p Person
	err := json.Unmarshal([]byte(`{"id":"1","name":"Arto","phone":null,"address":{"street":"Tapiolankatu","city":"Espoo"}}`), &p)
	require.NoError(t, err)
	assert.Nil(t, p.Phone)
	assert.Equal(t, "Espoo", p.Address.City)
}
