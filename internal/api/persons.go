// Package api holds the GraphQL documents the phonebook client sends and the
// PersonsAPI the UI depends on.
package api

import (
	"context"
	"fmt"

	"phonebook/internal/graphql"
	"phonebook/internal/phonebook"
)

const personFields = `
      name
      phone
      address {
        street
        city
      }
      id`

// AllPersonsQuery fetches every person in server order.
const AllPersonsQuery = `query AllPersons {
  allPersons {` + personFields + `
  }
}`

// AddPersonMutation creates one person and returns it.
const AddPersonMutation = `mutation addPerson($name: String!, $phone: String, $street: String!, $city: String!) {
  addPerson(name: $name, phone: $phone, street: $street, city: $city) {` + personFields + `
  }
}`

// PersonsAPI is the remote surface the UI consumes.
type PersonsAPI interface {
	AllPersons(ctx context.Context) ([]phonebook.Person, error)
	AddPerson(ctx context.Context, np phonebook.NewPerson) (phonebook.Person, error)
}

// GraphQLPersons implements PersonsAPI over a GraphQL client.
type GraphQLPersons struct {
	client *graphql.Client
}

// NewGraphQLPersons wraps client.
func NewGraphQLPersons(client *graphql.Client) *GraphQLPersons {
	return &GraphQLPersons{client: client}
}

// AllPersons runs AllPersonsQuery.
func (g *GraphQLPersons) AllPersons(ctx context.Context) ([]phonebook.Person, error) {
	var data struct {
		AllPersons []phonebook.Person `json:"allPersons"`
	}
	err := g.client.Do(ctx, graphql.Request{
		Query:         AllPersonsQuery,
		OperationName: "AllPersons",
	}, &data)
	if err != nil {
		return nil, err
	}
	if data.AllPersons == nil {
		return []phonebook.Person{}, nil
	}
	return data.AllPersons, nil
}

// AddPerson runs AddPersonMutation. A nil phone is sent as null.
func (g *GraphQLPersons) AddPerson(ctx context.Context, np phonebook.NewPerson) (phonebook.Person, error) {
	var data struct {
		AddPerson *phonebook.Person `json:"addPerson"`
	}

	var phone interface{}
	if np.Phone != nil {
		phone = *np.Phone
	}

	err := g.client.Do(ctx, graphql.Request{
		Query:         AddPersonMutation,
		OperationName: "addPerson",
		Variables: map[string]interface{}{
			"name":   np.Name,
			"phone":  phone,
			"street": np.Street,
			"city":   np.City,
		},
	}, &data)
	if err != nil {
		return phonebook.Person{}, err
	}
	if data.AddPerson == nil {
		return phonebook.Person{}, fmt.Errorf("addPerson returned no person")
	}
	return *data.AddPerson, nil
}
