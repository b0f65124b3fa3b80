package devserver

import (
	"context"
	"errors"

	"phonebook/internal/logging"
	"phonebook/internal/phonebook"
	"phonebook/internal/store"

	graphql "github.com/graph-gophers/graphql-go"
)

// inputError is reported to clients with extensions.code = BAD_USER_INPUT.
type inputError struct {
	msg  string
	args map[string]interface{}
}

func (e *inputError) Error() string { return e.msg }

func (e *inputError) Extensions() map[string]interface{} {
	return map[string]interface{}{
		"code":        "BAD_USER_INPUT",
		"invalidArgs": e.args,
	}
}

// resolver is the root Query and Mutation resolver.
type resolver struct {
	store   store.Store
	metrics *metrics
}

func (r *resolver) PersonCount(ctx context.Context) (int32, error) {
	n, err := r.store.Count(ctx)
	return int32(n), err
}

func (r *resolver) AllPersons(ctx context.Context) ([]*personResolver, error) {
	persons, err := r.store.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*personResolver, len(persons))
	for i := range persons {
		out[i] = &personResolver{p: persons[i]}
	}
	return out, nil
}

func (r *resolver) FindPerson(ctx context.Context, args struct{ Name string }) (*personResolver, error) {
	p, err := r.store.FindByName(ctx, args.Name)
	if err != nil || p == nil {
		return nil, err
	}
	return &personResolver{p: *p}, nil
}

type addPersonArgs struct {
	Name   string
	Phone  *string
	Street string
	City   string
}

func (r *resolver) AddPerson(ctx context.Context, args addPersonArgs) (*personResolver, error) {
	draft := phonebook.Draft{Name: args.Name, Street: args.Street, City: args.City}
	if args.Phone != nil {
		draft.Phone = *args.Phone
	}
	np, err := draft.ToNewPerson()
	if err != nil {
		var verr *phonebook.ValidationError
		errors.As(err, &verr)
		invalid := map[string]interface{}{}
		for _, f := range verr.Missing {
			invalid[string(f)] = ""
		}
		return nil, &inputError{msg: err.Error(), args: invalid}
	}

	p, err := r.store.Add(ctx, np)
	if errors.Is(err, store.ErrDuplicateName) {
		logging.ServerWarn("addPerson rejected duplicate name %q", args.Name)
		return nil, &inputError{msg: "Name must be unique", args: map[string]interface{}{"name": args.Name}}
	}
	if err != nil {
		return nil, err
	}

	r.metrics.personsAdded.Inc()
	logging.Server("added person %s", p.ID)
	return &personResolver{p: p}, nil
}

type personResolver struct {
	p phonebook.Person
}

func (r *personResolver) ID() graphql.ID { return graphql.ID(r.p.ID) }
func (r *personResolver) Name() string   { return r.p.Name }

func (r *personResolver) Phone() *string {
	if !r.p.HasPhone() {
		return nil
	}
	v := *r.p.Phone
	return &v
}

func (r *personResolver) Address() *addressResolver {
	return &addressResolver{a: r.p.Address}
}

type addressResolver struct {
	a phonebook.Address
}

func (r *addressResolver) Street() string { return r.a.Street }
func (r *addressResolver) City() string   { return r.a.City }
