package graph

import (
	"context"

	"github.com/graph-gophers/graphql-go"

	"eventgraph/models"
)

type queryResolver struct{ r *Resolver }

type idArgs struct{ ID graphql.ID }

// ===== Events =====

func (q *queryResolver) Events() *[]*EventResolver {
	out := q.r.events(q.r.Events.GetAll())
	return &out
}

// Event is nullable: the read-only surface answers a miss with null, the
// mutable one reports it.
func (q *queryResolver) Event(ctx context.Context, args idArgs) (*EventResolver, error) {
	e, err := q.r.Events.GetByID(models.ParseID(string(args.ID)))
	if err != nil {
		if models.IsNotFound(err) && q.r.Version == VersionV1 {
			return nil, nil
		}
		return nil, err
	}
	return &EventResolver{q.r, e}, nil
}

// ===== Locations =====

func (q *queryResolver) Locations() *[]*LocationResolver {
	out := locations(q.r.Locations.GetAll())
	return &out
}

func (q *queryResolver) Location(ctx context.Context, args idArgs) (*LocationResolver, error) {
	l, err := q.r.Locations.GetByID(models.ParseID(string(args.ID)))
	if err != nil {
		return nil, err
	}
	return &LocationResolver{l}, nil
}

// ===== Users =====

func (q *queryResolver) Users() *[]*UserResolver {
	out := q.r.users(q.r.Users.GetAll())
	return &out
}

func (q *queryResolver) User(ctx context.Context, args idArgs) (*UserResolver, error) {
	u, err := q.r.Users.GetByID(models.ParseID(string(args.ID)))
	if err != nil {
		return nil, err
	}
	return &UserResolver{q.r, u}, nil
}

// ===== Participants =====

func (q *queryResolver) Participants() *[]*ParticipantResolver {
	out := participants(q.r.Participants.GetAll())
	return &out
}

func (q *queryResolver) Participant(ctx context.Context, args idArgs) (*ParticipantResolver, error) {
	p, err := q.r.Participants.GetByID(models.ParseID(string(args.ID)))
	if err != nil {
		return nil, err
	}
	return &ParticipantResolver{p}, nil
}
