package graph

import (
	"github.com/graph-gophers/graphql-go"

	"eventgraph/models"
)

// ===== Event =====

type EventResolver struct {
	r *Resolver
	e models.Event
}

func (er *EventResolver) ID() graphql.ID         { return graphql.ID(er.e.ID) }
func (er *EventResolver) Title() string          { return er.e.Title }
func (er *EventResolver) Desc() string           { return er.e.Desc }
func (er *EventResolver) Date() string           { return er.e.Date }
func (er *EventResolver) From() string           { return er.e.From }
func (er *EventResolver) To() string             { return er.e.To }
func (er *EventResolver) LocationID() graphql.ID { return graphql.ID(er.e.LocationID) }
func (er *EventResolver) UserID() graphql.ID     { return graphql.ID(er.e.UserID) }

// Users holds at most the one owner.
func (er *EventResolver) Users() []*UserResolver {
	return er.r.users(er.r.Users.UsersByID(er.e.UserID))
}

// Location fails with a not-found error when location_id dangles.
func (er *EventResolver) Location() (*LocationResolver, error) {
	l, err := er.r.Locations.GetByID(er.e.LocationID)
	if err != nil {
		return nil, err
	}
	return &LocationResolver{l}, nil
}

func (er *EventResolver) Participants() *[]*ParticipantResolver {
	out := participants(er.r.Participants.ParticipantsByEvent(er.e.ID))
	return &out
}

// ===== User =====

type UserResolver struct {
	r *Resolver
	u models.User
}

func (ur *UserResolver) ID() graphql.ID   { return graphql.ID(ur.u.ID) }
func (ur *UserResolver) Username() string { return ur.u.Username }
func (ur *UserResolver) Email() string    { return ur.u.Email }

func (ur *UserResolver) Events() *[]*EventResolver {
	out := ur.r.events(ur.r.Events.EventsByUser(ur.u.ID))
	return &out
}

// ===== Location =====

type LocationResolver struct{ l models.Location }

func (lr *LocationResolver) ID() graphql.ID { return graphql.ID(lr.l.ID) }
func (lr *LocationResolver) Name() string   { return lr.l.Name }
func (lr *LocationResolver) Desc() string   { return lr.l.Desc }
func (lr *LocationResolver) Lat() float64   { return lr.l.Lat }
func (lr *LocationResolver) Lng() float64   { return lr.l.Lng }

// ===== Participant =====

type ParticipantResolver struct{ p models.Participant }

func (pr *ParticipantResolver) ID() graphql.ID      { return graphql.ID(pr.p.ID) }
func (pr *ParticipantResolver) UserID() graphql.ID  { return graphql.ID(pr.p.UserID) }
func (pr *ParticipantResolver) EventID() graphql.ID { return graphql.ID(pr.p.EventID) }

// ===== DeleteCountOutput =====

type DeleteCountResolver struct{ n int }

func (dr *DeleteCountResolver) Count() int32 { return int32(dr.n) }

// ===== list helpers =====

func (r *Resolver) events(in []models.Event) []*EventResolver {
	out := make([]*EventResolver, len(in))
	for i := range in {
		out[i] = &EventResolver{r, in[i]}
	}
	return out
}

func (r *Resolver) users(in []models.User) []*UserResolver {
	out := make([]*UserResolver, len(in))
	for i := range in {
		out[i] = &UserResolver{r, in[i]}
	}
	return out
}

func locations(in []models.Location) []*LocationResolver {
	out := make([]*LocationResolver, len(in))
	for i := range in {
		out[i] = &LocationResolver{in[i]}
	}
	return out
}

func participants(in []models.Participant) []*ParticipantResolver {
	out := make([]*ParticipantResolver, len(in))
	for i := range in {
		out[i] = &ParticipantResolver{in[i]}
	}
	return out
}
