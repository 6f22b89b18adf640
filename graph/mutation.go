package graph

import (
	"context"

	"github.com/graph-gophers/graphql-go"
	"go.uber.org/zap"

	"eventgraph/models"
)

type mutationResolver struct{ r *Resolver }

// changed purges cached query responses and logs the mutation.
func (m *mutationResolver) changed(ctx context.Context, op string, id models.ID) {
	m.r.Invalidator.PurgeQueries(ctx)
	m.r.logger().Info("mutation applied", zap.String("op", op), zap.String("id", string(id)))
}

func optionalID(id *graphql.ID) *models.ID {
	if id == nil {
		return nil
	}
	v := models.ParseID(string(*id))
	return &v
}

// ===== Users =====

type addUserInput struct {
	Username string
	Email    string
}

type updateUserInput struct {
	Username *string
	Email    *string
}

func (m *mutationResolver) AddUser(ctx context.Context, args struct{ Data addUserInput }) (*UserResolver, error) {
	u, err := m.r.Users.Create(models.User{Username: args.Data.Username, Email: args.Data.Email})
	if err != nil {
		return nil, err
	}
	m.changed(ctx, "addUser", u.ID)
	return &UserResolver{m.r, u}, nil
}

func (m *mutationResolver) UpdateUser(ctx context.Context, args struct {
	ID   graphql.ID
	Data updateUserInput
}) (*UserResolver, error) {
	u, err := m.r.Users.Update(models.ParseID(string(args.ID)), models.UserPatch{
		Username: args.Data.Username,
		Email:    args.Data.Email,
	})
	if err != nil {
		return nil, err
	}
	m.changed(ctx, "updateUser", u.ID)
	return &UserResolver{m.r, u}, nil
}

func (m *mutationResolver) DeleteUser(ctx context.Context, args idArgs) (*UserResolver, error) {
	u, err := m.r.Users.Delete(models.ParseID(string(args.ID)))
	if err != nil {
		return nil, err
	}
	m.changed(ctx, "deleteUser", u.ID)
	return &UserResolver{m.r, u}, nil
}

func (m *mutationResolver) DeleteAllUsers(ctx context.Context) *DeleteCountResolver {
	n := m.r.Users.DeleteAll()
	m.changed(ctx, "deleteAllUsers", "")
	return &DeleteCountResolver{n}
}

// ===== Events =====

type addEventInput struct {
	Title      string
	Desc       string
	Date       string
	From       string
	To         string
	LocationID graphql.ID
	UserID     graphql.ID
}

type updateEventInput struct {
	Title      *string
	Desc       *string
	Date       *string
	From       *string
	To         *string
	LocationID *graphql.ID
	UserID     *graphql.ID
}

func (m *mutationResolver) AddEvent(ctx context.Context, args struct{ Data addEventInput }) (*EventResolver, error) {
	d := args.Data
	e, err := m.r.Events.Create(models.Event{
		Title:      d.Title,
		Desc:       d.Desc,
		Date:       d.Date,
		From:       d.From,
		To:         d.To,
		LocationID: models.ID(d.LocationID),
		UserID:     models.ID(d.UserID),
	})
	if err != nil {
		return nil, err
	}
	m.changed(ctx, "addEvent", e.ID)
	return &EventResolver{m.r, e}, nil
}

func (m *mutationResolver) UpdateEvent(ctx context.Context, args struct {
	ID   graphql.ID
	Data updateEventInput
}) (*EventResolver, error) {
	d := args.Data
	e, err := m.r.Events.Update(models.ParseID(string(args.ID)), models.EventPatch{
		Title:      d.Title,
		Desc:       d.Desc,
		Date:       d.Date,
		From:       d.From,
		To:         d.To,
		LocationID: optionalID(d.LocationID),
		UserID:     optionalID(d.UserID),
	})
	if err != nil {
		return nil, err
	}
	m.changed(ctx, "updateEvent", e.ID)
	return &EventResolver{m.r, e}, nil
}

func (m *mutationResolver) DeleteEvent(ctx context.Context, args idArgs) (*EventResolver, error) {
	e, err := m.r.Events.Delete(models.ParseID(string(args.ID)))
	if err != nil {
		return nil, err
	}
	m.changed(ctx, "deleteEvent", e.ID)
	return &EventResolver{m.r, e}, nil
}

func (m *mutationResolver) DeleteAllEvents(ctx context.Context) *DeleteCountResolver {
	n := m.r.Events.DeleteAll()
	m.changed(ctx, "deleteAllEvents", "")
	return &DeleteCountResolver{n}
}

// ===== Locations =====

type addLocationInput struct {
	Name string
	Desc string
	Lat  float64
	Lng  float64
}

type updateLocationInput struct {
	Name *string
	Desc *string
	Lat  *float64
	Lng  *float64
}

func (m *mutationResolver) AddLocation(ctx context.Context, args struct{ Data addLocationInput }) (*LocationResolver, error) {
	d := args.Data
	l, err := m.r.Locations.Create(models.Location{Name: d.Name, Desc: d.Desc, Lat: d.Lat, Lng: d.Lng})
	if err != nil {
		return nil, err
	}
	m.changed(ctx, "addLocation", l.ID)
	return &LocationResolver{l}, nil
}

func (m *mutationResolver) UpdateLocation(ctx context.Context, args struct {
	ID   graphql.ID
	Data updateLocationInput
}) (*LocationResolver, error) {
	d := args.Data
	l, err := m.r.Locations.Update(models.ParseID(string(args.ID)), models.LocationPatch{
		Name: d.Name,
		Desc: d.Desc,
		Lat:  d.Lat,
		Lng:  d.Lng,
	})
	if err != nil {
		return nil, err
	}
	m.changed(ctx, "updateLocation", l.ID)
	return &LocationResolver{l}, nil
}

func (m *mutationResolver) DeleteLocation(ctx context.Context, args idArgs) (*LocationResolver, error) {
	l, err := m.r.Locations.Delete(models.ParseID(string(args.ID)))
	if err != nil {
		return nil, err
	}
	m.changed(ctx, "deleteLocation", l.ID)
	return &LocationResolver{l}, nil
}

func (m *mutationResolver) DeleteAllLocations(ctx context.Context) *DeleteCountResolver {
	n := m.r.Locations.DeleteAll()
	m.changed(ctx, "deleteAllLocations", "")
	return &DeleteCountResolver{n}
}

// ===== Participants =====

type addParticipantInput struct {
	UserID  graphql.ID
	EventID graphql.ID
}

type updateParticipantInput struct {
	UserID  *graphql.ID
	EventID *graphql.ID
}

func (m *mutationResolver) AddParticipant(ctx context.Context, args struct{ Data addParticipantInput }) (*ParticipantResolver, error) {
	p, err := m.r.Participants.Create(models.Participant{
		UserID:  models.ID(args.Data.UserID),
		EventID: models.ID(args.Data.EventID),
	})
	if err != nil {
		return nil, err
	}
	m.changed(ctx, "addParticipant", p.ID)
	return &ParticipantResolver{p}, nil
}

func (m *mutationResolver) UpdateParticipant(ctx context.Context, args struct {
	ID   graphql.ID
	Data updateParticipantInput
}) (*ParticipantResolver, error) {
	p, err := m.r.Participants.Update(models.ParseID(string(args.ID)), models.ParticipantPatch{
		UserID:  optionalID(args.Data.UserID),
		EventID: optionalID(args.Data.EventID),
	})
	if err != nil {
		return nil, err
	}
	m.changed(ctx, "updateParticipant", p.ID)
	return &ParticipantResolver{p}, nil
}

func (m *mutationResolver) DeleteParticipant(ctx context.Context, args idArgs) (*ParticipantResolver, error) {
	p, err := m.r.Participants.Delete(models.ParseID(string(args.ID)))
	if err != nil {
		return nil, err
	}
	m.changed(ctx, "deleteParticipant", p.ID)
	return &ParticipantResolver{p}, nil
}

func (m *mutationResolver) DeleteAllParticipants(ctx context.Context) *DeleteCountResolver {
	n := m.r.Participants.DeleteAll()
	m.changed(ctx, "deleteAllParticipants", "")
	return &DeleteCountResolver{n}
}
