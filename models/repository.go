package models

// ===== Users =====
type User struct {
	ID       ID     `json:"id" bson:"id"`
	Username string `json:"username" bson:"username"`
	Email    string `json:"email" bson:"email"`
}

// UserPatch overwrites only the fields that are set.
type UserPatch struct {
	Username *string
	Email    *string
}

func (p UserPatch) Apply(u User) User {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	return u
}

type UserRepository interface {
	GetAll() []User
	GetByID(id ID) (User, error)
	Create(u User) (User, error)
	Update(id ID, p UserPatch) (User, error)
	Delete(id ID) (User, error)
	DeleteAll() int
	// UsersByID backs Event.users: zero or one owner, shaped as a list.
	UsersByID(id ID) []User
}

// ===== Locations =====
type Location struct {
	ID   ID      `json:"id" bson:"id"`
	Name string  `json:"name" bson:"name"`
	Desc string  `json:"desc" bson:"desc"`
	Lat  float64 `json:"lat" bson:"lat"`
	Lng  float64 `json:"lng" bson:"lng"`
}

type LocationPatch struct {
	Name *string
	Desc *string
	Lat  *float64
	Lng  *float64
}

func (p LocationPatch) Apply(l Location) Location {
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.Desc != nil {
		l.Desc = *p.Desc
	}
	if p.Lat != nil {
		l.Lat = *p.Lat
	}
	if p.Lng != nil {
		l.Lng = *p.Lng
	}
	return l
}

type LocationRepository interface {
	GetAll() []Location
	GetByID(id ID) (Location, error)
	Create(l Location) (Location, error)
	Update(id ID, p LocationPatch) (Location, error)
	Delete(id ID) (Location, error)
	DeleteAll() int
}

// ===== Events =====
type Event struct {
	ID         ID     `json:"id" bson:"id"`
	Title      string `json:"title" bson:"title"`
	Desc       string `json:"desc" bson:"desc"`
	Date       string `json:"date" bson:"date"`
	From       string `json:"from" bson:"from"`
	To         string `json:"to" bson:"to"`
	LocationID ID     `json:"location_id" bson:"location_id"`
	UserID     ID     `json:"user_id" bson:"user_id"` // owner
}

type EventPatch struct {
	Title      *string
	Desc       *string
	Date       *string
	From       *string
	To         *string
	LocationID *ID
	UserID     *ID
}

func (p EventPatch) Apply(e Event) Event {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Desc != nil {
		e.Desc = *p.Desc
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.From != nil {
		e.From = *p.From
	}
	if p.To != nil {
		e.To = *p.To
	}
	if p.LocationID != nil {
		e.LocationID = ParseID(string(*p.LocationID))
	}
	if p.UserID != nil {
		e.UserID = ParseID(string(*p.UserID))
	}
	return e
}

type EventRepository interface {
	GetAll() []Event
	GetByID(id ID) (Event, error)
	Create(e Event) (Event, error)
	Update(id ID, p EventPatch) (Event, error)
	Delete(id ID) (Event, error)
	DeleteAll() int
	EventsByUser(userID ID) []Event
}

// ===== Participants =====
type Participant struct {
	ID      ID `json:"id" bson:"id"`
	UserID  ID `json:"user_id" bson:"user_id"`
	EventID ID `json:"event_id" bson:"event_id"`
}

type ParticipantPatch struct {
	UserID  *ID
	EventID *ID
}

func (p ParticipantPatch) Apply(pt Participant) Participant {
	if p.UserID != nil {
		pt.UserID = ParseID(string(*p.UserID))
	}
	if p.EventID != nil {
		pt.EventID = ParseID(string(*p.EventID))
	}
	return pt
}

type ParticipantRepository interface {
	GetAll() []Participant
	GetByID(id ID) (Participant, error)
	Create(p Participant) (Participant, error)
	Update(id ID, p ParticipantPatch) (Participant, error)
	Delete(id ID) (Participant, error)
	DeleteAll() int
	ParticipantsByEvent(eventID ID) []Participant
}
