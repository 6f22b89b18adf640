package models

import (
	"fmt"
	"sync"

	"eventgraph/utils"
)

// Dataset is the full content of the store, in the shape of the seed file.
type Dataset struct {
	Users        []User        `json:"users" bson:"users"`
	Events       []Event       `json:"events" bson:"events"`
	Locations    []Location    `json:"locations" bson:"locations"`
	Participants []Participant `json:"participants" bson:"participants"`
}

// Store holds the four collections in insertion order. One lock guards all
// of them; a mutation holds it across its scan and its splice.
type Store struct {
	mu           sync.RWMutex
	users        []User
	events       []Event
	locations    []Location
	participants []Participant
	newID        func() string
}

func NewStore() *Store { return NewStoreWithIDs(utils.NewID) }

// NewStoreWithIDs lets callers control id generation.
func NewStoreWithIDs(gen func() string) *Store {
	return &Store{newID: gen}
}

// Load replaces every collection. Duplicate ids within a collection are rejected.
func (s *Store) Load(ds Dataset) error {
	if err := checkUnique(KindUser, ds.Users); err != nil {
		return err
	}
	if err := checkUnique(KindEvent, ds.Events); err != nil {
		return err
	}
	if err := checkUnique(KindLocation, ds.Locations); err != nil {
		return err
	}
	if err := checkUnique(KindParticipant, ds.Participants); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append([]User(nil), ds.Users...)
	s.events = append([]Event(nil), ds.Events...)
	s.locations = append([]Location(nil), ds.Locations...)
	s.participants = append([]Participant(nil), ds.Participants...)
	return nil
}

// Snapshot copies the current content.
func (s *Store) Snapshot() Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Dataset{
		Users:        append([]User(nil), s.users...),
		Events:       append([]Event(nil), s.events...),
		Locations:    append([]Location(nil), s.locations...),
		Participants: append([]Participant(nil), s.participants...),
	}
}

func (s *Store) Counts() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]int{
		"users":        len(s.users),
		"events":       len(s.events),
		"locations":    len(s.locations),
		"participants": len(s.participants),
	}
}

// ===== helpers =====

type keyed interface{ key() ID }

func (u User) key() ID        { return u.ID }
func (l Location) key() ID    { return l.ID }
func (e Event) key() ID       { return e.ID }
func (p Participant) key() ID { return p.ID }

func indexOf[T keyed](items []T, id ID) int {
	for i := range items {
		if items[i].key() == id {
			return i
		}
	}
	return -1
}

// removeAt keeps the relative order of the remaining items.
func removeAt[T any](items []T, i int) []T {
	return append(items[:i:i], items[i+1:]...)
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0)
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

func checkUnique[T keyed](kind string, items []T) error {
	seen := make(map[ID]struct{}, len(items))
	for _, it := range items {
		if _, dup := seen[it.key()]; dup {
			return fmt.Errorf("duplicate %s id %q", kind, it.key())
		}
		seen[it.key()] = struct{}{}
	}
	return nil
}

// freshID must be called with the write lock held.
func freshID[T keyed](gen func() string, items []T) ID {
	for {
		id := ID(gen())
		if indexOf(items, id) < 0 {
			return id
		}
	}
}
