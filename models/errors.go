package models

import "errors"

const (
	KindUser        = "User"
	KindEvent       = "Event"
	KindLocation    = "Location"
	KindParticipant = "Participant"
)

// NotFoundError is returned by lookups, updates and deletes that match no record.
type NotFoundError struct {
	Kind string
	ID   ID
}

func (e *NotFoundError) Error() string { return e.Kind + " not found!" }

// Extensions is picked up by the GraphQL layer and attached to the field error.
func (e *NotFoundError) Extensions() map[string]interface{} {
	return map[string]interface{}{
		"code": "NOT_FOUND",
		"kind": e.Kind,
		"id":   string(e.ID),
	}
}

func notFound(kind string, id ID) error { return &NotFoundError{Kind: kind, ID: id} }

// IsNotFound reports whether err, or anything it wraps, is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
