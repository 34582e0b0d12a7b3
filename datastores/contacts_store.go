package datastores

import (
	"context"
	"errors"
	"fmt"
)

type Contact struct {
	ID    ContactID
	Name  string
	Phone string
}

// ContactPatch holds the fields to replace on update. Empty fields are left untouched.
type ContactPatch struct {
	Name  string
	Phone string
}

// ContactsStore is the contact registry. Implementations normalize phones
// and keep ids and phones unique across the registry.
type ContactsStore interface {
	List(context.Context) ([]*Contact, error)
	Create(context.Context, *Contact) (*Contact, error)
	Update(context.Context, ContactID, ContactPatch) (*Contact, error)
	Delete(context.Context, ContactID) ([]*Contact, error)
}

var (
	ErrValidation     = errors.New("store: validation failed")
	ErrConflict       = errors.New("store: conflict")
	ErrObjectNotFound = errors.New("store: object not found")

	ErrMissingField   = fmt.Errorf("%w: missing required field", ErrValidation)
	ErrInvalidPhone   = fmt.Errorf("%w: invalid phone length", ErrValidation)
	ErrDuplicatePhone = fmt.Errorf("%w: duplicate phone", ErrConflict)
)

// ErrorKind names the category of a store error: "validation", "conflict"
// or "not_found". It returns "" for errors outside of the store taxonomy.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrObjectNotFound):
		return "not_found"
	default:
		return ""
	}
}
