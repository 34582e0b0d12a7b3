package datastores

import (
	"context"
	"slices"
	"sync"
)

// ContactsInmem implements [ContactsStore].
// Each operation holds mu for its whole check-then-write sequence.
type ContactsInmem struct {
	mu       sync.Mutex
	index    map[ContactID]int
	phones   map[string]ContactID
	contacts []*Contact
}

var _ ContactsStore = (*ContactsInmem)(nil)

func NewContactsInmem() *ContactsInmem {
	return &ContactsInmem{
		index:  make(map[ContactID]int),
		phones: make(map[string]ContactID),
	}
}

// Len returns the number of registered contacts.
func (s *ContactsInmem) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.contacts)
}

func (s *ContactsInmem) List(_ context.Context) ([]*Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list(), nil
}

func (s *ContactsInmem) Create(_ context.Context, c *Contact) (*Contact, error) {
	if c.Name == "" || c.Phone == "" {
		return nil, ErrMissingField
	}
	phone, err := normalizeValidPhone(c.Phone)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.phones[phone]; taken {
		return nil, ErrDuplicatePhone
	}
retry:
	id := newContactID()
	_, loaded := s.index[id]
	if loaded {
		goto retry
	}
	stored := &Contact{ID: id, Name: c.Name, Phone: phone}
	s.index[id] = len(s.contacts)
	s.phones[phone] = id
	s.contacts = append(s.contacts, stored)
	return clone(stored), nil
}

func (s *ContactsInmem) Update(_ context.Context, id ContactID, patch ContactPatch) (*Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	index, ok := s.index[id]
	if !ok {
		return nil, ErrObjectNotFound
	}
	c := s.contacts[index]

	if patch.Phone != "" {
		phone, err := normalizeValidPhone(patch.Phone)
		if err != nil {
			return nil, err
		}
		holder, taken := s.phones[phone]
		if taken && holder != id {
			return nil, ErrDuplicatePhone
		}
		delete(s.phones, c.Phone)
		s.phones[phone] = id
		c.Phone = phone
	}
	if patch.Name != "" {
		c.Name = patch.Name
	}
	return clone(c), nil
}

func (s *ContactsInmem) Delete(_ context.Context, id ContactID) ([]*Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	index, ok := s.index[id]
	if !ok {
		return nil, ErrObjectNotFound
	}
	delete(s.index, id)
	delete(s.phones, s.contacts[index].Phone)
	s.contacts = slices.Delete(s.contacts, index, index+1)
	for i := index; i < len(s.contacts); i++ {
		s.index[s.contacts[i].ID] = i
	}
	return s.list(), nil
}

// list must be called with mu held.
func (s *ContactsInmem) list() []*Contact {
	contacts := make([]*Contact, 0, len(s.contacts))
	for _, c := range s.contacts {
		contacts = append(contacts, clone(c))
	}
	return contacts
}

func clone(c *Contact) *Contact { cc := *c; return &cc }
