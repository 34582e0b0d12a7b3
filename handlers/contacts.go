package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	ds "github.com/oaiiae/contacts-api/datastores"
	"github.com/oaiiae/contacts-api/locales"
)

type Contacts struct {
	Store        ds.ContactsStore
	ErrorHandler func(context.Context, error)
}

type ContactModel struct {
	ID    string `json:"id"    example:"Wv6oAcVIQpeN1Qq5dYu1Ew" readOnly:"true"`
	Name  string `json:"name"  example:"Ana"`
	Phone string `json:"phone" example:"11988887766"            doc:"Area code and number, 11 digits"`
}

// ContactBody is the request body of create and update.
// Both fields are required on create and optional on update,
// other properties are ignored.
type ContactBody struct {
	_     struct{} `json:"-"               additionalProperties:"true"`
	Name  string   `json:"name,omitempty"  example:"Ana"`
	Phone string   `json:"phone,omitempty" example:"(11) 98888-7766" doc:"Any characters other than digits are dropped"`
}

// orEmpty returns the body, or an empty one when the request had none.
func (b *ContactBody) orEmpty() ContactBody {
	if b == nil {
		return ContactBody{}
	}
	return *b
}

func newContactModel(c *ds.Contact) ContactModel {
	return ContactModel{ID: c.ID.String(), Name: c.Name, Phone: c.Phone}
}

func newContactModels(contacts []*ds.Contact) []ContactModel {
	models := make([]ContactModel, 0, len(contacts))
	for _, c := range contacts {
		models = append(models, newContactModel(c))
	}
	return models
}

// fail maps the store errors to a localized [EnvelopeError].
func fail(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, ds.ErrMissingField):
		return NewEnvelopeError(ctx, http.StatusBadRequest, locales.MissingField, err)
	case errors.Is(err, ds.ErrValidation):
		return NewEnvelopeError(ctx, http.StatusBadRequest, locales.InvalidPhone, err)
	case errors.Is(err, ds.ErrConflict):
		return NewEnvelopeError(ctx, http.StatusBadRequest, locales.DuplicatePhone, err)
	case errors.Is(err, ds.ErrObjectNotFound):
		return NewEnvelopeError(ctx, http.StatusBadRequest, locales.ContactNotFound, err)
	default:
		return NewEnvelopeError(ctx, http.StatusInternalServerError, locales.InternalError, err)
	}
}

func (h *Contacts) RegisterList(api huma.API) { // called by [huma.AutoRegister]
	huma.Get(api, "/contacts",
		handlerWithErrorHandler(h.list, h.ErrorHandler),
		opID("list-contacts", "List contacts"),
		opErrors(http.StatusInternalServerError),
	)
}

type ContactsListOutput struct {
	Body Envelope[[]ContactModel]
}

func (h *Contacts) list(ctx context.Context, _ *struct{}) (*ContactsListOutput, error) {
	contacts, err := h.Store.List(ctx)
	if err != nil {
		return nil, fail(ctx, err)
	}
	return &ContactsListOutput{Body: succeed(ctx, locales.ContactsListed, newContactModels(contacts))}, nil
}

func (h *Contacts) RegisterCreate(api huma.API) { // called by [huma.AutoRegister]
	huma.Post(api, "/contacts",
		handlerWithErrorHandler(h.create, h.ErrorHandler),
		opID("create-contact", "Create a contact"),
		opStatus(http.StatusCreated),
		opErrors(http.StatusBadRequest, http.StatusInternalServerError),
	)
}

type ContactOutput struct {
	Body Envelope[ContactModel]
}

func (h *Contacts) create(ctx context.Context, input *struct {
	Body *ContactBody
}) (*ContactOutput, error) {
	body := input.Body.orEmpty()
	contact, err := h.Store.Create(ctx, &ds.Contact{
		Name:  body.Name,
		Phone: body.Phone,
	})
	if err != nil {
		return nil, fail(ctx, err)
	}
	return &ContactOutput{Body: succeed(ctx, locales.ContactCreated, newContactModel(contact))}, nil
}

func (h *Contacts) RegisterUpdate(api huma.API) { // called by [huma.AutoRegister]
	huma.Put(api, "/contacts/{id}",
		handlerWithErrorHandler(h.update, h.ErrorHandler),
		opID("update-contact", "Update a contact"),
		opStatus(http.StatusCreated),
		opErrors(http.StatusBadRequest, http.StatusInternalServerError),
	)
}

func (h *Contacts) update(ctx context.Context, input *struct {
	ID   string `path:"id" doc:"ID of the contact to update"`
	Body *ContactBody
}) (*ContactOutput, error) {
	id, err := ds.ParseContactID(input.ID)
	if err != nil {
		return nil, fail(ctx, errors.Join(ds.ErrObjectNotFound, err))
	}

	body := input.Body.orEmpty()
	contact, err := h.Store.Update(ctx, id, ds.ContactPatch{
		Name:  body.Name,
		Phone: body.Phone,
	})
	if err != nil {
		return nil, fail(ctx, err)
	}
	return &ContactOutput{Body: succeed(ctx, locales.ContactUpdated, newContactModel(contact))}, nil
}

func (h *Contacts) RegisterDelete(api huma.API) { // called by [huma.AutoRegister]
	huma.Delete(api, "/contacts/{id}",
		handlerWithErrorHandler(h.del, h.ErrorHandler),
		opID("delete-contact", "Delete a contact"),
		opStatus(http.StatusCreated),
		opErrors(http.StatusBadRequest, http.StatusInternalServerError),
	)
}

// del responds with the remaining contacts, not the deleted one.
func (h *Contacts) del(ctx context.Context, input *struct {
	ID string `path:"id" doc:"ID of the contact to delete"`
}) (*ContactsListOutput, error) {
	id, err := ds.ParseContactID(input.ID)
	if err != nil {
		return nil, fail(ctx, errors.Join(ds.ErrObjectNotFound, err))
	}

	contacts, err := h.Store.Delete(ctx, id)
	if err != nil {
		return nil, fail(ctx, err)
	}
	return &ContactsListOutput{Body: succeed(ctx, locales.ContactDeleted, newContactModels(contacts))}, nil
}
