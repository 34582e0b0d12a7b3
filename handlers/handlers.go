package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/oaiiae/contacts-api/locales"
)

type handler[I, O any] = func(context.Context, *I) (*O, error)

func handlerWithErrorHandler[I, O any](handler handler[I, O], do func(context.Context, error)) handler[I, O] {
	if do == nil {
		return handler
	}

	return func(ctx context.Context, i *I) (*O, error) {
		o, err := handler(ctx, i)
		if err != nil {
			do(ctx, err)
		}
		return o, err
	}
}

// Envelope is the body of every response.
type Envelope[T any] struct {
	Success bool   `json:"success" doc:"Whether the operation succeeded"`
	Message string `json:"message" doc:"Human-readable outcome, localized from Accept-Language"`
	Data    T      `json:"data"    doc:"Operation payload"`
}

func succeed[T any](ctx context.Context, key string, data T) Envelope[T] {
	return Envelope[T]{Success: true, Message: locales.Printer(ctx).Sprintf(key), Data: data}
}

// EnvelopeError is a failed [Envelope] carrying the response status.
// It implements [huma.StatusError].
type EnvelopeError struct {
	Envelope[any]

	status int
	err    error
}

var _ huma.StatusError = (*EnvelopeError)(nil)

// NewEnvelopeError returns an [EnvelopeError] whose message is key localized for ctx.
func NewEnvelopeError(ctx context.Context, status int, key string, err error) *EnvelopeError {
	return &EnvelopeError{
		Envelope: Envelope[any]{Message: locales.Printer(ctx).Sprintf(key)},
		status:   status,
		err:      err,
	}
}

func (e *EnvelopeError) GetStatus() int { return e.status }

func (e *EnvelopeError) Error() string {
	if e.err == nil {
		return e.Message
	}
	return e.err.Error()
}

func (e *EnvelopeError) Unwrap() error { return e.err }

// WriteInternalError writes a 500 [EnvelopeError] on ctx,
// for failures happening outside of an operation handler.
func WriteInternalError(ctx huma.Context) {
	e := NewEnvelopeError(ctx.Context(), http.StatusInternalServerError, locales.InternalError, nil)
	ctx.SetHeader("Content-Type", "application/json")
	ctx.SetStatus(e.GetStatus())
	_ = json.NewEncoder(ctx.BodyWriter()).Encode(e)
}

func opID(id, summary string) func(*huma.Operation) {
	return func(o *huma.Operation) { o.OperationID, o.Summary = id, summary }
}

func opErrors(codes ...int) func(*huma.Operation) {
	return func(o *huma.Operation) { o.Errors = codes }
}

func opStatus(code int) func(*huma.Operation) {
	return func(o *huma.Operation) { o.DefaultStatus = code }
}
