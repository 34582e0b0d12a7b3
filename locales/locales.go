// Package locales holds the human-readable messages of the API and picks
// their language from the Accept-Language request header.
package locales

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys, also used as the English text.
const (
	ContactsListed  = "Contacts fetched successfully!"
	ContactCreated  = "Contact created successfully!"
	ContactUpdated  = "Contact updated successfully!"
	ContactDeleted  = "Contact deleted successfully!"
	MissingField    = "Name and phone are required"
	InvalidPhone    = "Invalid phone. Please provide the area code and the number correctly."
	DuplicatePhone  = "Phone already registered in your contact list. Check it!"
	ContactNotFound = "Contact not found. Check the given ID."
	InternalError   = "Internal error."
)

// Supported languages, the first one is the default.
var Supported = []language.Tag{ //nolint: gochecknoglobals
	language.BrazilianPortuguese,
	language.English,
}

var (
	messages = newCatalog()                   //nolint: gochecknoglobals
	matcher  = language.NewMatcher(Supported) //nolint: gochecknoglobals
)

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(Supported[0]))
	for key, text := range map[string]string{
		ContactsListed:  "Contatos buscados com sucesso!",
		ContactCreated:  "Contato cadastrado com sucesso!",
		ContactUpdated:  "Contato atualizado com sucesso!",
		ContactDeleted:  "Contato deletado com sucesso!",
		MissingField:    "As propriedades Nome e Telefone são obrigatórias",
		InvalidPhone:    "O telefone é inválido. Por favor, informe o DDD e o telefone corretamente.",
		DuplicatePhone:  "Telefone já cadastrado em sua lista de contatos. Verifique!",
		ContactNotFound: "Contato não encontrado. Verifique o ID informado.",
		InternalError:   "Erro interno.",
	} {
		_ = b.SetString(language.BrazilianPortuguese, key, text)
		_ = b.SetString(language.English, key, key)
	}
	return b
}

// Match returns the supported language that best fits an Accept-Language header value.
func Match(acceptLanguage string) language.Tag {
	tags, _, _ := language.ParseAcceptLanguage(acceptLanguage)
	_, index, _ := matcher.Match(tags...)
	return Supported[index]
}

// NewPrinter returns a [message.Printer] for tag backed by the API messages.
func NewPrinter(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(messages))
}

// ctxprinter is a [context.Context] key for the request [message.Printer].
type ctxprinter struct{}

// Middleware stores in the [context.Context] the [message.Printer] matching
// the request Accept-Language header.
func Middleware(ctx huma.Context, next func(huma.Context)) {
	printer := NewPrinter(Match(ctx.Header("Accept-Language")))
	next(huma.WithValue(ctx, ctxprinter{}, printer))
}

// Printer returns the [message.Printer] set by [Middleware],
// or a printer for the default language.
func Printer(ctx context.Context) *message.Printer {
	printer, ok := ctx.Value(ctxprinter{}).(*message.Printer)
	if !ok {
		return NewPrinter(Supported[0])
	}
	return printer
}
