package datastores

import (
	"encoding/base64"
	"errors"

	"github.com/google/uuid"
)

// ContactID is a random [uuid.UUID] that uses [base64.RawURLEncoding]
// to marshal to and from text.
type ContactID uuid.UUID

func newContactID() ContactID { return ContactID(uuid.Must(uuid.NewRandom())) }

// ParseContactID parses the text form of a [ContactID].
func ParseContactID(s string) (ContactID, error) {
	var id ContactID
	return id, id.UnmarshalText([]byte(s))
}

func (*ContactID) encoding() *base64.Encoding { return base64.RawURLEncoding }

func (id *ContactID) encodedLen() int {
	return id.encoding().EncodedLen(len(id))
}

// String returns the base64url form of id, as used in the contacts paths.
func (id ContactID) String() string {
	b, _ := id.AppendText(nil)
	return string(b)
}

// AppendText implements [encoding.TextAppender].
func (id *ContactID) AppendText(b []byte) ([]byte, error) {
	return id.encoding().AppendEncode(b, id[:]), nil
}

func (id *ContactID) MarshalText() ([]byte, error) {
	return id.AppendText(nil)
}

func (id *ContactID) UnmarshalText(b []byte) error {
	if len(b) != id.encodedLen() {
		return errors.New("invalid length")
	}
	_, err := id.encoding().Decode(id[:], b)
	return err
}
