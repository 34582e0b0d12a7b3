package datastores

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactIDText(t *testing.T) {
	id := newContactID()
	text := id.String()
	assert.Len(t, text, 22)

	parsed, err := ParseContactID(text)
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
	assert.NotEqual(t, id, newContactID())
}

func TestParseContactIDInvalid(t *testing.T) {
	for _, s := range []string{"", "nope", "0123456789012345678901234", "!!!!!!!!!!!!!!!!!!!!!!"} {
		_, err := ParseContactID(s)
		assert.Error(t, err, s)
	}
}
