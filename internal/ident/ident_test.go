package ident

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRoundTripFromStorage(t *testing.T) {
	for i := 0; i < 10; i++ {
		id := primitive.NewObjectID()

		decoded, err := Decode(Encode(id))
		require.NoError(t, err)
		assert.Equal(t, id, decoded)
	}
}

func TestRoundTripFromWire(t *testing.T) {
	wire := "507f1f77bcf86cd799439011"

	id, err := Decode(wire)
	require.NoError(t, err)
	assert.Equal(t, wire, Encode(id))
}

func TestDecodeRejectsMalformedIdentifiers(t *testing.T) {
	cases := []struct {
		name   string
		wireID string
	}{
		{"empty", ""},
		{"not hex at all", "not-a-real-id-format"},
		{"too short", "507f1f77"},
		{"too long", "507f1f77bcf86cd79943901100"},
		{"right length, bad chars", "zzzzzzzzzzzzzzzzzzzzzzzz"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.wireID)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidIdentifier),
				"expected ErrInvalidIdentifier, got %v", err)
		})
	}
}
