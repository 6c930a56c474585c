// Package ident converts between the two forms of an entity identifier:
// the 24-character hex string seen by API callers and the ObjectID the
// store assigns at insert time.
//
// Every operation that accepts an id argument must Decode it before
// touching the store; a decode failure aborts the operation with
// ErrInvalidIdentifier and never turns into a silent null result.
// Encode is total and is the exact inverse of Decode for every valid
// identifier, in both directions.
package ident

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrInvalidIdentifier marks a wire identifier that does not parse into
// a storage identifier. Match it with errors.Is.
var ErrInvalidIdentifier = errors.New("invalid identifier")

// Decode parses the wire (hex) form of an identifier.
func Decode(wireID string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(wireID)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidIdentifier, wireID)
	}
	return id, nil
}

// Encode renders a storage identifier in its wire form. It never fails.
func Encode(id primitive.ObjectID) string {
	return id.Hex()
}
