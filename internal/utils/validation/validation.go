// Package validation turns go-playground/validator failures into a
// single client-facing error message.
//
// The GraphQL engine owns the response envelope, so unlike a REST
// handler we never write JSON here — resolvers just return an error and
// the engine formats it. What we keep is one consistent, readable
// message per failed request instead of the raw validator dump.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Error converts err into a request-level error suitable for the API
// boundary. Validator failures become one joined message; anything else
// passes through unchanged.
func Error(err error) error {
	var validateErrs validator.ValidationErrors
	if !errors.As(err, &validateErrs) {
		return err
	}

	var errMessages []string
	for _, e := range validateErrs {
		switch e.ActualTag() {
		// "required" tag — field was missing or zero-valued
		case "required":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is required", e.Field()))
		// "email" tag — field did not match email format
		case "email":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be a valid email address", e.Field()))
		// Catch-all for any other validation tag (min, max, len, etc.)
		default:
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return errors.New(strings.Join(errMessages, ", "))
}
