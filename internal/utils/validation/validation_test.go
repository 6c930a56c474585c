package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
	Age   int    `validate:"omitempty,min=18"`
}

func TestErrorJoinsFieldMessages(t *testing.T) {
	err := validator.New().Struct(sample{Age: 12})
	require.Error(t, err)

	converted := Error(err)
	require.Error(t, converted)
	assert.Contains(t, converted.Error(), "field Name is required")
	assert.Contains(t, converted.Error(), "field Email is required")
	assert.Contains(t, converted.Error(), "field Age is invalid")
}

func TestErrorMapsEmailTag(t *testing.T) {
	err := validator.New().Struct(sample{Name: "Bob", Email: "nope"})
	require.Error(t, err)

	assert.Contains(t, Error(err).Error(), "field Email must be a valid email address")
}

func TestErrorPassesThroughOtherErrors(t *testing.T) {
	plain := errors.New("boom")
	assert.Same(t, plain, Error(plain))
}
