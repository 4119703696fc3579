package apperror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("535 authentication failed")
	err := New(http.StatusInternalServerError, "Failed to send email", cause)

	assert.Equal(t, "Failed to send email", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestValidation(t *testing.T) {
	err := Validation("Invalid quote request", []string{"Phone: is required"})

	assert.Equal(t, http.StatusBadRequest, err.Code)
	assert.Equal(t, []string{"Phone: is required"}, err.Fields)
	assert.Nil(t, err.Err)
}

func TestBuilders(t *testing.T) {
	err := Internal(errors.New("boom")).WithErrorID("abc").WithDetails(map[string]string{"user": "present"})

	assert.Equal(t, http.StatusInternalServerError, err.Code)
	assert.Equal(t, "abc", err.ErrorID)
	assert.Equal(t, map[string]string{"user": "present"}, err.Details)
}

func TestNotFound(t *testing.T) {
	err := NotFound("Route not found")

	assert.Equal(t, http.StatusNotFound, err.Code)
	assert.Equal(t, "Route not found", err.Error())
}
