package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoverageType(t *testing.T) {
	assert.Equal(t, "Auto Liability", CoverageLiability.Label())
	assert.Equal(t, "All of the Above", CoverageAll.Label())
	assert.True(t, CoverageCargo.Valid())
	assert.False(t, CoverageType("boats").Valid())
	assert.Empty(t, CoverageType("").Label())
	assert.Len(t, CoverageTypes, 4)
}

func TestDeliveryErrorKeepsTransportText(t *testing.T) {
	cause := errors.New("Invalid login")
	err := &DeliveryError{Provider: "smtp", Err: cause}

	assert.Equal(t, "Invalid login", err.Error())
	assert.ErrorIs(t, err, cause)
}
