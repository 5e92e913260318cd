package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewComponentId_ProducesUniqueNonEmptyIds(t *testing.T) {
	a := NewComponentId()
	b := NewComponentId()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestParseComponentId_RoundTripsArbitraryStrings(t *testing.T) {
	id := ParseComponentId("mirror-1")
	assert.Equal(t, ComponentId("mirror-1"), id)
	assert.Equal(t, "mirror-1", id.String())
}
