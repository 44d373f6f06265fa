package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineKm(t *testing.T) {
	// Damascus to Aleppo is roughly 310 km as the crow flies.
	d := HaversineKm(33.5138, 36.2765, 36.2021, 37.1343)
	assert.InDelta(t, 310, d, 15)

	assert.Zero(t, HaversineKm(33.5138, 36.2765, 33.5138, 36.2765))
}
