package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextDayNumber(t *testing.T) {
	assert.Equal(t, 1, nextDayNumber(nil))
	assert.Equal(t, 4, nextDayNumber([]int{1, 2, 3}))
	// Gaps do not get refilled; days keep their numbers.
	assert.Equal(t, 6, nextDayNumber([]int{1, 5, 3}))
}

func TestNextSortOrder(t *testing.T) {
	assert.Equal(t, 0, nextSortOrder(nil))
	assert.Equal(t, 3, nextSortOrder([]int{0, 1, 2}))
	assert.Equal(t, 8, nextSortOrder([]int{7, 2}))
}
