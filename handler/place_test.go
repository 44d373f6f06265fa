package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatingDistribution(t *testing.T) {
	dist := ratingDistribution([]ratingBucket{
		{Rating: 5, Count: 10},
		{Rating: 4.5, Count: 3},
		{Rating: 4, Count: 2},
		{Rating: 1, Count: 1},
	})
	assert.Equal(t, int64(13), dist[5])
	assert.Equal(t, int64(2), dist[4])
	assert.Equal(t, int64(1), dist[1])
	// Every bucket is present even when empty.
	assert.Equal(t, int64(0), dist[2])
	assert.Equal(t, int64(0), dist[3])
}
