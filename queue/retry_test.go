package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBackoffDoublesAndCaps(t *testing.T) {
	assert.Equal(t, time.Minute, backoff(0))
	assert.Equal(t, 2*time.Minute, backoff(1))
	assert.Equal(t, 4*time.Minute, backoff(2))
	assert.Equal(t, 32*time.Minute, backoff(5))
	assert.Equal(t, time.Hour, backoff(6))
	assert.Equal(t, time.Hour, backoff(40))
}
