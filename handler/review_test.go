package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReviewSortClause(t *testing.T) {
	assert.Equal(t, "created_at ASC", reviewSortClause("oldest"))
	assert.Equal(t, "rating DESC, created_at DESC", reviewSortClause("highest"))
	assert.Equal(t, "rating ASC, created_at DESC", reviewSortClause("lowest"))
	assert.Equal(t, "helpful_count DESC, created_at DESC", reviewSortClause("helpful"))
	assert.Equal(t, "created_at DESC", reviewSortClause("newest"))
	assert.Equal(t, "created_at DESC", reviewSortClause(""))
	assert.Equal(t, "created_at DESC", reviewSortClause("bogus"))
}
