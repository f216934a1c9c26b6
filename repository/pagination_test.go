package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	p := NewPagination(1, 12, 25)
	assert.Equal(t, 3, p.TotalPages)
	assert.False(t, p.HasPrev)
	assert.True(t, p.HasNext)
	assert.Equal(t, 2, p.NextPage)

	p = NewPagination(3, 12, 25)
	assert.True(t, p.HasPrev)
	assert.False(t, p.HasNext)

	// out-of-range page keeps total metadata but has no next
	p = NewPagination(4, 12, 25)
	assert.Equal(t, 3, p.TotalPages)
	assert.False(t, p.HasNext)

	p = NewPagination(0, 12, 0)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 0, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrev)
}
