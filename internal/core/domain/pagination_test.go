package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	page, err := Paginate(25, 10, 3)

	require.NoError(t, err)
	assert.Equal(t, 20, page.Offset)
	assert.Equal(t, 3, page.LastPage)
}

func TestPaginate_FirstPage(t *testing.T) {
	page, err := Paginate(25, 10, 1)

	require.NoError(t, err)
	assert.Equal(t, 0, page.Offset)
	assert.Equal(t, 3, page.LastPage)
}

func TestPaginate_ExactMultiple(t *testing.T) {
	page, err := Paginate(30, 10, 3)

	require.NoError(t, err)
	assert.Equal(t, 20, page.Offset)
	assert.Equal(t, 3, page.LastPage)
}

func TestPaginate_PageOutOfRange(t *testing.T) {
	_, err := Paginate(25, 10, 4)

	var outOfRange *PageOutOfRangeError
	require.True(t, errors.As(err, &outOfRange))
	assert.Equal(t, 4, outOfRange.RequestedPage)
	assert.Equal(t, 3, outOfRange.LastPage)
}

func TestPaginate_EmptyTotal(t *testing.T) {
	// An empty result set accepts any valid page request.
	page, err := Paginate(0, 10, 1)

	require.NoError(t, err)
	assert.Equal(t, 0, page.Offset)
	assert.Equal(t, 0, page.LastPage)

	page, err = Paginate(0, 10, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, page.LastPage)
}

func TestPaginate_InvalidInput(t *testing.T) {
	cases := []struct {
		name  string
		total int
		limit int
		page  int
	}{
		{"zero limit", 10, 0, 1},
		{"negative limit", 10, -5, 1},
		{"zero page", 10, 10, 0},
		{"negative total", -1, 10, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Paginate(tc.total, tc.limit, tc.page)
			var validation *ValidationError
			assert.True(t, errors.As(err, &validation))
		})
	}
}
