package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestPagesPartitionResults(t *testing.T) {
	for n := 0; n <= 23; n++ {
		for size := 1; size <= 7; size++ {
			results := seq(n)
			var collected []int
			pages := 0
			for idx := 0; ; idx++ {
				page, err := Paginate(results, idx, size)
				if err != nil {
					require.ErrorIs(t, err, ErrEmptyPage)
					break
				}
				assert.Equal(t, idx*size, page.Offset)
				assert.Equal(t, idx > 0, page.HasPrev)
				collected = append(collected, page.Items...)
				pages++
			}

			if n == 0 {
				assert.Empty(t, collected)
			} else {
				assert.Equal(t, results, collected, "n=%d size=%d", n, size)
			}
			assert.Equal(t, max(pages, 1), TotalPages(n, size), "n=%d size=%d", n, size)
		}
	}
}

func TestPaginateFlags(t *testing.T) {
	results := seq(12)

	first, err := Paginate(results, 0, 5)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, first.Items)
	assert.False(t, first.HasPrev)
	assert.True(t, first.HasNext)
	assert.Equal(t, 3, first.TotalPages)

	last, err := Paginate(results, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 11}, last.Items)
	assert.True(t, last.HasPrev)
	assert.False(t, last.HasNext)

	exact, err := Paginate(seq(10), 1, 5)
	require.NoError(t, err)
	assert.False(t, exact.HasNext)
}

func TestPaginateEmptyPage(t *testing.T) {
	page, err := Paginate(seq(3), 1, 5)
	assert.ErrorIs(t, err, ErrEmptyPage)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.TotalPages)

	strPage, err := Paginate([]string{}, 0, 5)
	assert.ErrorIs(t, err, ErrEmptyPage)
	assert.Equal(t, 1, strPage.TotalPages)

	_, err = Paginate(seq(3), -1, 5)
	assert.ErrorIs(t, err, ErrEmptyPage)
}

func TestPaginateInvalidSize(t *testing.T) {
	_, err := Paginate(seq(3), 0, 0)
	assert.ErrorIs(t, err, ErrInvalidPageSize)
}
