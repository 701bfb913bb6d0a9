package content

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func numbers(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestPaginate_FifteenItems(t *testing.T) {
	p, err := Paginate(numbers(15), 2, 10)
	require.NoError(t, err)
	require.Equal(t, []int{11, 12, 13, 14, 15}, p.Items)
	require.Equal(t, 2, p.TotalPages)
	require.Equal(t, 15, p.TotalItems)
	require.Equal(t, 2, p.Number)

	p, err = Paginate(numbers(15), 1, 0)
	require.NoError(t, err)
	require.Len(t, p.Items, 10)
	require.Equal(t, 10, p.Size)
}

func TestPaginate_OutOfRange(t *testing.T) {
	for _, page := range []int{0, -1, 3} {
		_, err := Paginate(numbers(15), page, 10)
		require.ErrorIs(t, err, ErrNotFound, page)
	}
}

func TestPaginate_Empty(t *testing.T) {
	p, err := Paginate([]int{}, 1, 10)
	require.NoError(t, err)
	require.NotNil(t, p.Items)
	require.Empty(t, p.Items)
	require.Equal(t, 0, p.TotalPages)

	_, err = Paginate([]int{}, 2, 10)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPaginate_FullPagesExceptLast(t *testing.T) {
	for n := 1; n <= 35; n++ {
		total := TotalPages(n, 10)
		seen := 0
		for page := 1; page <= total; page++ {
			p, err := Paginate(numbers(n), page, 10)
			require.NoError(t, err)
			if page < total {
				require.Len(t, p.Items, 10)
			}
			seen += len(p.Items)
		}
		require.Equal(t, n, seen)
	}
}

func TestPaginate_DoesNotAliasInput(t *testing.T) {
	in := numbers(3)
	p, err := Paginate(in, 1, 10)
	require.NoError(t, err)
	p.Items[0] = 99
	require.Equal(t, 1, in[0])
}
