package pagination

import (
	"context"
	"errors"
	"math"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceSource struct {
	items    []int
	countErr error
}

func (s sliceSource) Count(context.Context) (int64, error) {
	return int64(len(s.items)), s.countErr
}

func (s sliceSource) List(_ context.Context, offset, limit int) ([]int, error) {
	if offset >= len(s.items) {
		return nil, nil
	}
	end := len(s.items)
	if limit < end-offset {
		end = offset + limit
	}
	return s.items[offset:end], nil
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestParseParams(t *testing.T) {
	cases := []struct {
		name           string
		page, pageSize string
		want           Params
	}{
		{"absent", "", "", Params{1, 10}},
		{"valid", "3", "25", Params{3, 25}},
		{"garbage", "abc", "x1", Params{1, 10}},
		{"zero", "0", "0", Params{1, 10}},
		{"negative", "-2", "-5", Params{1, 10}},
		{"fraction", "1.5", "2.5", Params{1, 10}},
		{"padded", " 2 ", " 4", Params{2, 4}},
		{"huge page size", "1", "100000", Params{1, 100000}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseParams(tc.page, tc.pageSize))
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 7, TotalPages(7, 1))
	assert.Equal(t, 1, TotalPages(5, math.MaxInt))
	assert.Equal(t, 0, TotalPages(0, math.MaxInt))
}

func TestParams_OffsetSaturates(t *testing.T) {
	off, ok := Params{Page: 3, PageSize: 25}.Offset()
	assert.True(t, ok)
	assert.Equal(t, 50, off)

	off, ok = Params{Page: 2, PageSize: math.MaxInt}.Offset()
	assert.True(t, ok)
	assert.Equal(t, math.MaxInt, off)

	_, ok = ParseParams("3", strconv.Itoa(1<<62)).Offset()
	assert.False(t, ok)
	_, ok = Params{Page: math.MaxInt, PageSize: 2}.Offset()
	assert.False(t, ok)
}

type countingSource struct {
	sliceSource
	listed *int
}

func (s countingSource) List(ctx context.Context, offset, limit int) ([]int, error) {
	*s.listed++
	return s.sliceSource.List(ctx, offset, limit)
}

func TestPaginate_HugePageSize(t *testing.T) {
	ctx := context.Background()
	huge := strconv.Itoa(math.MaxInt)

	page, err := Paginate[int](ctx, sliceSource{items: seq(5)}, "1", huge)
	require.NoError(t, err)
	assert.Equal(t, seq(5), page.Items)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, math.MaxInt, page.PageSize)

	listed := 0
	src := countingSource{sliceSource: sliceSource{items: seq(5)}, listed: &listed}
	page, err = Paginate[int](ctx, src, "3", strconv.Itoa(1<<62))
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(5), page.Total)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 0, listed, "an offset past any collection never reaches the source")
}

func TestPaginate_FirstAndLastPage(t *testing.T) {
	ctx := context.Background()
	src := sliceSource{items: seq(23)}

	page, err := Paginate[int](ctx, src, "1", "10")
	require.NoError(t, err)
	assert.Equal(t, seq(10), page.Items)
	assert.Equal(t, int64(23), page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 10, page.PageSize)

	page, err = Paginate[int](ctx, src, "3", "10")
	require.NoError(t, err)
	assert.Equal(t, []int{21, 22, 23}, page.Items)
}

func TestPaginate_BeyondEnd(t *testing.T) {
	page, err := Paginate[int](context.Background(), sliceSource{items: seq(5)}, "9", "2")
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(5), page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 9, page.CurrentPage)
}

func TestPaginate_DefaultsApplied(t *testing.T) {
	page, err := Paginate[int](context.Background(), sliceSource{items: seq(15)}, "nope", "0")
	require.NoError(t, err)
	assert.Len(t, page.Items, DefaultPageSize)
	assert.Equal(t, DefaultPage, page.CurrentPage)
	assert.Equal(t, 2, page.TotalPages)
}

func TestPaginate_ItemsNeverExceedPageSize(t *testing.T) {
	src := sliceSource{items: seq(37)}
	for size := 1; size <= 40; size++ {
		for p := 1; p <= 40; p++ {
			page, err := Paginate[int](context.Background(), src, strconv.Itoa(p), strconv.Itoa(size))
			require.NoError(t, err)
			assert.LessOrEqual(t, len(page.Items), size)
		}
	}
}

func TestPaginate_SourceError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Paginate[int](context.Background(), sliceSource{items: seq(3), countErr: boom}, "1", "1")
	assert.ErrorIs(t, err, boom)
}

func TestPaginate_ConcurrentCalls(t *testing.T) {
	src := sliceSource{items: seq(50)}
	var wg sync.WaitGroup
	for i := 1; i <= 5; i++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			page, err := Paginate[int](context.Background(), src, strconv.Itoa(p), "10")
			assert.NoError(t, err)
			assert.Equal(t, (p-1)*10+1, page.Items[0])
		}(i)
	}
	wg.Wait()
}
