// Package pagination slices a listable collection into pages with total-count metadata.
package pagination

import (
	"context" // Request-scoped cancellation
	"math"    // Offset saturation
	"strconv" // Query parsing
	"strings" // Whitespace trimming

	"golang.org/x/sync/errgroup" // Concurrent count and list
)

// Defaults applied when the caller's value is absent or not a positive integer
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// Source is a collection that can be counted and read by offset. Foreign-key
// expansion, if any, is the source's business.
type Source[T any] interface {
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context, offset, limit int) ([]T, error)
}

// Page is one slice of a collection
type Page[T any] struct {
	Items       []T   `json:"items"`       // Never null
	Total       int64 `json:"total"`       // Records across all pages
	TotalPages  int   `json:"totalPages"`  // ceil(total / pageSize)
	CurrentPage int   `json:"currentPage"` // Requested page, even past the end
	PageSize    int   `json:"pageSize"`    // Effective page size
}

// Params are the normalized page coordinates
type Params struct {
	Page     int // 1-based
	PageSize int // Positive, unbounded
}

// Offset is the number of records skipped before the page starts. ok is false
// when the offset does not fit in an int, which can only be past the end.
func (p Params) Offset() (offset int, ok bool) {
	if p.Page-1 > math.MaxInt/p.PageSize {
		return 0, false // Saturated: no collection is that long
	}
	return (p.Page - 1) * p.PageSize, true
}

// ParseParams normalizes free-form page and page size input. Each falls back to
// its default unless it parses as a positive integer. There is no upper bound
// on the page size.
func ParseParams(page, pageSize string) Params {
	return Params{
		Page:     positiveOr(page, DefaultPage),
		PageSize: positiveOr(pageSize, DefaultPageSize),
	}
}

func positiveOr(raw string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

// TotalPages returns ceil(total / pageSize). pageSize must be positive.
func TotalPages(total int64, pageSize int) int {
	size := int64(pageSize)
	pages := total / size
	if total%size != 0 {
		pages++ // Partial last page
	}
	return int(pages)
}

// Paginate reads one page of src. Pages past the end yield an empty item list
// with the same totals. Count and List run concurrently and only read.
func Paginate[T any](ctx context.Context, src Source[T], page, pageSize string) (*Page[T], error) {
	p := ParseParams(page, pageSize) // Defaults for absent or invalid input

	var (
		total int64
		items []T
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := src.Count(gctx) // Total across all pages
		total = n
		return err
	})
	if offset, ok := p.Offset(); ok {
		g.Go(func() error {
			list, err := src.List(gctx, offset, p.PageSize)
			items = list
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if items == nil {
		items = make([]T, 0) // Serialize as [] rather than null
	}

	return &Page[T]{
		Items:       items,
		Total:       total,
		TotalPages:  TotalPages(total, p.PageSize),
		CurrentPage: p.Page,
		PageSize:    p.PageSize,
	}, nil
}
