package pagination

import (
	"context"
	"strconv"
	"strings"
)

// PageSize is the process-wide listing page size. Every listing pages by
// this constant; there is no per-handler override.
const PageSize = 10

// Source is an ordered collection that can be counted and sliced without
// loading everything into memory. Repositories return gorm-backed sources;
// tests use in-memory ones.
type Source[T any] interface {
	Count(ctx context.Context) (int64, error)
	Slice(ctx context.Context, offset, limit int) ([]T, error)
}

// Page 单页数据 + 渲染分页控件所需的元信息
type Page[T any] struct {
	Items      []T
	Number     int
	TotalPages int
	TotalItems int64
	HasPrev    bool
	HasNext    bool
}

func (p *Page[T]) PrevNumber() int { return p.Number - 1 }
func (p *Page[T]) NextNumber() int { return p.Number + 1 }

// Paginate slices src into the page requested by rawPage (a raw query
// parameter; empty means page 1). Bad input never fails: a non-numeric
// page, page < 1 or a page past the end all clamp to the last valid page.
// An empty source yields one empty page. Exactly one count and at most one
// slice query are issued.
func Paginate[T any](ctx context.Context, src Source[T], rawPage string) (*Page[T], error) {
	total, err := src.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalPages := int((total + PageSize - 1) / PageSize)
	if totalPages < 1 {
		totalPages = 1
	}

	number := 1
	if raw := strings.TrimSpace(rawPage); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > totalPages {
			n = totalPages
		}
		number = n
	}

	page := &Page[T]{
		Items:      []T{},
		Number:     number,
		TotalPages: totalPages,
		TotalItems: total,
		HasPrev:    number > 1,
		HasNext:    number < totalPages,
	}
	if total == 0 {
		return page, nil
	}
	items, err := src.Slice(ctx, (number-1)*PageSize, PageSize)
	if err != nil {
		return nil, err
	}
	page.Items = items
	return page, nil
}
