// Package pagination provides a generic paginated result cursor and a helper
// for draining a cursor into a complete in-memory collection.
//
// Remote entity gateways return Cursor values; callers that need the whole
// result set use DrainAll, which walks the pages sequentially. Sequential
// draining is deliberate: downstream consumers (container enrichment in
// particular) depend on encountering pages in their remote order.
package pagination

import "context"

// Cursor is a single page of a paginated remote query result.
// CurrentPage returns the entities on this page, HasNext reports whether a
// further page exists, and Next fetches the following page.
type Cursor[E any] interface {
	// CurrentPage returns the entities on the current page.
	CurrentPage() []E

	// HasNext reports whether another page can be fetched.
	HasNext() bool

	// Next fetches the next page. It must only be called when HasNext
	// returns true. The supplied context bounds the page fetch.
	Next(ctx context.Context) (Cursor[E], error)
}

// DrainAll walks a cursor to exhaustion and returns every entity in page
// order. A nil cursor drains to an empty slice. Any page-fetch error aborts
// the drain and is returned as-is, so gateway errors (including deadline
// violations) propagate to the caller.
func DrainAll[E any](ctx context.Context, cursor Cursor[E]) ([]E, error) {
	results := make([]E, 0)
	for cursor != nil {
		results = append(results, cursor.CurrentPage()...)
		if !cursor.HasNext() {
			break
		}

		next, err := cursor.Next(ctx)
		if err != nil {
			return nil, err
		}
		cursor = next
	}
	return results, nil
}

// sliceCursor pages over a pre-fetched slice of pages. It backs FromPages.
type sliceCursor[E any] struct {
	pages [][]E
	index int
}

// FromPages builds a Cursor over already-materialized pages. Gateways whose
// remote protocol returns everything in one response use it to satisfy the
// cursor contract, and tests use it to script multi-page results.
func FromPages[E any](pages [][]E) Cursor[E] {
	if len(pages) == 0 {
		pages = [][]E{{}}
	}
	return &sliceCursor[E]{pages: pages}
}

func (c *sliceCursor[E]) CurrentPage() []E {
	return c.pages[c.index]
}

func (c *sliceCursor[E]) HasNext() bool {
	return c.index < len(c.pages)-1
}

func (c *sliceCursor[E]) Next(_ context.Context) (Cursor[E], error) {
	return &sliceCursor[E]{pages: c.pages, index: c.index + 1}, nil
}
