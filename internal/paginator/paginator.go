// Package paginator splits ordered result sets into fixed-size pages.
//
// Page numbers come straight from the query string. A missing or
// non-numeric number selects the first page, and numbers outside
// 1..NumPages are clamped to the nearest valid page, so every request
// maps to exactly one page. A collection with no items still has one
// (empty) page.
package paginator

import (
	"errors"
	"strconv"
	"strings"
)

// Paginator describes a collection of Total items shown PerPage at a time
type Paginator struct {
	Total   int64
	PerPage int
}

// New creates a paginator. A non-positive perPage is treated as 1.
func New(total int64, perPage int) *Paginator {
	if perPage < 1 {
		perPage = 1
	}
	if total < 0 {
		total = 0
	}
	return &Paginator{Total: total, PerPage: perPage}
}

// NumPages returns ceil(Total/PerPage), and at least 1
func (p *Paginator) NumPages() int {
	if p.Total == 0 {
		return 1
	}
	per := int64(p.PerPage)
	return int((p.Total + per - 1) / per)
}

// Page resolves a raw page number into a page
func (p *Paginator) Page(raw string) Page {
	return p.PageNumber(parseNumber(raw))
}

// PageNumber returns page n, clamped into range
func (p *Paginator) PageNumber(n int) Page {
	numPages := p.NumPages()
	if n < 1 {
		n = 1
	}
	if n > numPages {
		n = numPages
	}
	return Page{
		Number:   n,
		NumPages: numPages,
		PerPage:  p.PerPage,
		Total:    p.Total,
	}
}

func parseNumber(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if errors.Is(err, strconv.ErrRange) {
		// Atoi saturates at the int bounds, which PageNumber clamps
		return n
	}
	if err != nil {
		return 1
	}
	return n
}

// Page is one resolved page of a collection
type Page struct {
	Number   int
	NumPages int
	PerPage  int
	Total    int64
}

// Offset is the index of the first item on the page
func (pg Page) Offset() int {
	return (pg.Number - 1) * pg.PerPage
}

// Limit is the maximum number of items on the page
func (pg Page) Limit() int {
	return pg.PerPage
}

// Len is the number of items actually on the page
func (pg Page) Len() int {
	remaining := pg.Total - int64(pg.Offset())
	if remaining <= 0 {
		return 0
	}
	if remaining > int64(pg.PerPage) {
		return pg.PerPage
	}
	return int(remaining)
}

func (pg Page) HasPrevious() bool { return pg.Number > 1 }
func (pg Page) HasNext() bool     { return pg.Number < pg.NumPages }
func (pg Page) HasOtherPages() bool {
	return pg.HasPrevious() || pg.HasNext()
}

func (pg Page) PreviousNumber() int {
	if !pg.HasPrevious() {
		return pg.Number
	}
	return pg.Number - 1
}

func (pg Page) NextNumber() int {
	if !pg.HasNext() {
		return pg.Number
	}
	return pg.Number + 1
}

// Range returns 1..NumPages for page navigation
func (pg Page) Range() []int {
	numbers := make([]int, pg.NumPages)
	for i := range numbers {
		numbers[i] = i + 1
	}
	return numbers
}

// PageOf is a page together with its items
type PageOf[T any] struct {
	Page
	Items []T
}

// Slice pages an in-memory slice with the same rules as Paginator.Page
func Slice[T any](items []T, perPage int, raw string) PageOf[T] {
	pg := New(int64(len(items)), perPage).Page(raw)
	start := pg.Offset()
	end := start + pg.Len()
	return PageOf[T]{Page: pg, Items: items[start:end]}
}
