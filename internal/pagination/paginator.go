// Package pagination implements offset pagination with a fixed page size.
//
// Page numbers come from user input, so resolving a page never fails: a
// missing or malformed number yields the first page and a number outside
// [1, NumPages] yields the last one.
package pagination

import "strconv"

// DefaultPerPage is used when a non-positive page size is configured.
const DefaultPerPage = 10

// Paginator splits Count items into pages of PerPage.
type Paginator struct {
	Count   int
	PerPage int
}

// New returns a paginator over count items.
func New(count, perPage int) Paginator {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if count < 0 {
		count = 0
	}
	return Paginator{Count: count, PerPage: perPage}
}

// NumPages is the total page count. An empty collection still has one page.
func (p Paginator) NumPages() int {
	if p.Count == 0 {
		return 1
	}
	return (p.Count + p.PerPage - 1) / p.PerPage
}

// Page resolves the raw "page" query value.
func (p Paginator) Page(raw string) Page {
	numPages := p.NumPages()

	number, err := strconv.Atoi(raw)
	switch {
	case err != nil:
		number = 1
	case number < 1 || number > numPages:
		number = numPages
	}

	return Page{
		Number:   number,
		NumPages: numPages,
		Count:    p.Count,
		PerPage:  p.PerPage,
	}
}

// Page is a resolved page within a paginator.
type Page struct {
	Number   int
	NumPages int
	Count    int
	PerPage  int
}

// Offset is the index of the first item on the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.PerPage
}

// Limit is the page size.
func (p Page) Limit() int {
	return p.PerPage
}

func (p Page) HasPrevious() bool { return p.Number > 1 }
func (p Page) HasNext() bool     { return p.Number < p.NumPages }
func (p Page) HasOtherPages() bool {
	return p.HasPrevious() || p.HasNext()
}

func (p Page) PreviousNumber() int { return p.Number - 1 }
func (p Page) NextNumber() int     { return p.Number + 1 }

// Numbers lists every page number, for rendering page links.
func (p Page) Numbers() []int {
	nums := make([]int, p.NumPages)
	for i := range nums {
		nums[i] = i + 1
	}
	return nums
}
