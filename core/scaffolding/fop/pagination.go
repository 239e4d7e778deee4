// Package fop carries filter/order/page values shared by list queries.
package fop

import (
	"fmt"
	"strconv"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Page is a 1-based page request.
type Page struct {
	Number int
	Size   int
}

// DefaultPage is the first page at the default size.
func DefaultPage() Page {
	return Page{Number: 1, Size: defaultPageSize}
}

// ParsePage builds a Page from raw query-string values; empty strings fall
// back to page 1 at the default size.
func ParsePage(page, size string) (Page, error) {
	number := 1
	if page != "" {
		var err error
		number, err = strconv.Atoi(page)
		if err != nil {
			return Page{}, fmt.Errorf("page conversion: %w", err)
		}
	}
	if number < 1 {
		return Page{}, fmt.Errorf("page value too small, must be 1 or greater")
	}

	rows := defaultPageSize
	if size != "" {
		var err error
		rows, err = strconv.Atoi(size)
		if err != nil {
			return Page{}, fmt.Errorf("page size conversion: %w", err)
		}
	}
	if rows <= 0 {
		return Page{}, fmt.Errorf("page size too small, must be larger than 0")
	}
	if rows > maxPageSize {
		return Page{}, fmt.Errorf("page size too large, must be %d or less", maxPageSize)
	}

	return Page{Number: number, Size: rows}, nil
}

// Offset converts the 1-based page number into a row offset.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}
