// Package fopbridge provides shared response envelopes for bridge handlers.
package fopbridge

import (
	"encoding/json"

	"github.com/jharlan/tasklane/core/scaffolding/fop"
)

// RecordID is the data model used when returning a create/update ID.
type RecordID struct {
	ID string `json:"id"`
}

// RecordResponse wraps a single record.
type RecordResponse[T any] struct {
	Record T `json:"record"`
}

func NewRecordResponse[T any](record T) RecordResponse[T] {
	return RecordResponse[T]{Record: record}
}

func (r RecordResponse[T]) Encode() ([]byte, string, error) {
	data, err := json.Marshal(r)
	return data, "application/json", err
}

// PageInfo describes the page a listing came back on.
type PageInfo struct {
	Page      int  `json:"page"`
	Size      int  `json:"size"`
	PageTotal int  `json:"pageTotal"`
	HasNext   bool `json:"hasNext"`
}

// PaginatedResponse wraps a page of records.
type PaginatedResponse[T any] struct {
	Records  []T      `json:"records"`
	PageInfo PageInfo `json:"pageInfo"`
}

// NewPaginatedResponse builds the envelope. A full page implies there may
// be another one; callers never over-fetch to find out for sure.
func NewPaginatedResponse[T any](records []T, page fop.Page) PaginatedResponse[T] {
	return PaginatedResponse[T]{
		Records: records,
		PageInfo: PageInfo{
			Page:      page.Number,
			Size:      page.Size,
			PageTotal: len(records),
			HasNext:   len(records) == page.Size,
		},
	}
}

func (p PaginatedResponse[T]) Encode() ([]byte, string, error) {
	data, err := json.Marshal(p)
	return data, "application/json", err
}

// NonPaginatedRecords wraps an unpaged listing.
type NonPaginatedRecords[T any] struct {
	Records []T `json:"records"`
}

func NewNonPaginatedRecords[T any](records []T) NonPaginatedRecords[T] {
	return NonPaginatedRecords[T]{Records: records}
}

func (n NonPaginatedRecords[T]) Encode() ([]byte, string, error) {
	data, err := json.Marshal(n)
	return data, "application/json", err
}
