// internal/catalog/domain.go
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Status is the availability of a catalogued book.
type Status string

const (
	StatusAvailable Status = "available"
	StatusIssued    Status = "issued"
)

var (
	ErrMalformedCatalog = errors.New("malformed catalog data")
	ErrMalformedRecord  = errors.New("malformed record")
)

// Record represents one book in the catalog.
type Record struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	ISBN   string `json:"isbn"`
	Status Status `json:"status"`
}

// NewRecord creates a record. The status defaults to available and is
// stored lowercase.
func NewRecord(title, author, isbn string, status ...Status) Record {
	s := StatusAvailable
	if len(status) > 0 {
		s = status[0]
	}
	return Record{
		Title:  title,
		Author: author,
		ISBN:   isbn,
		Status: normalizeStatus(string(s)),
	}
}

func normalizeStatus(s string) Status {
	return Status(strings.ToLower(s))
}

// IsAvailable reports whether the record can be issued.
func (r *Record) IsAvailable() bool {
	return r.Status == StatusAvailable
}

// Issue moves an available record to issued.
func (r *Record) Issue() bool {
	if !r.IsAvailable() {
		return false
	}
	r.Status = StatusIssued
	return true
}

// Return moves an issued record back to available.
func (r *Record) Return() bool {
	if r.Status != StatusIssued {
		return false
	}
	r.Status = StatusAvailable
	return true
}

// String renders the record as a single display line.
func (r Record) String() string {
	return fmt.Sprintf("Title: %s | Author: %s | ISBN: %s | Status: %s",
		r.Title, r.Author, r.ISBN, strings.ToUpper(string(r.Status)))
}
