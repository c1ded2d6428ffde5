// internal/catalog/service.go
package catalog

import (
	"context"
)

// Service defines the interface for the catalog store.
type Service interface {
	Load(ctx context.Context) error
	Persist(ctx context.Context) error
	Add(ctx context.Context, record Record) Result
	FindByTitle(ctx context.Context, query string) []Record
	FindByISBN(ctx context.Context, isbn string) (Record, bool)
	ListAll(ctx context.Context) []Record
	Issue(ctx context.Context, isbn string) Result
	Return(ctx context.Context, isbn string) Result
}

// ResultKind identifies the outcome of a mutating operation.
type ResultKind int

const (
	Added ResultKind = iota + 1
	Issued
	Returned
	NotFound
	AlreadyIssued
	AlreadyAvailable
	// UnknownStatus marks a record whose status is neither available nor
	// issued, so no transition applies.
	UnknownStatus
)

func (k ResultKind) String() string {
	switch k {
	case Added:
		return "added"
	case Issued:
		return "issued"
	case Returned:
		return "returned"
	case NotFound:
		return "not_found"
	case AlreadyIssued:
		return "already_issued"
	case AlreadyAvailable:
		return "already_available"
	case UnknownStatus:
		return "unknown_status"
	default:
		return "unknown"
	}
}

// Result describes what a mutation did. Record holds the affected record
// after the mutation. PersistErr is set when the in-memory change succeeded
// but could not be written to storage.
type Result struct {
	Kind       ResultKind
	Record     Record
	PersistErr error
}

// OK reports whether the in-memory mutation took place, regardless of
// whether it was persisted.
func (r Result) OK() bool {
	switch r.Kind {
	case Added, Issued, Returned:
		return true
	default:
		return false
	}
}
