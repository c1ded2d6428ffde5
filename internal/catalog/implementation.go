// internal/catalog/implementation.go
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Storage is the flat file the catalog is mirrored to. Read must report a
// missing file with an error matching fs.ErrNotExist.
type Storage interface {
	Read() ([]byte, error)
	Write(data []byte) error
	Path() string
}

// service implements the Service interface.
type service struct {
	storage Storage
	records []Record

	logger  Logger
	tracer  trace.Tracer
	meter   metric.Meter
	metrics instruments
}

// NewService creates a catalog store backed by storage and loads whatever
// it currently holds. Load failures are logged and leave the store empty.
func NewService(ctx context.Context, storage Storage, opts ...Option) Service {
	s := &service{
		storage: storage,
		records: []Record{},
	}
	defaultObservability(s)
	for _, opt := range opts {
		opt(s)
	}
	s.metrics = newInstruments(s.meter)

	_ = s.Load(ctx)
	return s
}

// Load replaces the in-memory collection with the persisted one. A missing
// file is not an error. Any other failure resets the collection to empty,
// is logged, and is returned; the file itself is left untouched.
func (s *service) Load(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "catalog.load",
		trace.WithAttributes(attribute.String("catalog.path", s.storage.Path())),
	)
	defer span.End()

	s.records = []Record{}

	data, err := s.storage.Read()
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.InfoContext(ctx, "no catalog file found, starting with empty catalog",
			"path", s.storage.Path())
		return nil
	}
	if err != nil {
		err = fmt.Errorf("failed to read catalog: %w", err)
		s.fail(ctx, span, "error reading catalog file", err)
		return err
	}

	records, err := DecodeRecords(data)
	if err != nil {
		s.fail(ctx, span, "catalog file is corrupted", err)
		return err
	}

	s.records = records
	span.SetAttributes(attribute.Int("records.loaded", len(records)))
	s.logger.InfoContext(ctx, "loaded catalog", "path", s.storage.Path(), "count", len(records))
	return nil
}

// Persist overwrites storage with the full in-memory collection.
func (s *service) Persist(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "catalog.persist",
		trace.WithAttributes(
			attribute.String("catalog.path", s.storage.Path()),
			attribute.Int("records.count", len(s.records)),
		),
	)
	defer span.End()

	data, err := EncodeRecords(s.records)
	if err == nil {
		err = s.storage.Write(data)
	}
	if err != nil {
		err = fmt.Errorf("failed to save catalog: %w", err)
		s.metrics.persistFailures.Add(ctx, 1)
		s.fail(ctx, span, "error saving catalog file", err)
		return err
	}

	s.logger.InfoContext(ctx, "saved catalog", "path", s.storage.Path(), "count", len(s.records))
	return nil
}

// Add appends a record and persists the catalog. It always succeeds in
// memory; a persistence failure is reported through Result.PersistErr.
func (s *service) Add(ctx context.Context, record Record) Result {
	ctx, span := s.tracer.Start(ctx, "catalog.add",
		trace.WithAttributes(attribute.String("record.isbn", record.ISBN)),
	)
	defer span.End()

	if record.Status == "" {
		record.Status = StatusAvailable
	}
	record.Status = normalizeStatus(string(record.Status))

	s.records = append(s.records, record)
	s.logger.InfoContext(ctx, "added book", "book", record.String())

	return s.finish(ctx, span, Result{
		Kind:       Added,
		Record:     record,
		PersistErr: s.Persist(ctx),
	})
}

// FindByTitle returns every record whose title contains query, ignoring
// case, in catalog order.
func (s *service) FindByTitle(ctx context.Context, query string) []Record {
	_, span := s.tracer.Start(ctx, "catalog.find_by_title")
	defer span.End()

	query = strings.ToLower(query)
	matches := make([]Record, 0)
	for _, r := range s.records {
		if strings.Contains(strings.ToLower(r.Title), query) {
			matches = append(matches, r)
		}
	}

	span.SetAttributes(attribute.Int("records.matched", len(matches)))
	return matches
}

// FindByISBN returns the first record whose ISBN equals isbn exactly.
func (s *service) FindByISBN(ctx context.Context, isbn string) (Record, bool) {
	_, span := s.tracer.Start(ctx, "catalog.find_by_isbn",
		trace.WithAttributes(attribute.String("record.isbn", isbn)),
	)
	defer span.End()

	if i := s.indexOf(isbn); i >= 0 {
		return s.records[i], true
	}
	return Record{}, false
}

// ListAll returns a snapshot of the catalog in insertion order.
func (s *service) ListAll(ctx context.Context) []Record {
	_, span := s.tracer.Start(ctx, "catalog.list_all")
	defer span.End()

	snapshot := make([]Record, len(s.records))
	copy(snapshot, s.records)
	return snapshot
}

// Issue marks the first record with the given ISBN as issued.
func (s *service) Issue(ctx context.Context, isbn string) Result {
	return s.transition(ctx, "catalog.issue", isbn, (*Record).Issue, Issued,
		func(st Status) ResultKind {
			if st == StatusIssued {
				return AlreadyIssued
			}
			return UnknownStatus
		})
}

// Return marks the first record with the given ISBN as available again.
func (s *service) Return(ctx context.Context, isbn string) Result {
	return s.transition(ctx, "catalog.return", isbn, (*Record).Return, Returned,
		func(st Status) ResultKind {
			if st == StatusAvailable {
				return AlreadyAvailable
			}
			return UnknownStatus
		})
}

// transition applies move to the record matching isbn and persists on
// success. rejected classifies a refused move by the record's status.
func (s *service) transition(
	ctx context.Context,
	spanName, isbn string,
	move func(*Record) bool,
	done ResultKind,
	rejected func(Status) ResultKind,
) Result {
	ctx, span := s.tracer.Start(ctx, spanName,
		trace.WithAttributes(attribute.String("record.isbn", isbn)),
	)
	defer span.End()

	i := s.indexOf(isbn)
	if i < 0 {
		return s.finish(ctx, span, Result{Kind: NotFound})
	}

	r := &s.records[i]
	if !move(r) {
		return s.finish(ctx, span, Result{Kind: rejected(r.Status), Record: *r})
	}

	result := Result{Kind: done, PersistErr: s.Persist(ctx)}
	result.Record = *r
	s.logger.InfoContext(ctx, "book "+done.String(), "book", r.String())
	return s.finish(ctx, span, result)
}

func (s *service) indexOf(isbn string) int {
	for i := range s.records {
		if s.records[i].ISBN == isbn {
			return i
		}
	}
	return -1
}

// finish records the outcome of a mutation on the span and counters.
func (s *service) finish(ctx context.Context, span trace.Span, result Result) Result {
	span.SetAttributes(
		attribute.String("result.kind", result.Kind.String()),
		attribute.Bool("result.ok", result.OK()),
		attribute.Bool("result.persisted", result.OK() && result.PersistErr == nil),
	)
	s.metrics.mutations.Add(ctx, 1,
		metric.WithAttributes(attribute.String("result", result.Kind.String())))
	return result
}

func (s *service) fail(ctx context.Context, span trace.Span, msg string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	s.logger.ErrorContext(ctx, msg, "path", s.storage.Path(), "error", err)
}
