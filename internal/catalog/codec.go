// internal/catalog/codec.go
package catalog

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
)

// requiredFields must be present as strings on every persisted record.
var requiredFields = []string{"title", "author", "isbn"}

// EncodeRecords serializes records as an indented JSON array.
func EncodeRecords(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("failed to encode catalog: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeRecords parses a persisted catalog. Structurally invalid input
// yields ErrMalformedCatalog; an entry lacking a required field yields
// ErrMalformedRecord.
func DecodeRecords(data []byte) ([]Record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrMalformedCatalog)
	}

	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCatalog, err)
	}

	records := make([]Record, 0, len(raw))
	for i, fields := range raw {
		r, err := decodeRecord(fields)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		records = append(records, r)
	}
	return records, nil
}

func decodeRecord(fields map[string]any) (Record, error) {
	values := make(map[string]string, len(requiredFields))
	for _, key := range requiredFields {
		v, ok := fields[key].(string)
		if !ok {
			return Record{}, fmt.Errorf("%w: missing %q", ErrMalformedRecord, key)
		}
		values[key] = v
	}

	status := StatusAvailable
	if v, present := fields["status"]; present && v != nil {
		s, ok := v.(string)
		if !ok {
			return Record{}, fmt.Errorf("%w: status is not a string", ErrMalformedRecord)
		}
		status = Status(s)
	}

	return NewRecord(values["title"], values["author"], values["isbn"], status), nil
}
