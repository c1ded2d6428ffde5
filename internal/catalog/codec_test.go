package catalog

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestEncodeRecordsFormat(t *testing.T) {
	data, err := EncodeRecords([]Record{NewRecord("Dune", "Herbert", "ISBN-1")})
	require.NoError(t, err)

	want := `[
  {
    "title": "Dune",
    "author": "Herbert",
    "isbn": "ISBN-1",
    "status": "available"
  }
]
`
	assert.Equal(t, want, string(data))
}

func TestEncodeRecordsEmpty(t *testing.T) {
	data, err := EncodeRecords(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(string(data)))
}

func TestEncodeRecordsKeepsMarkup(t *testing.T) {
	data, err := EncodeRecords([]Record{NewRecord("Q&A <1>", "Ñandú", "X")})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Q&A <1>"`)
	assert.Contains(t, string(data), `"Ñandú"`)
}

func TestDecodeRecordsMissingStatus(t *testing.T) {
	records, err := DecodeRecords([]byte(`[{"title":"Dune","author":"Herbert","isbn":"ISBN-1"}]`))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, StatusAvailable, records[0].Status)
}

func TestDecodeRecordsNullStatus(t *testing.T) {
	records, err := DecodeRecords([]byte(`[{"title":"Dune","author":"Herbert","isbn":"ISBN-1","status":null}]`))
	require.NoError(t, err)
	assert.Equal(t, StatusAvailable, records[0].Status)
}

func TestDecodeRecordsLowercasesStatus(t *testing.T) {
	records, err := DecodeRecords([]byte(`[{"title":"Dune","author":"Herbert","isbn":"ISBN-1","status":"ISSUED"}]`))
	require.NoError(t, err)
	assert.Equal(t, StatusIssued, records[0].Status)
}

func TestDecodeRecordsIgnoresExtraKeys(t *testing.T) {
	records, err := DecodeRecords([]byte(`[{"title":"Dune","author":"Herbert","isbn":"ISBN-1","shelf":"B2"}]`))
	require.NoError(t, err)
	assert.Equal(t, NewRecord("Dune", "Herbert", "ISBN-1"), records[0])
}

func TestDecodeRecordsEmptyArray(t *testing.T) {
	records, err := DecodeRecords([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDecodeRecordsMalformedCatalog(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ``},
		{"truncated", `[{"title":"Dune"`},
		{"not json", `this is not json`},
		{"object", `{"title":"Dune","author":"Herbert","isbn":"ISBN-1"}`},
		{"array of strings", `["Dune"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRecords([]byte(tt.data))
			assert.True(t, errors.Is(err, ErrMalformedCatalog), "got %v", err)
		})
	}
}

func TestDecodeRecordsMalformedRecord(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing title", `[{"author":"Herbert","isbn":"ISBN-1"}]`},
		{"missing author", `[{"title":"Dune","isbn":"ISBN-1"}]`},
		{"missing isbn", `[{"title":"Dune","author":"Herbert"}]`},
		{"null isbn", `[{"title":"Dune","author":"Herbert","isbn":null}]`},
		{"numeric isbn", `[{"title":"Dune","author":"Herbert","isbn":42}]`},
		{"numeric status", `[{"title":"Dune","author":"Herbert","isbn":"ISBN-1","status":1}]`},
		{"null entry", `[null]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRecords([]byte(tt.data))
			assert.True(t, errors.Is(err, ErrMalformedRecord), "got %v", err)
		})
	}
}

func TestDecodeRecordsReportsEntryIndex(t *testing.T) {
	_, err := DecodeRecords([]byte(`[
		{"title":"Dune","author":"Herbert","isbn":"ISBN-1"},
		{"title":"Emma","author":"Austen"}
	]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry 1")
	assert.Contains(t, err.Error(), `"isbn"`)
}

func recordGen() *rapid.Generator[Record] {
	return rapid.Custom(func(t *rapid.T) Record {
		return NewRecord(
			rapid.String().Draw(t, "title"),
			rapid.String().Draw(t, "author"),
			rapid.String().Draw(t, "isbn"),
			rapid.SampledFrom([]Status{"available", "issued", "AVAILABLE", "Issued"}).Draw(t, "status"),
		)
	})
}

func TestRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		records := rapid.SliceOf(recordGen()).Draw(t, "records")

		data, err := EncodeRecords(records)
		if err != nil {
			t.Fatalf("EncodeRecords: %v", err)
		}
		decoded, err := DecodeRecords(data)
		if err != nil {
			t.Fatalf("DecodeRecords: %v", err)
		}

		if len(decoded) != len(records) {
			t.Fatalf("decoded %d records, want %d", len(decoded), len(records))
		}
		for i := range records {
			if decoded[i] != records[i] {
				t.Fatalf("record %d = %+v, want %+v", i, decoded[i], records[i])
			}
			if decoded[i].Status != Status(strings.ToLower(string(decoded[i].Status))) {
				t.Fatalf("record %d status %q is not lowercase", i, decoded[i].Status)
			}
		}
	})
}
