// Package feed reads source catalog records.
package feed

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/seokhojung/befunweb/internal/domain"
)

//go:embed sample_catalog.json
var sampleCatalog []byte

// Source yields the ordered source records of one migration pass.
type Source interface {
	Load(ctx context.Context) ([]domain.SourceRecord, error)
}

// New returns a file source for path, or the embedded sample when path is
// empty.
func New(path string) Source {
	if path == "" {
		return Sample()
	}
	return FileSource{Path: path}
}

// FileSource reads a JSON array of records from a file on every Load.
type FileSource struct {
	Path string
}

// Load reads and decodes the feed file.
func (s FileSource) Load(ctx context.Context) ([]domain.SourceRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open feed %s: %w", s.Path, err)
	}
	defer f.Close()

	records, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("read feed %s: %w", s.Path, err)
	}
	return records, nil
}

// StaticSource serves a fixed slice of records.
type StaticSource []domain.SourceRecord

// Load returns a copy of the records.
func (s StaticSource) Load(context.Context) ([]domain.SourceRecord, error) {
	out := make([]domain.SourceRecord, len(s))
	copy(out, s)
	return out, nil
}

// Sample returns the embedded sample catalog.
func Sample() Source {
	return embeddedSource{}
}

type embeddedSource struct{}

func (embeddedSource) Load(ctx context.Context) ([]domain.SourceRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	records, err := Decode(bytes.NewReader(sampleCatalog))
	if err != nil {
		return nil, fmt.Errorf("read sample feed: %w", err)
	}
	return records, nil
}

// Decode parses a JSON array of source records. Only a document that is not
// a JSON array fails. An element that does not decode keeps its position as
// a record carrying DecodeError, with its id when one could be read.
func Decode(r io.Reader) ([]domain.SourceRecord, error) {
	var elems []json.RawMessage
	if err := json.NewDecoder(r).Decode(&elems); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}

	records := make([]domain.SourceRecord, 0, len(elems))
	for i, elem := range elems {
		var rec domain.SourceRecord
		if err := json.Unmarshal(elem, &rec); err != nil {
			id := rec.ID
			if id == "" {
				id = fmt.Sprintf("#%d", i+1)
			}
			rec = domain.SourceRecord{ID: id, DecodeError: fmt.Sprintf("malformed feed record: %v", err)}
		}
		records = append(records, rec)
	}
	return records, nil
}
