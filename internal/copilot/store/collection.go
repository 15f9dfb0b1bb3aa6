package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/copilot/internal/copilot/metrics"
)

// Load reads the named document as a JSON array of T. A missing document is
// an empty collection.
func Load[T any](ctx context.Context, st Store, name string) ([]T, error) {
	raw, err := st.Read(ctx, name)
	switch {
	case errors.Is(err, ErrNotFound):
		metrics.RecordDocumentOp(name, "load", "missing")
		return []T{}, nil
	case err != nil:
		metrics.RecordDocumentOp(name, "load", "error")
		return nil, fmt.Errorf("%w: read %s: %v", ErrUnavailable, name, err)
	}

	var records []T
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &records); err != nil {
			metrics.RecordDocumentOp(name, "load", "corrupt")
			return nil, fmt.Errorf("%w: decode %s: %v", ErrUnavailable, name, err)
		}
	}
	if records == nil {
		records = []T{}
	}

	metrics.RecordDocumentOp(name, "load", "ok")
	return records, nil
}

// Save replaces the named document with records, pretty printed with two
// space indentation.
func Save[T any](ctx context.Context, st Store, name string, records []T) error {
	if records == nil {
		records = []T{}
	}

	raw, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		metrics.RecordDocumentOp(name, "save", "error")
		return fmt.Errorf("%w: encode %s: %v", ErrUnavailable, name, err)
	}
	raw = append(raw, '\n')

	if err := st.Write(ctx, name, raw); err != nil {
		metrics.RecordDocumentOp(name, "save", "error")
		return fmt.Errorf("%w: write %s: %v", ErrUnavailable, name, err)
	}

	metrics.RecordDocumentOp(name, "save", "ok")
	return nil
}
