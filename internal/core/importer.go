package core

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"stocktrack/internal/logging"

	"github.com/google/uuid"
)

// ImportResult is the terminal tally of one import run.
type ImportResult struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// importColumns are the recognized CSV header names. Unknown columns are
// ignored so files exported with extra columns (id included) re-import
// cleanly.
var importColumns = map[string]bool{
	"name":     true,
	"unit":     true,
	"category": true,
	"brand":    true,
	"stock":    true,
	"status":   true,
	"image":    true,
}

// Import reads a CSV document (header row first) and inserts one product per
// row, in file order. A row is skipped when its name is empty or when a
// product with that name already exists. Each row is checked against live
// store state, so a name inserted by an earlier row of the same run also
// counts as existing.
//
// The whole file is parsed before any insertion, so an unreadable or
// malformed source fails with *ImportError and leaves the store untouched.
// A storage fault mid-run aborts the run but keeps prior insertions; there
// is no rollback.
func (s *Service) Import(ctx context.Context, r io.Reader) (ImportResult, error) {
	var result ImportResult

	// BOM and invalid UTF-8 are common in spreadsheet exports; sanitize
	// before the CSV reader sees the bytes.
	cr := csv.NewReader(NewUTF8Sanitizer(NewBOMSkippingReader(r)))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = false

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return result, nil
	}
	if err != nil {
		return result, &ImportError{Err: fmt.Errorf("read header: %w", err)}
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if importColumns[name] {
			columns[name] = i
		}
	}

	records, err := cr.ReadAll()
	if err != nil {
		return result, &ImportError{Err: fmt.Errorf("parse rows: %w", err)}
	}

	logger := logging.WithFields(ctx, "import_run", uuid.NewString())
	logger.Info("import started", "rows", len(records))

	for _, record := range records {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		name := field(record, columns, "name")
		if name == "" {
			result.Skipped++
			continue
		}

		exists, err := s.store.ExistsByName(ctx, name)
		if err != nil {
			return result, fmt.Errorf("check existing name: %w", err)
		}
		if exists {
			result.Skipped++
			continue
		}

		// Invalid or missing stock imports as 0; the raw parsed value is
		// accepted as-is.
		stock, err := strconv.Atoi(strings.TrimSpace(field(record, columns, "stock")))
		if err != nil {
			stock = 0
		}

		p := Product{
			Name:     name,
			Unit:     field(record, columns, "unit"),
			Category: field(record, columns, "category"),
			Brand:    field(record, columns, "brand"),
			Stock:    stock,
			Status:   field(record, columns, "status"),
			Image:    field(record, columns, "image"),
		}

		if _, err := s.store.Create(ctx, p); err != nil {
			return result, fmt.Errorf("insert %q: %w", name, err)
		}
		result.Added++
	}

	logger.Info("import finished", "added", result.Added, "skipped", result.Skipped)
	return result, nil
}

// field returns the named column of a record, or "" when the column is
// absent from the header or the record is too short.
func field(record []string, columns map[string]int, name string) string {
	i, ok := columns[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}
