package core

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// exportHeader is the fixed column order of exported documents. It matches
// the columns the importer recognizes (plus id, which the importer ignores)
// so an exported file re-imports cleanly.
var exportHeader = []string{"id", "name", "unit", "category", "brand", "stock", "status", "image"}

// Export writes every product as CSV in store-native order. Quoting follows
// RFC 4180: fields containing a comma or double quote are wrapped in double
// quotes with internal quotes doubled.
func (s *Service) Export(ctx context.Context, w io.Writer) error {
	products, err := s.store.All(ctx)
	if err != nil {
		return fmt.Errorf("read products: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, p := range products {
		record := []string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			p.Unit,
			p.Category,
			p.Brand,
			strconv.Itoa(p.Stock),
			p.Status,
			p.Image,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
