package store

import (
	"context"
	"fmt"
	"time"

	"stocktrack/internal/core"
)

// History returns the stock-change entries for a product, newest first.
// An unknown product yields an empty slice, not an error.
func (s *SQL) History(ctx context.Context, productID int64) ([]core.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, product_id, old_quantity, new_quantity, change_date, user_info
		 FROM inventory_history
		 WHERE product_id = ?
		 ORDER BY change_date DESC`, productID)
	if err != nil {
		return nil, fmt.Errorf("listing history for product %d: %w", productID, err)
	}
	defer rows.Close()

	entries := []core.HistoryEntry{}
	for rows.Next() {
		var e core.HistoryEntry
		var changed string
		if err := rows.Scan(&e.ID, &e.ProductID, &e.OldQuantity, &e.NewQuantity,
			&changed, &e.UserInfo); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		e.ChangeDate, err = time.Parse(timeLayout, changed)
		if err != nil {
			return nil, fmt.Errorf("parsing change date %q: %w", changed, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
