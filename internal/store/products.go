package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"stocktrack/internal/core"
)

// sortColumns maps accepted sort keys to column names. Anything else
// falls back to name.
var sortColumns = map[string]string{
	"name":     "name",
	"category": "category",
	"brand":    "brand",
	"stock":    "stock",
}

const productColumns = "id, name, unit, category, brand, stock, status, image"

// List returns products matching the filter, sorted per its Sort and Order.
func (s *SQL) List(ctx context.Context, f core.ListFilter) ([]core.Product, error) {
	var conds []string
	var args []any

	if f.Search != "" {
		conds = append(conds, "LOWER(name) LIKE ?")
		args = append(args, "%"+strings.ToLower(f.Search)+"%")
	}
	if f.Category != "" && f.Category != "All" {
		conds = append(conds, "category = ?")
		args = append(args, f.Category)
	}

	query := "SELECT " + productColumns + " FROM products"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	col, ok := sortColumns[f.Sort]
	if !ok {
		col = "name"
	}
	dir := "ASC"
	if f.Order == "desc" {
		dir = "DESC"
	}
	query += " ORDER BY " + col + " " + dir

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// Categories returns the distinct non-empty categories in use.
func (s *SQL) Categories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT category FROM products WHERE category <> '' ORDER BY category ASC")
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// Get returns a single product by id.
func (s *SQL) Get(ctx context.Context, id int64) (core.Product, error) {
	var p core.Product
	err := s.db.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = ?", id).
		Scan(&p.ID, &p.Name, &p.Unit, &p.Category, &p.Brand, &p.Stock, &p.Status, &p.Image)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Product{}, &core.NotFoundError{ID: id}
	}
	if err != nil {
		return core.Product{}, fmt.Errorf("getting product %d: %w", id, err)
	}
	return p, nil
}

// Create inserts a new product. The name must be unique.
func (s *SQL) Create(ctx context.Context, p core.Product) (core.Product, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Product{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var existing int64
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM products WHERE name = ?", p.Name).Scan(&existing)
	if err == nil {
		return core.Product{}, &core.ConflictError{Name: p.Name}
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return core.Product{}, fmt.Errorf("checking product name: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO products (name, unit, category, brand, stock, status, image)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Unit, p.Category, p.Brand, p.Stock, p.Status, p.Image)
	if err != nil {
		return core.Product{}, fmt.Errorf("inserting product: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.Product{}, fmt.Errorf("reading product id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return core.Product{}, fmt.Errorf("committing product: %w", err)
	}

	p.ID = id
	return p, nil
}

// Update replaces all fields of a product. When the stock quantity changes,
// a history entry is recorded in the same transaction.
func (s *SQL) Update(ctx context.Context, id int64, p core.Product, userInfo string) (core.Product, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Product{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var oldStock int
	err = tx.QueryRowContext(ctx,
		"SELECT stock FROM products WHERE id = ?", id).Scan(&oldStock)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Product{}, &core.NotFoundError{ID: id}
	}
	if err != nil {
		return core.Product{}, fmt.Errorf("getting product %d: %w", id, err)
	}

	var other int64
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM products WHERE name = ? AND id <> ?", p.Name, id).Scan(&other)
	if err == nil {
		return core.Product{}, &core.ConflictError{Name: p.Name}
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return core.Product{}, fmt.Errorf("checking product name: %w", err)
	}

	if p.Stock != oldStock {
		changed := time.Now().UTC().Format(timeLayout)
		_, err = tx.ExecContext(ctx,
			`INSERT INTO inventory_history (product_id, old_quantity, new_quantity, change_date, user_info)
			 VALUES (?, ?, ?, ?, ?)`,
			id, oldStock, p.Stock, changed, userInfo)
		if err != nil {
			return core.Product{}, fmt.Errorf("recording stock change: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE products
		 SET name = ?, unit = ?, category = ?, brand = ?, stock = ?, status = ?, image = ?
		 WHERE id = ?`,
		p.Name, p.Unit, p.Category, p.Brand, p.Stock, p.Status, p.Image, id)
	if err != nil {
		return core.Product{}, fmt.Errorf("updating product %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return core.Product{}, fmt.Errorf("committing update: %w", err)
	}

	p.ID = id
	return p, nil
}

// Delete removes a product and its history entries.
func (s *SQL) Delete(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var existing int64
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM products WHERE id = ?", id).Scan(&existing)
	if errors.Is(err, sql.ErrNoRows) {
		return &core.NotFoundError{ID: id}
	}
	if err != nil {
		return fmt.Errorf("getting product %d: %w", id, err)
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM inventory_history WHERE product_id = ?", id); err != nil {
		return fmt.Errorf("deleting history for product %d: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM products WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting product %d: %w", id, err)
	}

	return tx.Commit()
}

// ExistsByName reports whether a product with the exact name exists.
func (s *SQL) ExistsByName(ctx context.Context, name string) (bool, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM products WHERE name = ?", name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking product name: %w", err)
	}
	return true, nil
}

// All returns every product in storage order.
func (s *SQL) All(ctx context.Context) ([]core.Product, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+productColumns+" FROM products")
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func scanProducts(rows *sql.Rows) ([]core.Product, error) {
	products := []core.Product{}
	for rows.Next() {
		var p core.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Unit, &p.Category, &p.Brand,
			&p.Stock, &p.Status, &p.Image); err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
