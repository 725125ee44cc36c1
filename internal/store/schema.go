package store

import (
	"context"
	"fmt"
)

// change_date is stored as text in a fixed-width UTC layout so that
// lexicographic order matches chronological order across all dialects.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		unit TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		brand TEXT NOT NULL DEFAULT '',
		stock INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT '',
		image TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS inventory_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		product_id INTEGER NOT NULL,
		old_quantity INTEGER NOT NULL,
		new_quantity INTEGER NOT NULL,
		change_date TEXT NOT NULL,
		user_info TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_history_product
		ON inventory_history (product_id)`,
}

var stoolapSchema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		unit TEXT NOT NULL,
		category TEXT NOT NULL,
		brand TEXT NOT NULL,
		stock INTEGER NOT NULL,
		status TEXT NOT NULL,
		image TEXT NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_products_name
		ON products (name)`,
	`CREATE TABLE IF NOT EXISTS inventory_history (
		id INTEGER PRIMARY KEY,
		product_id INTEGER NOT NULL,
		old_quantity INTEGER NOT NULL,
		new_quantity INTEGER NOT NULL,
		change_date TEXT NOT NULL,
		user_info TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_history_product
		ON inventory_history (product_id)`,
}

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id BIGINT NOT NULL AUTO_INCREMENT,
		name VARCHAR(255) NOT NULL,
		unit VARCHAR(255) NOT NULL DEFAULT '',
		category VARCHAR(255) NOT NULL DEFAULT '',
		brand VARCHAR(255) NOT NULL DEFAULT '',
		stock INT NOT NULL DEFAULT 0,
		status VARCHAR(255) NOT NULL DEFAULT '',
		image TEXT NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY idx_products_name (name)
	)`,
	`CREATE TABLE IF NOT EXISTS inventory_history (
		id BIGINT NOT NULL AUTO_INCREMENT,
		product_id BIGINT NOT NULL,
		old_quantity INT NOT NULL,
		new_quantity INT NOT NULL,
		change_date VARCHAR(40) NOT NULL,
		user_info VARCHAR(255) NOT NULL,
		PRIMARY KEY (id),
		KEY idx_history_product (product_id)
	)`,
}

// Init creates the schema if it does not already exist.
func (s *SQL) Init(ctx context.Context) error {
	var stmts []string
	switch s.dialect {
	case dialectStoolap:
		stmts = stoolapSchema
	case dialectMySQL:
		stmts = mysqlSchema
	default:
		stmts = sqliteSchema
	}

	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("initializing schema: %w", err)
		}
	}
	return nil
}
