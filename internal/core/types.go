// Package core provides the business logic for the inventory service:
// product CRUD with name uniqueness, the stock-change history log, and the
// CSV import/export pipelines. Storage is abstracted behind the Store
// interface so the service never touches SQL directly.
package core

import (
	"context"
	"time"
)

// Product is an inventory item record. Name is unique across live products;
// all text fields other than Name default to the empty string.
type Product struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Unit     string `json:"unit"`
	Category string `json:"category"`
	Brand    string `json:"brand"`
	Stock    int    `json:"stock"`
	Status   string `json:"status"`
	Image    string `json:"image"`
}

// HistoryEntry is an audit record of a stock-quantity change for one
// product. Entries are written only when an update changes the stock value,
// are never mutated, and are removed only when their product is deleted.
type HistoryEntry struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"product_id"`
	OldQuantity int       `json:"old_quantity"`
	NewQuantity int       `json:"new_quantity"`
	ChangeDate  time.Time `json:"change_date"`
	UserInfo    string    `json:"user_info"`
}

// ListFilter holds the (all optional) query parameters for listing products.
// Malformed values never fail: unknown sort fields fall back to name,
// unknown orders to ascending, and the category sentinels "" and "All"
// disable the category filter.
type ListFilter struct {
	// Search matches case-insensitively anywhere in the product name.
	Search string

	// Category is an exact-match filter; "" or "All" means no filter.
	Category string

	// Sort is one of name, category, brand, stock.
	Sort string

	// Order is asc or desc.
	Order string
}

// Store is the persistence boundary for products and their history.
//
// Implementations map storage-level conditions to the core error types:
// a missing row surfaces as *NotFoundError and a duplicate name as
// *ConflictError. Anything else is a storage fault.
type Store interface {
	// List returns products matching the filter, sorted per its resolved
	// field and order. The result is never nil.
	List(ctx context.Context, f ListFilter) ([]Product, error)

	// Categories returns the distinct non-empty category values.
	Categories(ctx context.Context) ([]string, error)

	// Get returns the product with the given id.
	Get(ctx context.Context, id int64) (Product, error)

	// Create inserts a new product and returns it with its assigned id.
	Create(ctx context.Context, p Product) (Product, error)

	// Update overwrites all mutable fields of the product with the given id.
	// When the new stock differs from the stored stock it appends a history
	// entry, capturing the pre-update stock, within the same transaction.
	Update(ctx context.Context, id int64, p Product, userInfo string) (Product, error)

	// Delete removes the product and all of its history entries.
	Delete(ctx context.Context, id int64) error

	// History returns the product's history entries, most recent first.
	// Unknown ids yield an empty slice, not an error.
	History(ctx context.Context, productID int64) ([]HistoryEntry, error)

	// ExistsByName reports whether a product with exactly this name exists.
	ExistsByName(ctx context.Context, name string) (bool, error)

	// All returns every product in store-native order.
	All(ctx context.Context) ([]Product, error)

	// Ping verifies the underlying store is reachable.
	Ping(ctx context.Context) error
}
