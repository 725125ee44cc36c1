package core

import (
	"context"
	"strings"
)

// DefaultUserInfo is recorded on history entries when the caller does not
// identify itself.
const DefaultUserInfo = "system"

// Service implements the inventory operations on top of an injected Store.
type Service struct {
	store Store
}

// NewService creates a Service backed by the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// ProductInput is the client payload for creating or updating a product.
// Stock is a pointer so an absent field can be distinguished from zero.
type ProductInput struct {
	Name     string `json:"name"`
	Unit     string `json:"unit"`
	Category string `json:"category"`
	Brand    string `json:"brand"`
	Stock    *int   `json:"stock"`
	Status   string `json:"status"`
	Image    string `json:"image"`

	// UserInfo identifies who made the change; recorded on history entries
	// when a stock change is detected during update.
	UserInfo string `json:"userInfo"`
}

// validate checks the input and resolves it into a Product with defaults
// applied: absent stock is 0, unspecified text fields stay empty.
func (in ProductInput) validate() (Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Product{}, &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	stock := 0
	if in.Stock != nil {
		if *in.Stock < 0 {
			return Product{}, &ValidationError{Field: "stock", Reason: "must be a non-negative integer"}
		}
		stock = *in.Stock
	}

	return Product{
		Name:     name,
		Unit:     in.Unit,
		Category: in.Category,
		Brand:    in.Brand,
		Stock:    stock,
		Status:   in.Status,
		Image:    in.Image,
	}, nil
}

// List returns products matching the filter. Malformed filter values degrade
// to defaults rather than failing.
func (s *Service) List(ctx context.Context, f ListFilter) ([]Product, error) {
	return s.store.List(ctx, f)
}

// Categories returns the distinct non-empty category values.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.store.Categories(ctx)
}

// Create validates the input and inserts a new product.
// Returns *ValidationError for bad input and *ConflictError when the name is
// already taken.
func (s *Service) Create(ctx context.Context, in ProductInput) (Product, error) {
	p, err := in.validate()
	if err != nil {
		return Product{}, err
	}
	return s.store.Create(ctx, p)
}

// Update validates the input and overwrites the product with the given id.
// When the resolved stock differs from the stored one, a history entry
// recording the old and new quantities is appended as part of the same
// operation.
func (s *Service) Update(ctx context.Context, id int64, in ProductInput) (Product, error) {
	p, err := in.validate()
	if err != nil {
		return Product{}, err
	}

	userInfo := in.UserInfo
	if userInfo == "" {
		userInfo = DefaultUserInfo
	}

	return s.store.Update(ctx, id, p, userInfo)
}

// Delete removes the product and its history entries.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}

// History returns the product's stock-change log, most recent first.
// An unknown id yields an empty slice.
func (s *Service) History(ctx context.Context, productID int64) ([]HistoryEntry, error) {
	return s.store.History(ctx, productID)
}

// Ping verifies the backing store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
