package core_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"stocktrack/internal/core"
	"stocktrack/internal/store"
)

func newTestService(t *testing.T) (*core.Service, core.Store) {
	t.Helper()

	dsn := "sqlite://" + filepath.Join(t.TempDir(), "test.db")
	s, err := store.Open(dsn)
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("store.Init() error = %v", err)
	}
	return core.NewService(s), s
}

func intPtr(n int) *int { return &n }

func TestCreate_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		input     core.ProductInput
		wantField string
	}{
		{"empty name", core.ProductInput{Name: ""}, "name"},
		{"whitespace name", core.ProductInput{Name: "   "}, "name"},
		{"negative stock", core.ProductInput{Name: "Flour", Stock: intPtr(-1)}, "stock"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.input)
			var verr *core.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Create() error = %v, want ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("verr.Field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestCreate_DefaultsStockToZero(t *testing.T) {
	svc, _ := newTestService(t)

	p, err := svc.Create(context.Background(), core.ProductInput{Name: "Flour"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if p.Stock != 0 {
		t.Errorf("p.Stock = %d, want 0", p.Stock)
	}
}

func TestUpdate_DefaultUserInfo(t *testing.T) {
	svc, s := newTestService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, core.ProductInput{Name: "Flour", Stock: intPtr(5)})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := svc.Update(ctx, p.ID, core.ProductInput{Name: "Flour", Stock: intPtr(9)}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	entries, err := s.History(ctx, p.ID)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("History() returned %d entries, want 1", len(entries))
	}
	if entries[0].UserInfo != core.DefaultUserInfo {
		t.Errorf("UserInfo = %q, want %q", entries[0].UserInfo, core.DefaultUserInfo)
	}
}

func TestUpdate_ExplicitUserInfo(t *testing.T) {
	svc, s := newTestService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, core.ProductInput{Name: "Flour", Stock: intPtr(5)})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, err = svc.Update(ctx, p.ID, core.ProductInput{
		Name: "Flour", Stock: intPtr(2), UserInfo: "warehouse-7",
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	entries, err := s.History(ctx, p.ID)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if entries[0].UserInfo != "warehouse-7" {
		t.Errorf("UserInfo = %q, want %q", entries[0].UserInfo, "warehouse-7")
	}
}

func TestCreate_Conflict(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, core.ProductInput{Name: "Flour"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, err := svc.Create(ctx, core.ProductInput{Name: "Flour"})
	var conflict *core.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("Create() error = %v, want ConflictError", err)
	}
}
