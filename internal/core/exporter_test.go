package core_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"stocktrack/internal/core"
)

func TestExport_HeaderAndRows(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, core.ProductInput{
		Name: "Flour", Unit: "kg", Category: "Baking", Brand: "Acme",
		Stock: intPtr(12), Status: "active", Image: "flour.png",
	}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	var buf bytes.Buffer
	if err := svc.Export(ctx, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("Export() wrote %d lines, want 2", len(lines))
	}
	if lines[0] != "id,name,unit,category,brand,stock,status,image" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], ",Flour,kg,Baking,Acme,12,active,flour.png") {
		t.Errorf("row = %q", lines[1])
	}
}

func TestExport_QuotesSpecialCharacters(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, core.ProductInput{Name: `a,b"c`}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	var buf bytes.Buffer
	if err := svc.Export(ctx, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"a,b""c"`) {
		t.Errorf("Export() output %q does not quote the name", buf.String())
	}
}

func TestExport_EmptyStoreWritesHeaderOnly(t *testing.T) {
	svc, _ := newTestService(t)

	var buf bytes.Buffer
	if err := svc.Export(context.Background(), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if buf.String() != "id,name,unit,category,brand,stock,status,image\n" {
		t.Errorf("Export() = %q, want header only", buf.String())
	}
}

func TestExport_RoundTripsThroughImport(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, in := range []core.ProductInput{
		{Name: "Flour", Unit: "kg", Category: "Baking", Stock: intPtr(12)},
		{Name: "Sugar, raw", Brand: `Sweet "n" Co`, Stock: intPtr(3)},
	} {
		if _, err := svc.Create(ctx, in); err != nil {
			t.Fatalf("Create(%q) error = %v", in.Name, err)
		}
	}

	var buf bytes.Buffer
	if err := svc.Export(ctx, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	other, _ := newTestService(t)
	res, err := other.Import(ctx, &buf)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if res.Added != 2 || res.Skipped != 0 {
		t.Errorf("Import() = %+v, want {Added:2 Skipped:0}", res)
	}

	want, err := svc.List(ctx, core.ListFilter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	got, err := other.List(ctx, core.ListFilter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	for i := range want {
		want[i].ID = 0
		got[i].ID = 0
		if got[i] != want[i] {
			t.Errorf("round trip product %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
