package core

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestBOMSkippingReader_StripsBOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("name,stock\n")...)
	r := NewBOMSkippingReader(bytes.NewReader(input))

	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(got) != "name,stock\n" {
		t.Errorf("got %q, want %q", got, "name,stock\n")
	}
}

func TestBOMSkippingReader_NoBOM(t *testing.T) {
	r := NewBOMSkippingReader(strings.NewReader("name,stock\n"))

	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(got) != "name,stock\n" {
		t.Errorf("got %q, want %q", got, "name,stock\n")
	}
}

func TestBOMSkippingReader_ShortInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"one byte", "a"},
		{"two bytes", "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewBOMSkippingReader(strings.NewReader(tt.input))
			got, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if string(got) != tt.input {
				t.Errorf("got %q, want %q", got, tt.input)
			}
		})
	}
}

func TestUTF8Sanitizer_ValidInput(t *testing.T) {
	input := "name,unité,catégorie\n"
	r := NewUTF8Sanitizer(strings.NewReader(input))

	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(got) != input {
		t.Errorf("got %q, want %q", got, input)
	}
}

func TestUTF8Sanitizer_InvalidBytes(t *testing.T) {
	input := []byte{'a', 0xFF, 'b', 0xFE, 'c'}
	r := NewUTF8Sanitizer(bytes.NewReader(input))

	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(got) != "a?b?c" {
		t.Errorf("got %q, want %q", got, "a?b?c")
	}
}

// oneByteReader forces multi-byte runes to straddle read boundaries.
type oneByteReader struct {
	r io.Reader
}

func (o oneByteReader) Read(p []byte) (int, error) {
	if len(p) > 1 {
		p = p[:1]
	}
	return o.r.Read(p)
}

func TestUTF8Sanitizer_RuneSplitAcrossReads(t *testing.T) {
	input := "héllo wörld"
	r := NewUTF8Sanitizer(oneByteReader{strings.NewReader(input)})

	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(got) != input {
		t.Errorf("got %q, want %q", got, input)
	}
}

func TestUTF8Sanitizer_TruncatedRuneAtEOF(t *testing.T) {
	// First two bytes of a three-byte rune, then EOF
	input := []byte{'a', 0xE2, 0x82}
	r := NewUTF8Sanitizer(bytes.NewReader(input))

	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if !strings.HasPrefix(string(got), "a") {
		t.Errorf("got %q, want prefix %q", got, "a")
	}
	for _, b := range got[1:] {
		if b != '?' {
			t.Errorf("trailing byte = %q, want '?'", b)
		}
	}
}
