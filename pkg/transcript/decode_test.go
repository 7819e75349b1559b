package transcript

import (
	"errors"
	"testing"
	"unicode/utf16"
)

func TestDecodeUTF8(t *testing.T) {
	got, err := Decode([]byte("12/01/2024, 10:00 AM - Zoë: héllo 😀"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "12/01/2024, 10:00 AM - Zoë: héllo 😀" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestDecodeStripsBOM(t *testing.T) {
	got, err := Decode(append([]byte{0xEF, 0xBB, 0xBF}, "abc"...))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "abc" {
		t.Fatalf("expected BOM stripped, got %q", got)
	}
}

func TestDecodeUTF16LE(t *testing.T) {
	units := utf16.Encode([]rune("Alice: hi"))
	raw := []byte{0xFF, 0xFE}
	for _, u := range units {
		raw = append(raw, byte(u), byte(u>>8))
	}

	got, err := Decode(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Alice: hi" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestDecodeRejectsInvalidUTF8(t *testing.T) {
	// "Café" in Latin-1
	_, err := Decode([]byte{'C', 'a', 'f', 0xE9, ' ', 'o', 'k'})
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
}
