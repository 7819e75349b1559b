package util

import "testing"

func TestGetEnvDefaults(t *testing.T) {
	t.Setenv("CHATLENS_K", "7")
	t.Setenv("CHATLENS_RATE", "2.5")
	t.Setenv("CHATLENS_BAD", "seven")
	t.Setenv("CHATLENS_DEBUG", "TRUE")
	t.Setenv("CHATLENS_EMPTY", "")

	if got := GetEnvInt("CHATLENS_K", 5); got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
	if got := GetEnvInt("CHATLENS_BAD", 5); got != 5 {
		t.Fatalf("expected fallback 5, got %d", got)
	}
	if got := GetEnvInt("CHATLENS_MISSING", 5); got != 5 {
		t.Fatalf("expected fallback 5, got %d", got)
	}
	if got := GetEnvNumeric("CHATLENS_RATE", 1); got != 2.5 {
		t.Fatalf("expected 2.5, got %v", got)
	}
	if !GetEnvBool("CHATLENS_DEBUG", false) {
		t.Fatal("expected TRUE to parse as true")
	}
	if GetEnvBool("CHATLENS_BAD", false) {
		t.Fatal("expected invalid bool to fall back")
	}
	if got := GetEnvString("CHATLENS_EMPTY", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback for empty value, got %q", got)
	}
	if got := GetEnv("CHATLENS_MISSING"); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}
