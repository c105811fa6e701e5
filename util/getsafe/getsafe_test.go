package getsafe

import "testing"

func TestString(t *testing.T) {
	payload := map[string]any{
		"title":  "Doctor",
		"number": 7,
	}

	if got := String(payload, "title"); got != "Doctor" {
		t.Fatalf("expected Doctor, got %q", got)
	}
	if got := String(payload, "number"); got != "" {
		t.Fatalf("expected empty string for non-string value, got %q", got)
	}
	if got := String(payload, "missing"); got != "" {
		t.Fatalf("expected empty string for missing key, got %q", got)
	}
}

func TestInt(t *testing.T) {
	payload := map[string]any{
		"decoded": float64(42),
		"native":  7,
		"text":    "nope",
	}

	if got := Int(payload, "decoded"); got != 42 {
		t.Fatalf("expected 42 from a decoded JSON number, got %d", got)
	}
	if got := Int(payload, "native"); got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
	if got := Int(payload, "text"); got != 0 {
		t.Fatalf("expected 0 for non-numeric value, got %d", got)
	}
	if got := Int(payload, "missing"); got != 0 {
		t.Fatalf("expected 0 for missing key, got %d", got)
	}
}
