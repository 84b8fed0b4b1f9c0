package env

import "testing"

func TestGetFallsBack(t *testing.T) {
	t.Setenv("LUXE_TEST_ENV_GET", "")
	if got := Get("LUXE_TEST_ENV_GET", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
	t.Setenv("LUXE_TEST_ENV_GET", "value")
	if got := Get("LUXE_TEST_ENV_GET", "fallback"); got != "value" {
		t.Fatalf("expected value, got %q", got)
	}
}

func TestFirstSkipsEmpty(t *testing.T) {
	t.Setenv("LUXE_TEST_A", "")
	t.Setenv("LUXE_TEST_B", "b")
	if got := First("LUXE_TEST_A", "LUXE_TEST_B"); got != "b" {
		t.Fatalf("expected b, got %q", got)
	}
	if got := First("LUXE_TEST_A"); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
