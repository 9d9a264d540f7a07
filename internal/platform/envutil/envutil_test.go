package envutil

import (
	"testing"
	"time"
)

func TestStringFallsBackOnEmpty(t *testing.T) {
	t.Setenv("ENVUTIL_TEST_STR", "")
	if got := String("ENVUTIL_TEST_STR", "fallback"); got != "fallback" {
		t.Fatalf("got %q, want fallback", got)
	}
	t.Setenv("ENVUTIL_TEST_STR", "  padded  ")
	if got := String("ENVUTIL_TEST_STR", "fallback"); got != "padded" {
		t.Fatalf("got %q, want trimmed value", got)
	}
}

func TestIntIgnoresGarbage(t *testing.T) {
	t.Setenv("ENVUTIL_TEST_INT", "25")
	if got := Int("ENVUTIL_TEST_INT", 5); got != 25 {
		t.Fatalf("got %d, want 25", got)
	}
	t.Setenv("ENVUTIL_TEST_INT", "not-a-number")
	if got := Int("ENVUTIL_TEST_INT", 5); got != 5 {
		t.Fatalf("got %d, want default on parse failure", got)
	}
}

func TestBoolAcceptsCommonSpellings(t *testing.T) {
	for _, v := range []string{"1", "true", "YES", "On"} {
		t.Setenv("ENVUTIL_TEST_BOOL", v)
		if !Bool("ENVUTIL_TEST_BOOL", false) {
			t.Fatalf("%q should parse as true", v)
		}
	}
	for _, v := range []string{"0", "false", "no", "OFF"} {
		t.Setenv("ENVUTIL_TEST_BOOL", v)
		if Bool("ENVUTIL_TEST_BOOL", true) {
			t.Fatalf("%q should parse as false", v)
		}
	}
	t.Setenv("ENVUTIL_TEST_BOOL", "maybe")
	if !Bool("ENVUTIL_TEST_BOOL", true) {
		t.Fatal("unrecognized value should keep the default")
	}
}

func TestDurationParsesOrDefaults(t *testing.T) {
	t.Setenv("ENVUTIL_TEST_DUR", "90s")
	if got := Duration("ENVUTIL_TEST_DUR", time.Minute); got != 90*time.Second {
		t.Fatalf("got %v, want 90s", got)
	}
	t.Setenv("ENVUTIL_TEST_DUR", "soon")
	if got := Duration("ENVUTIL_TEST_DUR", time.Minute); got != time.Minute {
		t.Fatalf("got %v, want default on parse failure", got)
	}
}
