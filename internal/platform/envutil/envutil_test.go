package envutil

import "testing"

func TestStringFallsBackOnEmpty(t *testing.T) {
	t.Setenv("ENVUTIL_TEST_STRING", "  value  ")
	if got := String("ENVUTIL_TEST_STRING", "def"); got != "value" {
		t.Fatalf("set: want=%q got=%q", "value", got)
	}
	if got := String("ENVUTIL_TEST_STRING_MISSING", "def"); got != "def" {
		t.Fatalf("unset: want=%q got=%q", "def", got)
	}
}

func TestIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("ENVUTIL_TEST_INT", "42")
	if got := Int("ENVUTIL_TEST_INT", 7); got != 42 {
		t.Fatalf("set: want=42 got=%d", got)
	}
	t.Setenv("ENVUTIL_TEST_INT", "not-a-number")
	if got := Int("ENVUTIL_TEST_INT", 7); got != 7 {
		t.Fatalf("garbage: want=7 got=%d", got)
	}
	if got := Int("ENVUTIL_TEST_INT_MISSING", 7); got != 7 {
		t.Fatalf("unset: want=7 got=%d", got)
	}
}

func TestBool(t *testing.T) {
	tests := []struct {
		value string
		def   bool
		want  bool
	}{
		{"1", false, true},
		{"true", false, true},
		{"YES", false, true},
		{"on", false, true},
		{"0", true, false},
		{"false", true, false},
		{"no", true, false},
		{"off", true, false},
		{"maybe", true, true},
		{"maybe", false, false},
		{"", true, true},
	}
	for _, tc := range tests {
		t.Setenv("ENVUTIL_TEST_BOOL", tc.value)
		if got := Bool("ENVUTIL_TEST_BOOL", tc.def); got != tc.want {
			t.Fatalf("Bool(%q, %v): want=%v got=%v", tc.value, tc.def, tc.want, got)
		}
	}
}
