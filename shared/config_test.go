package shared

import (
	"testing"
)

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("WEBPROOF_TEST_STR", "from-env")
	if got := GetEnvOrDefault("WEBPROOF_TEST_STR", "fallback"); got != "from-env" {
		t.Errorf("set variable: got %q", got)
	}
	if got := GetEnvOrDefault("WEBPROOF_TEST_STR_UNSET", "fallback"); got != "fallback" {
		t.Errorf("unset variable: got %q", got)
	}
}

func TestGetEnvIntOrDefault(t *testing.T) {
	t.Setenv("WEBPROOF_TEST_INT", "16384")
	if got := GetEnvIntOrDefault("WEBPROOF_TEST_INT", 0); got != 16384 {
		t.Errorf("set variable: got %d", got)
	}
	if got := GetEnvIntOrDefault("WEBPROOF_TEST_INT_UNSET", 7); got != 7 {
		t.Errorf("unset variable: got %d", got)
	}

	t.Setenv("WEBPROOF_TEST_INT_BAD", "not-a-number")
	if got := GetEnvIntOrDefault("WEBPROOF_TEST_INT_BAD", 7); got != 7 {
		t.Errorf("unparsable variable: got %d", got)
	}
}
