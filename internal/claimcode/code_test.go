package claimcode

import (
	"regexp"
	"strings"
	"testing"
)

var alnum = regexp.MustCompile(`^[A-Z0-9]+$`)

func TestNew_Format(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := New()
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if !strings.HasPrefix(code, Prefix) {
			t.Fatalf("code %q missing %q prefix", code, Prefix)
		}
		body := strings.TrimPrefix(code, Prefix)
		if len(body) != 8 {
			t.Fatalf("code body %q has length %d, want 8", body, len(body))
		}
		if !alnum.MatchString(body) {
			t.Fatalf("code body %q is not uppercase alphanumeric", body)
		}
	}
}

func TestNew_LowCollisionRisk(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		code, err := New()
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if _, dup := seen[code]; dup {
			t.Fatalf("duplicate code %q after %d samples", code, i)
		}
		seen[code] = struct{}{}
	}
}
