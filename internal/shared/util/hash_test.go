package util

import (
	"regexp"
	"testing"
)

var hexKey = regexp.MustCompile(`^[0-9a-f]{64}$`)

func TestHashUserKey(t *testing.T) {
	a := HashUserKey("guest:7f3c")
	if !hexKey.MatchString(a) {
		t.Fatalf("expected 64 lowercase hex characters, got %q", a)
	}
	if HashUserKey("  guest:7f3c\n") != a {
		t.Fatalf("expected whitespace to be ignored")
	}
	if HashUserKey("guest:7f3d") == a {
		t.Fatalf("expected distinct identities to hash differently")
	}
}
