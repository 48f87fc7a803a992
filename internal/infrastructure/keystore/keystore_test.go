package keystore

import (
	"strings"
	"testing"
)

func TestSealOpenRoundTrip(t *testing.T) {
	store := NewStore(nil, "at-rest-secret", "user-1")

	for _, key := range []string{"sk-test-1234567890", "AIza-short", "or-key-with-unicode-日本語"} {
		sealed, err := store.seal(key)
		if err != nil {
			t.Fatalf("seal(%q): %v", key, err)
		}
		if sealed == key || strings.Contains(sealed, key) {
			t.Fatalf("sealed value leaks plaintext: %q", sealed)
		}

		opened, err := store.open(sealed)
		if err != nil {
			t.Fatalf("open after seal(%q): %v", key, err)
		}
		if opened != key {
			t.Fatalf("round trip got %q, want %q", opened, key)
		}
	}
}

func TestOpenRejectsForeignSecret(t *testing.T) {
	sealed, err := NewStore(nil, "secret-a", "user-1").seal("sk-test-1234567890")
	if err != nil {
		t.Fatalf("seal: %v", err)
	}

	if _, err := NewStore(nil, "secret-b", "user-1").open(sealed); err == nil {
		t.Fatal("expected open with a different secret to fail")
	}
}
