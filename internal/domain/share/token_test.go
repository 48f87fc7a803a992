package share_test

import (
	"strings"
	"testing"

	"parley-server/services/chat-api/internal/domain/share"
)

func TestGenerateToken(t *testing.T) {
	token, err := share.GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}
	if len(token) != 22 {
		t.Fatalf("expected 22 character token, got %d (%q)", len(token), token)
	}
	if strings.ContainsAny(token, "+/=") {
		t.Fatalf("token %q contains non URL-safe characters", token)
	}
}

func TestGenerateToken_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := share.GenerateToken()
		if err != nil {
			t.Fatalf("GenerateToken returned error: %v", err)
		}
		if seen[token] {
			t.Fatalf("duplicate token generated: %q", token)
		}
		seen[token] = true
	}
}

func TestHashPassword_Deterministic(t *testing.T) {
	first := share.HashPassword("opensesame")
	second := share.HashPassword("opensesame")
	if first != second {
		t.Fatalf("expected stable digest, got %q and %q", first, second)
	}
	if len(first) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(first))
	}
	if first == share.HashPassword("different") {
		t.Fatal("different passwords should not collide")
	}
}

func TestVerifyPassword(t *testing.T) {
	stored := share.HashPassword("opensesame")

	if !share.VerifyPassword("opensesame", stored) {
		t.Fatal("expected matching password to verify")
	}
	if share.VerifyPassword("wrong", stored) {
		t.Fatal("expected mismatched password to fail")
	}
	if share.VerifyPassword("", stored) {
		t.Fatal("expected empty password to fail")
	}
}
