package token

import "testing"

func TestGenerateRandomToken_UniquePerCall(t *testing.T) {
	a, err := GenerateRandomToken(32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := GenerateRandomToken(32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a == b {
		t.Fatalf("expected distinct tokens")
	}
	if len(a) == 0 {
		t.Fatalf("expected non-empty token")
	}
}

func TestHashSHA256_Deterministic(t *testing.T) {
	if HashSHA256("abc") != HashSHA256("abc") {
		t.Fatalf("expected identical hash for identical input")
	}
	if HashSHA256("abc") == HashSHA256("abd") {
		t.Fatalf("expected different hash for different input")
	}
	if len(HashSHA256("abc")) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(HashSHA256("abc")))
	}
}
