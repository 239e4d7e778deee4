package cryptids_test

import (
	"strings"
	"testing"

	"github.com/jharlan/tasklane/sdk/cryptids"
)

func TestGenerateTokenLength(t *testing.T) {
	token, err := cryptids.GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if len(token) != cryptids.TokenLength {
		t.Errorf("len = %d, want %d", len(token), cryptids.TokenLength)
	}
	for _, r := range token {
		if !strings.ContainsRune(cryptids.TokenAlphabet, r) {
			t.Errorf("token contains %q outside alphabet", r)
		}
	}
}

func TestGenerateCustomToken(t *testing.T) {
	token, err := cryptids.GenerateCustomToken("ab", 64)
	if err != nil {
		t.Fatalf("GenerateCustomToken: %v", err)
	}
	if len(token) != 64 {
		t.Errorf("len = %d, want 64", len(token))
	}
}

func TestGenerateCustomTokenRejectsBadInput(t *testing.T) {
	if _, err := cryptids.GenerateCustomToken("a", 10); err == nil {
		t.Error("expected error for single-character alphabet")
	}
	if _, err := cryptids.GenerateCustomToken("abc", 0); err == nil {
		t.Error("expected error for zero size")
	}
}

func TestGenerateTokenUnique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		token, err := cryptids.GenerateToken()
		if err != nil {
			t.Fatalf("GenerateToken: %v", err)
		}
		if seen[token] {
			t.Fatalf("duplicate token %q", token)
		}
		seen[token] = true
	}
}
