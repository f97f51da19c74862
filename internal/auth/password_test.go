package auth

import (
	"strings"
	"testing"
)

func TestGenerateTemporaryPassword(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		p, err := GenerateTemporaryPassword()
		if err != nil {
			t.Fatalf("GenerateTemporaryPassword() error = %v", err)
		}
		if len(p) != tempPasswordLen {
			t.Errorf("len = %d, want %d", len(p), tempPasswordLen)
		}
		for _, c := range p {
			if !strings.ContainsRune(tempPasswordAlphabet, c) {
				t.Errorf("character %q outside alphabet", c)
			}
		}
		if seen[p] {
			t.Errorf("duplicate password generated: %q", p)
		}
		seen[p] = true
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("hunter2!")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "hunter2!" {
		t.Fatal("hash equals the clear password")
	}
	if err := VerifyPassword("hunter2!", hash); err != nil {
		t.Errorf("VerifyPassword() error = %v", err)
	}
	if err := VerifyPassword("wrong", hash); err == nil {
		t.Error("VerifyPassword() accepted a wrong password")
	}
}
