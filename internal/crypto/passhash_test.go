package crypto

import (
	"bytes"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_SaltedPerCall(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("p@ssw0rd", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	h2, err := HashPassword("p@ssw0rd", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword(2): %v", err)
	}
	if len(h1) == 0 || bytes.Equal(h1, h2) {
		t.Fatalf("hashes must be non-empty and differ by salt")
	}
	if bytes.Contains(h1, []byte("p@ssw0rd")) {
		t.Fatalf("hash leaks the password")
	}
}

func TestHashPassword_CostOutOfRangeFallsBack(t *testing.T) {
	t.Parallel()

	h, err := HashPassword("pw", 99)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	cost, err := bcrypt.Cost(h)
	if err != nil || cost != DefaultCost {
		t.Fatalf("cost=%d err=%v, want %d", cost, err, DefaultCost)
	}
}

func TestVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse battery staple", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !VerifyPassword(hash, "correct horse battery staple") {
		t.Fatalf("VerifyPassword: expected true for correct password")
	}
	if VerifyPassword(hash, "wrong") {
		t.Fatalf("VerifyPassword: expected false for wrong password")
	}
	if VerifyPassword(hash, "") {
		t.Fatalf("VerifyPassword: expected false for empty password")
	}
	if VerifyPassword([]byte("not-a-hash"), "correct horse battery staple") {
		t.Fatalf("VerifyPassword: expected false for malformed hash")
	}
}
