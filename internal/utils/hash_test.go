package utils

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	hashed, err := HashPassword("123456")
	if err != nil {
		t.Fatal(err)
	}
	if hashed == "123456" {
		t.Fatal("password stored in plaintext")
	}

	if !CheckPassword(hashed, "123456") {
		t.Error("correct PIN rejected")
	}
	if CheckPassword(hashed, "654321") {
		t.Error("wrong PIN accepted")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("123456")
	if err != nil {
		t.Fatal(err)
	}
	second, err := HashPassword("123456")
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Error("two hashes of the same PIN are identical")
	}
}

func TestHashCredentialLongInput(t *testing.T) {
	// Signed JWTs are far past bcrypt's 72-byte input limit; the
	// credential is digested first so the full token still matters.
	token := strings.Repeat("eyJhbGciOiJIUzI1NiJ9.", 20)

	hashed, err := HashCredential(token)
	if err != nil {
		t.Fatal(err)
	}
	if !CheckCredential(hashed, token) {
		t.Error("correct credential rejected")
	}

	// Flip a byte beyond position 72 and the check must fail.
	tampered := token[:len(token)-1] + "x"
	if CheckCredential(hashed, tampered) {
		t.Error("tampered credential accepted")
	}
}

func TestCheckCredentialWrongValue(t *testing.T) {
	hashed, err := HashCredential("token-a")
	if err != nil {
		t.Fatal(err)
	}
	if CheckCredential(hashed, "token-b") {
		t.Error("mismatched credential accepted")
	}
	if CheckCredential("not-a-bcrypt-hash", "token-a") {
		t.Error("malformed hash accepted")
	}
}
