package auth

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateResetToken(t *testing.T) {
	token, err := GenerateResetToken()
	if err != nil {
		t.Fatalf("unexpected error generating reset token: %v", err)
	}
	if len(token.Plain) != resetTokenBytes*2 {
		t.Fatalf("expected %d hex characters, got %d", resetTokenBytes*2, len(token.Plain))
	}
	if token.Hash != HashToken(token.Plain) {
		t.Fatal("expected stored hash to match the digest of the plain token")
	}
	if token.Hash == token.Plain {
		t.Fatal("hash must differ from the plain token")
	}
	if !token.ExpiresAt.After(time.Now().UTC()) {
		t.Fatal("expected expiry in the future")
	}

	other, err := GenerateResetToken()
	if err != nil {
		t.Fatalf("unexpected error generating reset token: %v", err)
	}
	if other.Plain == token.Plain {
		t.Fatal("expected distinct tokens across generations")
	}
}

func TestHashTokenIsDeterministic(t *testing.T) {
	if HashToken("abc") != HashToken("abc") {
		t.Fatal("expected stable digest for identical input")
	}
	if HashToken("abc") == HashToken("abd") {
		t.Fatal("expected different digests for different input")
	}
}

func TestBuildResetURL(t *testing.T) {
	url := BuildResetURL("https://app.example.com/", "tok123")
	if url != "https://app.example.com/reset-password?token=tok123" {
		t.Fatalf("unexpected reset url: %s", url)
	}
}

func TestGenerateVerificationCode(t *testing.T) {
	code, expiresAt, err := GenerateVerificationCode()
	if err != nil {
		t.Fatalf("unexpected error generating code: %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("expected 6-digit code, got %q", code)
	}
	if strings.Trim(code, "0123456789") != "" {
		t.Fatalf("expected numeric code, got %q", code)
	}
	if !expiresAt.After(time.Now().UTC()) {
		t.Fatal("expected expiry in the future")
	}
}
