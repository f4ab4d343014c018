package auth

import (
	"errors"
	"testing"
)

func TestPasswordHashingLifecycle(t *testing.T) {
	password := "S3curePass!"
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("unexpected error hashing password: %v", err)
	}
	if hash == "" {
		t.Fatal("expected hash to be populated")
	}

	if err := VerifyPassword(hash, password); err != nil {
		t.Fatalf("expected password to verify, got error: %v", err)
	}

	if err := VerifyPassword(hash, "wrong"); err == nil {
		t.Fatal("expected verification to fail for wrong password")
	}
}

func TestVerifyPasswordReturnsGenericError(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("unexpected error hashing password: %v", err)
	}

	err = VerifyPassword(hash, "battery staple")
	if !errors.Is(err, ErrCredential) {
		t.Fatalf("expected ErrCredential, got %v", err)
	}

	// 损坏的哈希和错误密码必须不可区分
	err = VerifyPassword("not-a-bcrypt-hash", "battery staple")
	if !errors.Is(err, ErrCredential) {
		t.Fatalf("expected ErrCredential for malformed hash, got %v", err)
	}
}

func TestIsHashed(t *testing.T) {
	hash, err := HashPassword("plain")
	if err != nil {
		t.Fatalf("unexpected error hashing password: %v", err)
	}
	if !IsHashed(hash) {
		t.Fatal("expected bcrypt output to be recognised as hashed")
	}
	if IsHashed("plain") {
		t.Fatal("expected plain text not to be recognised as hashed")
	}
}
