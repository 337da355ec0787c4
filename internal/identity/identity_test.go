package identity

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestVerifyPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("GenerateFromPassword: %v", err)
	}

	tests := []struct {
		name     string
		hash     []byte
		password string
		wantErr  error
	}{
		{"correct password", hash, "s3cret-pass", nil},
		{"wrong password", hash, "wrong-pass", ErrInvalidCredentials},
		{"empty password", hash, "", ErrInvalidCredentials},
		{"garbage hash", []byte("not-a-bcrypt-hash"), "s3cret-pass", ErrInvalidCredentials},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := verifyPassword(tc.hash, tc.password)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("verifyPassword() = %v, want %v", err, tc.wantErr)
			}
		})
	}
}
