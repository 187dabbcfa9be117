package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidPasskey = errors.New("invalid passkey")
	ErrNoPasskey      = errors.New("admin passkey not configured")
)

// Ensure PasskeyAuthenticator implements Authenticator
var _ Authenticator = (*PasskeyAuthenticator)(nil)

// PasskeyAuthenticator verifies a single shared admin passkey against a bcrypt hash.
type PasskeyAuthenticator struct {
	hash []byte
}

// NewPasskeyAuthenticator creates an authenticator from a bcrypt hash of the passkey.
func NewPasskeyAuthenticator(hash string) (*PasskeyAuthenticator, error) {
	if hash == "" {
		return nil, ErrNoPasskey
	}
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, fmt.Errorf("invalid passkey hash: %w", err)
	}
	return &PasskeyAuthenticator{hash: []byte(hash)}, nil
}

// NewPasskeyAuthenticatorFromPlaintext hashes the passkey once at startup.
func NewPasskeyAuthenticatorFromPlaintext(passkey string) (*PasskeyAuthenticator, error) {
	if passkey == "" {
		return nil, ErrNoPasskey
	}
	hash, err := HashPasskey(passkey)
	if err != nil {
		return nil, err
	}
	return &PasskeyAuthenticator{hash: []byte(hash)}, nil
}

// HashPasskey returns the bcrypt hash of a passkey, for use as ADMIN_PASSKEY_HASH.
func HashPasskey(passkey string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(passkey), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash passkey: %w", err)
	}
	return string(hash), nil
}

// Authenticate compares the passkey with the stored hash.
func (a *PasskeyAuthenticator) Authenticate(_ context.Context, credential string) error {
	if err := bcrypt.CompareHashAndPassword(a.hash, []byte(credential)); err != nil {
		return ErrInvalidPasskey
	}
	return nil
}
