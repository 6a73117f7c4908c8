package auth

import "github.com/google/uuid"

// TokenGenerator produces opaque session tokens.
type TokenGenerator interface {
	NewToken() (string, error)
}

// UUIDTokenGenerator issues random (version 4) UUIDs read from crypto/rand.
type UUIDTokenGenerator struct{}

// NewToken returns a fresh random token.
func (UUIDTokenGenerator) NewToken() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
