package auth

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDTokenGenerator(t *testing.T) {
	gen := UUIDTokenGenerator{}
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		token, err := gen.NewToken()
		if err != nil {
			t.Fatalf("new token: %v", err)
		}
		parsed, err := uuid.Parse(token)
		if err != nil {
			t.Fatalf("expected uuid token, got %q: %v", token, err)
		}
		if parsed.Version() != 4 {
			t.Fatalf("expected random uuid, got version %d", parsed.Version())
		}
		if _, dup := seen[token]; dup {
			t.Fatalf("duplicate token %q", token)
		}
		seen[token] = struct{}{}
	}
}
