package test

import (
	"math/rand/v2"

	"github.com/shopspring/decimal"

	pkgAuth "github.com/polkiloo/gobank/internal/pkg/auth"
)

const credentialAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomUsername returns prefix followed by eight random characters.
func RandomUsername(prefix string) string {
	return prefix + randomString(8)
}

// RandomPassword returns a random password of n bytes, clamped to what bcrypt accepts.
func RandomPassword(n int) string {
	if n <= 0 {
		n = 1
	}
	if n > pkgAuth.MaxPasswordLength {
		n = pkgAuth.MaxPasswordLength
	}
	return randomString(n)
}

// RandomAmount returns a positive amount in cents, at most maxUnits whole units.
func RandomAmount(maxUnits int64) decimal.Decimal {
	if maxUnits <= 0 {
		maxUnits = 1
	}
	cents := 1 + rand.Int64N(maxUnits*100)
	return decimal.New(cents, -2)
}

func randomString(n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = credentialAlphabet[rand.IntN(len(credentialAlphabet))]
	}
	return string(buf)
}
