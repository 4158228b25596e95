package service

import (
	"crypto/rand"
	"encoding/hex"
)

// randomToken returns a hex-encoded token with n bytes of entropy from
// the system CSPRNG.
func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
