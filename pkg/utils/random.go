package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateSecureToken returns nBytes of crypto randomness hex encoded.
func GenerateSecureToken(nBytes int) (string, error) {
	buf := make([]byte, nBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
