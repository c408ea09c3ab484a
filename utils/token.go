package utils

import (
	"crypto/rand"
	"fmt"
)

// GenerateTokenID returns a random UUID used to key refresh tokens in the
// revocation store.
func GenerateTokenID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:])
}
