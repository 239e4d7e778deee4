// Package cryptids generates short random identifiers and tokens.
package cryptids

import (
	"crypto/rand"
	"fmt"
)

var (
	// TokenAlphabet avoids vowels so generated tokens never spell words.
	TokenAlphabet = "bcdfghjklmnpqrstvwxyzBCDFGHJKLMNPQRSTVWXYZ0123456789"
	TokenLength   = 24
)

// GenerateToken creates a random token using the default alphabet and length.
func GenerateToken() (string, error) {
	return generate(TokenAlphabet, TokenLength)
}

// GenerateCustomToken creates a random token with the given alphabet and length.
func GenerateCustomToken(alphabet string, size int) (string, error) {
	return generate(alphabet, size)
}

// generate maps uniformly distributed random bytes onto the alphabet,
// nanoid style: a bitmask rejects out-of-range bytes instead of taking a
// modulo, which would bias the distribution.
func generate(alphabet string, size int) (string, error) {
	if len(alphabet) < 2 {
		return "", fmt.Errorf("alphabet must contain at least 2 characters")
	}
	if size < 1 {
		return "", fmt.Errorf("size must be at least 1")
	}

	mask := 1
	for mask < len(alphabet) {
		mask = (mask << 1) | 1
	}

	// Oversized buffer keeps the expected number of rand.Read calls at one.
	step := int(float64(size) * 1.6)
	if step < size {
		step = size
	}

	id := make([]byte, size)
	buf := make([]byte, step)

	n := 0
	for n < size {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for i := 0; i < len(buf) && n < size; i++ {
			idx := int(buf[i]) & mask
			if idx >= len(alphabet) {
				continue
			}
			id[n] = alphabet[idx]
			n++
		}
	}

	return string(id), nil
}
