// Package gamecode generates game codes and host tokens.
package gamecode

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// Alphabet deliberately omits 0, 1, I and O so codes can be read
// aloud or copied from a screen without ambiguity.
const Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// CodeLength is the length of a shareable game code.
const CodeLength = 4

// NewCode draws length characters uniformly at random from Alphabet.
// Codes are not guaranteed unique; callers retry on a code collision.
func NewCode(length int) (string, error) {
	code := make([]byte, length)
	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(Alphabet))))
		if err != nil {
			return "", err
		}
		code[i] = Alphabet[num.Int64()]
	}
	return string(code), nil
}

// NormalizeCode uppercases and trims a client-supplied code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidCode reports whether a normalized code has the expected length
// and draws only from Alphabet.
func ValidCode(code string) bool {
	if len(code) != CodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if !strings.ContainsRune(Alphabet, rune(code[i])) {
			return false
		}
	}
	return true
}

// NewHostToken returns a 256-bit random bearer token, hex-encoded.
// The plaintext is shown to the host once; the server keeps only its digest.
func NewHostToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// Digest returns the sha256 hex digest of a secret.
func Digest(secret string) string {
	h := sha256.Sum256([]byte(secret))
	return fmt.Sprintf("%x", h[:])
}
