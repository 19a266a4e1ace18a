package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// PasswordAlphabet leaves out characters that are easy to misread when a
// temporary password is copied from a terminal.
const PasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

const MinTemporaryPasswordLength = 12

var errEmptyAlphabet = errors.New("alphabet must not be empty")

// TemporaryPassword returns a random password of at least
// MinTemporaryPasswordLength characters drawn from PasswordAlphabet.
func TemporaryPassword(length int) (string, error) {
	if length < MinTemporaryPasswordLength {
		length = MinTemporaryPasswordLength
	}
	return RandomString(length, PasswordAlphabet)
}

// RandomString draws length characters uniformly from alphabet using
// crypto/rand. Lengths below one yield "".
func RandomString(length int, alphabet string) (string, error) {
	if alphabet == "" {
		return "", errEmptyAlphabet
	}
	if length <= 0 {
		return "", nil
	}

	size := big.NewInt(int64(len(alphabet)))
	out := make([]byte, 0, length)
	for len(out) < length {
		index, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", err
		}
		out = append(out, alphabet[index.Int64()])
	}
	return string(out), nil
}
