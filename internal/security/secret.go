// Package security generates the random material behind the local session gate.
package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// SecretAlphabet is URL- and cookie-safe.
const SecretAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// SessionSecretLength gives ~357 bits of entropy over SecretAlphabet.
const SessionSecretLength = 60

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// NewSessionSecret returns a fresh key for signing session tokens.
func NewSessionSecret() (string, error) {
	return RandomString(SessionSecretLength, SecretAlphabet)
}

// RandomString draws length characters uniformly from alphabet using crypto/rand.
func RandomString(length int, alphabet string) (string, error) {
	switch {
	case length < 0:
		return "", errNegativeLength
	case length == 0:
		return "", nil
	case alphabet == "":
		return "", errEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	out := make([]byte, length)
	for index := range out {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		out[index] = alphabet[position.Int64()]
	}
	return string(out), nil
}
