package httpserver

import (
	"crypto/rand"
	"math/big"
)

const slugAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// slugLength matches the length of the URL-facing feed identifiers.
const slugLength = 10

// generateSlug returns a random alphanumeric string for use as a feed slug.
func generateSlug() (string, error) {
	max := big.NewInt(int64(len(slugAlphabet)))
	b := make([]byte, slugLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = slugAlphabet[n.Int64()]
	}
	return string(b), nil
}
