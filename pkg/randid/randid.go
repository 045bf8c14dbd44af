// Package randid generates short random identifiers for locally
// created draft records.
package randid

import (
	"crypto/rand"
	"math/big"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Generate returns a random lowercase alphanumeric string of the given
// length. Randomness comes from crypto/rand; a failure there is
// unrecoverable and panics.
func Generate(length int) string {
	max := big.NewInt(int64(len(alphabet)))

	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("randid: " + err.Error())
		}
		b[i] = alphabet[n.Int64()]
	}
	return string(b)
}
