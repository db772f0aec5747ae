package util

import (
	"crypto/rand"
	"math/big"
)

// codeAlphabet leaves out 0/O and 1/I so codes survive being read aloud or
// handwritten by students.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// RandomCode generates an activation-code candidate of the given length.
// Uniqueness against the existing collection is the caller's responsibility.
func RandomCode(length int) string {
	max := big.NewInt(int64(len(codeAlphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the OS entropy source is broken
			panic(err)
		}
		out[i] = codeAlphabet[n.Int64()]
	}
	return string(out)
}
