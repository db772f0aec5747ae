package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code := RandomCode(8)
		assert.Len(t, code, 8)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(codeAlphabet, r),
				"character %q outside the code alphabet", r)
		}
		seen[code] = true
	}
	// 32^8 candidates, 100 draws colliding would mean a broken generator
	assert.Greater(t, len(seen), 95)
}

func TestRandomCodeExcludesAmbiguousCharacters(t *testing.T) {
	for _, banned := range "0O1I" {
		assert.False(t, strings.ContainsRune(codeAlphabet, banned))
	}
}
