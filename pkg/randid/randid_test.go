package randid

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	pattern := regexp.MustCompile(`^[a-z0-9]*$`)

	for _, length := range []int{0, 1, 4, 8, 16} {
		result := Generate(length)
		assert.Len(t, result, length)
		assert.True(t, pattern.MatchString(result), "Generate(%d) = %q, want only [a-z0-9]", length, result)
	}
}

func TestGenerate_Uniqueness(t *testing.T) {
	// Statistical check; with 36^8 combinations a collision-heavy run
	// indicates broken randomness.
	seen := make(map[string]bool)
	for range 100 {
		seen[Generate(8)] = true
	}
	assert.GreaterOrEqual(t, len(seen), 90)
}
