package shortid

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reporthub/backend/internal/pkg/rherr"
)

func TestNewShape(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z0-9]{8}$`)
	for i := 0; i < 1000; i++ {
		assert.Regexp(t, pattern, New())
	}
}

func TestNewUnique(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 1000; i++ {
		id, err := NewUnique(func(id string) bool {
			_, ok := seen[id]
			return ok
		})
		require.NoError(t, err)

		_, dup := seen[id]
		require.False(t, dup)
		seen[id] = struct{}{}
	}
}

func TestNewUniqueExhausted(t *testing.T) {
	attempts := 0
	id, err := NewUnique(func(string) bool {
		attempts++
		return true
	})
	assert.Empty(t, id)
	assert.ErrorIs(t, err, rherr.ErrIDGenerationExhausted)
	assert.Equal(t, 32, attempts)
}
