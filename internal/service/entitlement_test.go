package service

import (
	"errors"
	"testing"

	"english_edu_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUniqueCode(t *testing.T) {
	t.Run("first candidate free", func(t *testing.T) {
		code, err := generateUniqueCode(func(string) (bool, error) { return false, nil })
		require.NoError(t, err)
		assert.Len(t, code, activationCodeLength)
	})

	t.Run("retries past collisions", func(t *testing.T) {
		calls := 0
		code, err := generateUniqueCode(func(string) (bool, error) {
			calls++
			return calls < 3, nil
		})
		require.NoError(t, err)
		assert.NotEmpty(t, code)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after budget", func(t *testing.T) {
		calls := 0
		_, err := generateUniqueCode(func(string) (bool, error) {
			calls++
			return true, nil
		})
		assert.ErrorIs(t, err, util.ErrCodeExhausted)
		assert.Equal(t, codeGenerationAttempts, calls)
	})

	t.Run("lookup errors propagate", func(t *testing.T) {
		boom := errors.New("db down")
		_, err := generateUniqueCode(func(string) (bool, error) { return false, boom })
		assert.ErrorIs(t, err, boom)
	})
}
