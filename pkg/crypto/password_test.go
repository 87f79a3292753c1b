package crypto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-Drafts!")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, CheckPassword("s3cret-Drafts!", hash))
	assert.False(t, CheckPassword("s3cret-drafts!", hash))
	assert.False(t, CheckPassword("s3cret-Drafts!", "not-a-bcrypt-hash"))
}

func TestGenerateRandomTokenLengthAndEntropy(t *testing.T) {
	first, err := GenerateRandomToken(16)
	require.NoError(t, err)
	assert.Len(t, first, 32)

	second, err := GenerateRandomToken(16)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestErrorBranchesViaHooks(t *testing.T) {
	origBcrypt := bcryptGenerateFromPassword
	origRead := randomRead
	t.Cleanup(func() {
		bcryptGenerateFromPassword = origBcrypt
		randomRead = origRead
	})

	bcryptGenerateFromPassword = func([]byte, int) ([]byte, error) {
		return nil, errors.New("bcrypt unavailable")
	}
	_, err := HashPassword("whatever")
	assert.Error(t, err)

	bcryptGenerateFromPassword = origBcrypt
	randomRead = func([]byte) (int, error) { return 0, errors.New("entropy exhausted") }
	_, err = GenerateRandomToken(16)
	assert.Error(t, err)
}
