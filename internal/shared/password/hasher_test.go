package password_test

import (
	"testing"

	"github.com/samcomo/dbz-api-server/internal/shared/password"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	hasher := password.NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("abcd123!")
	require.NoError(t, err)

	assert.NotEqual(t, "abcd123!", hash)
	assert.True(t, hasher.Verify("abcd123!", hash))
	assert.False(t, hasher.Verify("wrong-password", hash))
}

func TestBcryptHasher_SaltedHashes(t *testing.T) {
	hasher := password.NewBcryptHasher(bcrypt.MinCost)

	first, err := hasher.Hash("pw1")
	require.NoError(t, err)
	second, err := hasher.Hash("pw1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Verify("pw1", first))
	assert.True(t, hasher.Verify("pw1", second))
}

func TestBcryptHasher_InvalidCostFallsBackToDefault(t *testing.T) {
	hasher := password.NewBcryptHasher(100)

	hash, err := hasher.Hash("pw1")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestBcryptHasher_VerifyMalformedHash(t *testing.T) {
	hasher := password.NewBcryptHasher(bcrypt.MinCost)

	assert.False(t, hasher.Verify("pw1", "not-a-bcrypt-hash"))
}
