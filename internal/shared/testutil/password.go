package testutil

import (
	"github.com/samcomo/dbz-api-server/internal/shared/password"
	"golang.org/x/crypto/bcrypt"
)

// NewTestPasswordHasher creates a bcrypt hasher with the minimum cost to keep tests fast
func NewTestPasswordHasher() *password.BcryptHasher {
	return password.NewBcryptHasher(bcrypt.MinCost)
}
