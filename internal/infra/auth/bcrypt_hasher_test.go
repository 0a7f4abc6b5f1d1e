package auth

import (
	"testing"

	"giftlink/config"

	"github.com/stretchr/testify/assert"
)

func newTestHasher() *bcryptHasher {
	cfg := &config.Config{}
	cfg.Auth.BcryptCost = 4 // bcrypt.MinCost keeps tests fast

	return NewBcryptHasher(cfg).(*bcryptHasher)
}

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := newTestHasher()

	password := "secret123"
	hash, err := hasher.Hash(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	// Verify the hash can be checked
	assert.True(t, hasher.Check(password, hash))
}

func TestBcryptHasher_HashIsSalted(t *testing.T) {
	hasher := newTestHasher()

	// Two hashes of the same password differ because the salt is random.
	first, err := hasher.Hash("secret123")
	assert.NoError(t, err)
	second, err := hasher.Hash("secret123")
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestBcryptHasher_Check(t *testing.T) {
	hasher := newTestHasher()
	password := "secret123"

	hash, err := hasher.Hash(password)
	assert.NoError(t, err)

	// Test correct password
	assert.True(t, hasher.Check(password, hash))

	// Test incorrect password
	assert.False(t, hasher.Check("wrong", hash))

	// Test empty password
	assert.False(t, hasher.Check("", hash))

	// Test garbage hash
	assert.False(t, hasher.Check(password, "not-a-bcrypt-hash"))
}

func TestBcryptHasher_CostFallsBackToDefault(t *testing.T) {
	cfg := &config.Config{}
	cfg.Auth.BcryptCost = 99 // out of range

	hasher := NewBcryptHasher(cfg).(*bcryptHasher)
	assert.Equal(t, 10, hasher.cost)
}
