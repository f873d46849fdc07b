package auth

import (
	"testing"

	"riego/config"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher() *bcryptHasher {
	return NewBcryptHasher(&config.Config{
		Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost},
	}).(*bcryptHasher)
}

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := newTestHasher()

	password := "GoodPass1"
	hash, err := hasher.Hash(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	// Verify the hash can be checked
	assert.True(t, hasher.Check(password, hash))
}

func TestBcryptHasher_Check(t *testing.T) {
	hasher := newTestHasher()
	password := "GoodPass1"

	hash, err := hasher.Hash(password)
	assert.NoError(t, err)

	// Test correct password
	assert.True(t, hasher.Check(password, hash))

	// Test incorrect password
	assert.False(t, hasher.Check("WrongPass1", hash))

	// Test empty password
	assert.False(t, hasher.Check("", hash))

	// Test with invalid hash
	assert.False(t, hasher.Check(password, "invalid_hash"))
}

func TestBcryptHasher_ValidatePasswordStrength(t *testing.T) {
	hasher := newTestHasher()

	assert.NoError(t, hasher.ValidatePasswordStrength("GoodPass1"))

	testCases := []struct {
		password    string
		expectedErr string
	}{
		{"short1A", "al menos 8 caracteres"},
		{"alllowercase1", "una mayúscula"},
		{"ALLUPPERCASE1", "una minúscula"},
		{"NoDigitsHere", "al menos un número"},
	}

	for _, tc := range testCases {
		err := hasher.ValidatePasswordStrength(tc.password)
		assert.Error(t, err, "Expected error for password: %s", tc.password)
		assert.Contains(t, errDetails(err), tc.expectedErr, "Details should mention: %s", tc.expectedErr)
	}
}

func TestBcryptHasher_RejectsOverlongPassword(t *testing.T) {
	hasher := newTestHasher()

	long := make([]byte, 73)
	for i := range long {
		if i%3 == 0 {
			long[i] = 'A'
		} else if i%3 == 1 {
			long[i] = 'a'
		} else {
			long[i] = '1'
		}
	}

	err := hasher.ValidatePasswordStrength(string(long))
	assert.Error(t, err)
	assert.Contains(t, errDetails(err), "demasiado larga")
}

func TestBcryptHasher_WithCustomCost(t *testing.T) {
	customCost := 6 // Lower cost for faster testing
	hasher := NewBcryptHasher(&config.Config{
		Auth: &config.AuthConfig{BcryptCost: customCost},
	})

	password := "GoodPass1"
	hash, err := hasher.Hash(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)

	// Verify the hash uses the correct cost
	cost, err := bcrypt.Cost([]byte(hash))
	assert.NoError(t, err)
	assert.Equal(t, customCost, cost)

	assert.True(t, hasher.Check(password, hash))
}

func errDetails(err error) string {
	type detailer interface{ Details() string }
	if d, ok := err.(detailer); ok {
		return d.Details()
	}

	return err.Error()
}
