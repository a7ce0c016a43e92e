package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	password := "testpassword"
	hashedPassword, err := HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEmpty(t, hashedPassword)
	assert.NotEqual(t, password, hashedPassword)

	cost, err := bcrypt.Cost([]byte(hashedPassword))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestHashPassword_InvalidCostFallsBack(t *testing.T) {
	hashedPassword, err := HashPassword("x", 0)
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hashedPassword))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestCheckPasswordHash(t *testing.T) {
	password := "testpassword"
	hashedPassword, _ := HashPassword(password, bcrypt.MinCost)

	assert.True(t, CheckPasswordHash(password, hashedPassword))
	assert.False(t, CheckPasswordHash("wrongpassword", hashedPassword))
}

func TestCheckPasswordHash_EmptyPassword(t *testing.T) {
	hashedPassword, err := HashPassword("", bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("", hashedPassword))
	assert.False(t, CheckPasswordHash("x", hashedPassword))
}

func TestNormalizeUsername(t *testing.T) {
	assert.Equal(t, "ana", NormalizeUsername("  ana\t"))
}
