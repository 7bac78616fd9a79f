package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheckPassword(t *testing.T) {
	h, err := HashPassword("p1", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, "p1", h, "plaintext must never be stored")
	assert.True(t, strings.HasPrefix(h, "$2a$"))
	assert.True(t, CheckPassword(h, "p1"))
	assert.False(t, CheckPassword(h, "p2"))
	assert.False(t, CheckPassword("not-a-hash", "p1"))
}

func TestHashPassword_Salted(t *testing.T) {
	a, err := HashPassword("same", bcrypt.MinCost)
	require.NoError(t, err)
	b, err := HashPassword("same", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestHashPassword_UsesCost(t *testing.T) {
	h, err := HashPassword("p1", 5)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(h))
	require.NoError(t, err)
	assert.Equal(t, 5, cost)
}

func TestNormalizeCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NormalizeCost(0))
	assert.Equal(t, bcrypt.MinCost, NormalizeCost(1))
	assert.Equal(t, bcrypt.MaxCost, NormalizeCost(99))
	assert.Equal(t, 12, NormalizeCost(12))
}

func TestBurnPasswordCheck_DoesNotPanic(t *testing.T) {
	BurnPasswordCheck("anything", bcrypt.MinCost)
	BurnPasswordCheck("anything", bcrypt.MinCost)
}
