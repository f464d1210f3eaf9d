package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("alice@example.com"))
	assert.True(t, ValidateEmail("a.b+c@sub.example.co"))

	assert.False(t, ValidateEmail("not-an-email"))
	assert.False(t, ValidateEmail("alice@"))
	assert.False(t, ValidateEmail("@example.com"))
	assert.False(t, ValidateEmail(""))
}

func TestValidateUsername(t *testing.T) {
	assert.True(t, ValidateUsername("alice"))
	assert.True(t, ValidateUsername("alice.b-c_1"))

	assert.False(t, ValidateUsername("ab"))
	assert.False(t, ValidateUsername("Alice"))
	assert.False(t, ValidateUsername("has space"))
	assert.False(t, ValidateUsername(""))
}

func TestValidatePassword(t *testing.T) {
	assert.True(t, ValidatePassword("secret1"))
	assert.False(t, ValidatePassword("short"))
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "alice@example.com", SanitizeEmail("  Alice@Example.COM "))
	assert.Equal(t, "alice", SanitizeUsername(" Alice "))
}
