package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("passwordAdmin")
	require.NoError(t, err)
	assert.NotEqual(t, "passwordAdmin", hash)

	assert.True(t, CompareHashAndPassword(hash, "passwordAdmin"))
	assert.False(t, CompareHashAndPassword(hash, "password"))
	assert.False(t, CompareHashAndPassword("", ""))
}
