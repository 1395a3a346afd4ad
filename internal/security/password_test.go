package security_test

import (
	"testing"

	"github.com/Rrens/tourism-api/internal/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := security.HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.NoError(t, security.CheckPassword(hash, "correct horse battery"))
	assert.ErrorIs(t, security.CheckPassword(hash, "wrong"), security.ErrPasswordMismatch)
}
