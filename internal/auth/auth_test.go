package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvTokenOverridesFile(t *testing.T) {
	t.Setenv(EnvToken, "Bearer abc123")

	ti, err := GetToken()
	require.NoError(t, err)
	require.NotNil(t, ti)
	assert.Equal(t, "abc123", ti.Token, "bearer prefix is stripped")
	assert.Equal(t, "env", ti.Source)
}

func TestStripBearer(t *testing.T) {
	assert.Equal(t, "tok", stripBearer("bearer tok"))
	assert.Equal(t, "tok", stripBearer("Bearer tok"))
	assert.Equal(t, "tok", stripBearer("tok"))
}
