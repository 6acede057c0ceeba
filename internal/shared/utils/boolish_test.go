package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBoolish(t *testing.T) {
	for _, s := range []string{"1", "true", "TRUE", " true "} {
		v, err := ParseBoolish(s)
		require.NoError(t, err, s)
		assert.True(t, v, s)
	}
	for _, s := range []string{"0", "false", "False"} {
		v, err := ParseBoolish(s)
		require.NoError(t, err, s)
		assert.False(t, v, s)
	}

	_, err := ParseBoolish("yes")
	assert.ErrorIs(t, err, ErrNotBoolish)
}

func TestParseBoolishPtr(t *testing.T) {
	v, err := ParseBoolishPtr("")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = ParseBoolishPtr("1")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.True(t, *v)

	_, err = ParseBoolishPtr("maybe")
	assert.Error(t, err)
}

func TestIsBoolish(t *testing.T) {
	assert.NoError(t, IsBoolish(""))
	assert.NoError(t, IsBoolish("true"))
	assert.NoError(t, IsBoolish("0"))
	assert.Error(t, IsBoolish("nope"))
}
