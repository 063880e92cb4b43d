package validation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateUsername(t *testing.T) {
	require.NoError(t, ValidateUsername("agent01"))
	require.NoError(t, ValidateUsername("abc"))

	require.Error(t, ValidateUsername(""))
	require.Error(t, ValidateUsername("ab"))
	require.Error(t, ValidateUsername("Agent01"))
	require.Error(t, ValidateUsername("agent-01"))
	require.Error(t, ValidateUsername("agent 01"))
}

func TestValidatePassword(t *testing.T) {
	require.NoError(t, ValidatePassword("longenough"))
	require.NoError(t, ValidatePassword("12345678"))

	require.Error(t, ValidatePassword(""))
	require.Error(t, ValidatePassword("short7!"))
}
