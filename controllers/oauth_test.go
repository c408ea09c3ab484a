package controllers

import (
	"testing"

	"github.com/kaintayo/food-rescue-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOAuthStateRoundTrip(t *testing.T) {
	state := buildOAuthState("abc-123", models.RoleProvider)
	nonce, role, err := parseOAuthState(state)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", nonce)
	assert.Equal(t, models.RoleProvider, role)
}

func TestParseOAuthStateRejectsMalformed(t *testing.T) {
	for _, state := range []string{"", "nonce-without-role", ":receiver"} {
		_, _, err := parseOAuthState(state)
		assert.Error(t, err, "state %q should be rejected", state)
	}
}

func TestParseOAuthStateUnknownRole(t *testing.T) {
	// Unknown roles survive parsing; the callback only applies them to new
	// accounts after a Valid() check, falling back to receiver.
	nonce, role, err := parseOAuthState(buildOAuthState("n1", "admin"))
	require.NoError(t, err)
	assert.Equal(t, "n1", nonce)
	assert.False(t, role.Valid())
}
