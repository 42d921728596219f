package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DikshantJo/ZwitchNew-sub000/models"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPassword("s3cret-pass", hash))
	assert.False(t, CheckPassword("wrong-pass", hash))
}

func TestAdminTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")

	admin := &models.Admin{ID: 42, Email: "ops@zwitch.dev"}
	token, err := GenerateAdminToken(admin)
	require.NoError(t, err)

	adminID, err := ValidateAdminToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), adminID)
}

func TestAdminTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	token, err := GenerateAdminToken(&models.Admin{ID: 7, Email: "ops@zwitch.dev"})
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "rotated-secret")
	_, err = ValidateAdminToken(token)
	assert.Error(t, err)
}
