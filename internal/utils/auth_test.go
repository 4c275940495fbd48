package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/reservaon/api/internal/config"
	"github.com/reservaon/api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:          "test-secret",
			ExpirationHours: 1,
		},
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("senha123")
	require.NoError(t, err)
	assert.NotEqual(t, "senha123", hash)

	assert.True(t, CheckPasswordHash("senha123", hash))
	assert.False(t, CheckPasswordHash("senha124", hash))
	assert.False(t, CheckPasswordHash("senha123", "not-a-hash"))
}

func TestJWTRoundTrip(t *testing.T) {
	cfg := testConfig()
	user := &models.User{
		ID:        uuid.New(),
		CompanyID: uuid.New(),
		Role:      models.RoleOwner,
	}

	token, err := GenerateJWT(user, cfg)
	require.NoError(t, err)

	claims, err := ValidateJWT(token, cfg)
	require.NoError(t, err)

	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.CompanyID, claims.CompanyID)
	assert.Equal(t, models.RoleOwner, claims.Role)
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	cfg := testConfig()
	user := &models.User{ID: uuid.New(), CompanyID: uuid.New(), Role: models.RoleProfessional}

	token, err := GenerateJWT(user, cfg)
	require.NoError(t, err)

	other := testConfig()
	other.JWT.Secret = "different-secret"

	_, err = ValidateJWT(token, other)
	assert.Error(t, err)
}

func TestGenerateResetToken(t *testing.T) {
	a, err := GenerateResetToken()
	require.NoError(t, err)
	b, err := GenerateResetToken()
	require.NoError(t, err)

	assert.Len(t, a, 40)
	assert.NotEqual(t, a, b)
}
