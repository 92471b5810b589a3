package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentalops-backend/internal/domain"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestAccessTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)

	user := &domain.User{
		ID: "u1", Email: "mike.chen@rentalops.test", Role: domain.UserRoleAgent,
	}
	token, err := tm.GenerateAccessToken(user)
	require.NoError(t, err)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, domain.UserRoleAgent, claims.Role)

	perms := NewPermissionSet(claims.Permissions)
	assert.True(t, perms.Has(PermReservationsWrite))
	assert.False(t, perms.Has(PermUsersWrite))
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager(testSecret, time.Hour).
		GenerateAccessToken(&domain.User{ID: "u1", Role: domain.UserRoleManager})
	require.NoError(t, err)

	other := NewTokenManager("another-secret-another-secret-32", time.Hour)
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	tm := NewTokenManager(testSecret, -time.Minute)
	token, err := tm.GenerateAccessToken(&domain.User{ID: "u1", Role: domain.UserRoleManager})
	require.NoError(t, err)

	_, err = tm.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)
	_, err := tm.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPermissionsForRole(t *testing.T) {
	manager := PermissionsForRole(domain.UserRoleManager)
	for p := range allPermissions {
		assert.True(t, manager.Has(p), string(p))
	}

	agent := PermissionsForRole(domain.UserRoleAgent)
	assert.True(t, agent.Has(PermCustomersWrite))
	assert.True(t, agent.Has(PermBillingRead))
	assert.False(t, agent.Has(PermBillingWrite))
	assert.False(t, agent.Has(PermMaintenanceWrite))

	technician := PermissionsForRole(domain.UserRoleTechnician)
	assert.True(t, technician.Has(PermMaintenanceWrite))
	assert.False(t, technician.Has(PermCustomersRead))

	accountant := PermissionsForRole(domain.UserRoleAccountant)
	assert.True(t, accountant.Has(PermBillingWrite))
	assert.False(t, accountant.Has(PermVehiclesWrite))

	unknown := PermissionsForRole(domain.UserRole("intern"))
	assert.Empty(t, unknown)
}
