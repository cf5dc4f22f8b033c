package services

import (
	"testing"

	"github.com/habitown/habitown-backend/internal/database"
	"github.com/habitown/habitown-backend/internal/models"
	"github.com/habitown/habitown-backend/pkg/errors"
	"github.com/habitown/habitown-backend/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticateRegistersUserAndGroup(t *testing.T) {
	setupTestDB(t)

	chatID := int64(-42)
	identity := GatewayIdentity{
		UserID:    777,
		Username:  "newcomer",
		FirstName: "New",
		ChatID:    &chatID,
		ChatTitle: "Fresh Town",
	}

	result, err := Authenticate("gateway-secret", identity)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	require.NotNil(t, result.User.GroupID)

	claims, err := utils.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(777), claims.UserID)

	var group models.Group
	require.NoError(t, database.DB.First(&group, "chat_id = ?", chatID).Error)
	assert.Equal(t, "Fresh Town", group.Name)

	// A second exchange reuses both rows.
	again, err := Authenticate("gateway-secret", identity)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, again.User.ID)

	var userCount, groupCount int64
	require.NoError(t, database.DB.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, database.DB.Model(&models.Group{}).Count(&groupCount).Error)
	assert.Equal(t, int64(1), userCount)
	assert.Equal(t, int64(1), groupCount)
}

func TestAuthenticateRejectsBadSecret(t *testing.T) {
	setupTestDB(t)

	_, err := Authenticate("wrong", GatewayIdentity{UserID: 777})
	assert.True(t, errors.IsKind(err, errors.KindUnauthorized))

	var count int64
	require.NoError(t, database.DB.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestAuthenticateUpdatesProfileFields(t *testing.T) {
	setupTestDB(t)
	_, users, _ := newGroup(t, 1, models.PointPhysical)

	result, err := Authenticate("gateway-secret", GatewayIdentity{
		UserID:    users[0].ID,
		Username:  "renamed",
		FirstName: "Renamed",
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed", result.User.Username)
	// Existing group membership survives a private-chat exchange.
	require.NotNil(t, result.User.GroupID)
}
