package services

import (
	"crypto/subtle"

	"github.com/habitown/habitown-backend/internal/config"
	"github.com/habitown/habitown-backend/internal/database"
	"github.com/habitown/habitown-backend/internal/models"
	"github.com/habitown/habitown-backend/pkg/errors"
	"github.com/habitown/habitown-backend/pkg/logger"
	"github.com/habitown/habitown-backend/pkg/utils"
	"gorm.io/gorm"
)

// GatewayIdentity is what the chat gateway asserts about the person it
// is relaying. UserID is the platform's stable numeric id.
type GatewayIdentity struct {
	UserID    int64  `json:"userId" binding:"required"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	ChatID    *int64 `json:"chatId"`
	ChatTitle string `json:"chatTitle"`
}

// AuthResult carries the issued token and the resolved user.
type AuthResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Authenticate verifies the gateway's shared secret, upserts the user
// (and their group, when the request came from a group chat) and issues
// a JWT for the follow-up API calls.
func Authenticate(secret string, identity GatewayIdentity) (*AuthResult, error) {
	expected := config.AppConfig.GatewaySecret
	if expected == "" ||
		subtle.ConstantTimeCompare([]byte(secret), []byte(expected)) != 1 {
		return nil, errors.Unauthorized("invalid gateway secret")
	}

	var user models.User
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var group *models.Group
		if identity.ChatID != nil {
			g, err := ensureGroup(tx, *identity.ChatID, identity.ChatTitle)
			if err != nil {
				return err
			}
			group = g
		}

		err := tx.First(&user, "id = ?", identity.UserID).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			user = models.User{
				ID:        identity.UserID,
				Username:  identity.Username,
				FirstName: identity.FirstName,
			}
			if group != nil {
				user.GroupID = &group.ID
			}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			logger.Info().Int64("user_id", user.ID).Msg("user registered")
		case err != nil:
			return err
		default:
			user.Username = identity.Username
			user.FirstName = identity.FirstName
			if group != nil && user.GroupID == nil {
				user.GroupID = &group.ID
			}
			if err := tx.Save(&user).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// ensureGroup finds the group for a chat, creating it on first contact.
func ensureGroup(tx *gorm.DB, chatID int64, title string) (*models.Group, error) {
	var group models.Group
	err := tx.First(&group, "chat_id = ?", chatID).Error
	if err == nil {
		return &group, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	if title == "" {
		title = "group"
	}
	group = models.Group{Name: title, ChatID: &chatID}
	if err := tx.Create(&group).Error; err != nil {
		return nil, err
	}
	logger.Info().Uint("group_id", group.ID).Int64("chat_id", chatID).Msg("group registered")
	return &group, nil
}
