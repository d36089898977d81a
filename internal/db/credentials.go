package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thinkfirst/tutorsync/internal/models"
)

// SaveCredentials replaces the stored credential blob wholesale.
func (db *DB) SaveCredentials(creds models.Credentials) error {
	creds.ID = models.CredentialsID
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&creds).Error
	if err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	return nil
}

// GetCredentials returns the stored credential blob, or nil when logged out.
func (db *DB) GetCredentials() (*models.Credentials, error) {
	var creds models.Credentials
	err := db.Where("id = ?", models.CredentialsID).First(&creds).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get credentials: %w", err)
	}
	return &creds, nil
}

// ClearCredentials deletes the credential blob (logout). Idempotent.
func (db *DB) ClearCredentials() error {
	err := db.Where("id = ?", models.CredentialsID).
		Delete(&models.Credentials{}).Error
	if err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

// UpdateTokens replaces both tokens after a refresh with rotation. This
// and UpdateAccessToken are the only partial credential updates allowed.
func (db *DB) UpdateTokens(accessToken, refreshToken string) error {
	err := db.Model(&models.Credentials{}).
		Where("id = ?", models.CredentialsID).
		Updates(map[string]any{
			"access_token":  accessToken,
			"refresh_token": refreshToken,
		}).Error
	if err != nil {
		return fmt.Errorf("update tokens: %w", err)
	}
	return nil
}

// UpdateAccessToken replaces the access token after a refresh without
// rotation.
func (db *DB) UpdateAccessToken(accessToken string) error {
	err := db.Model(&models.Credentials{}).
		Where("id = ?", models.CredentialsID).
		Update("access_token", accessToken).Error
	if err != nil {
		return fmt.Errorf("update access token: %w", err)
	}
	return nil
}
