package models

import "time"

// CredentialsID is the fixed primary key of the single credentials row.
const CredentialsID = "default"

// Credentials is the persisted session credential blob. It is written
// all-or-nothing: either every field is populated (authenticated) or the
// row is absent (logged out). The only partial updates allowed are the
// explicit token-update operations after a refresh.
type Credentials struct {
	ID           string `gorm:"primaryKey;size:16" json:"id"`
	AccessToken  string `gorm:"type:text" json:"access_token"`
	RefreshToken string `gorm:"type:text" json:"refresh_token"`

	UserID   int64  `json:"user_id"`
	ChildID  *int64 `json:"child_id,omitempty"`
	Email    string `gorm:"size:255" json:"email"`
	FullName string `gorm:"size:255" json:"full_name"`
	Role     string `gorm:"size:32" json:"role"`

	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Credentials) TableName() string {
	return "credentials"
}

// Complete reports whether the blob satisfies the all-or-nothing
// invariant: both tokens present.
func (c *Credentials) Complete() bool {
	return c != nil && c.AccessToken != "" && c.RefreshToken != ""
}
