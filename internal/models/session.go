package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is short-lived proof of authentication. The raw token is only ever
// handed to the client; the row stores its SHA-256 hash. ActiveOrganizationID
// is pinned at creation time from the user's earliest membership and stays
// nil for users with no memberships.
type Session struct {
	ID                   uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID               uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	TokenHash            string     `gorm:"uniqueIndex;not null;size:64" json:"-"`
	ExpiresAt            time.Time  `gorm:"not null" json:"expires_at"`
	Revoked              bool       `gorm:"not null;default:false" json:"revoked"`
	ActiveOrganizationID *uuid.UUID `gorm:"type:uuid" json:"active_organization_id,omitempty"`
	IPAddress            string     `gorm:"size:45" json:"-"`
	UserAgent            string     `gorm:"size:512" json:"-"`
	CreatedAt            time.Time  `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// Verification is a pending email-verification token. Identifier is the
// email address the token was issued for.
type Verification struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Identifier string    `gorm:"size:255;not null;index" json:"identifier"`
	Value      string    `gorm:"size:255;not null;uniqueIndex" json:"-"`
	ExpiresAt  time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
