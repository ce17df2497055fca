package models

import (
	"time"

	"github.com/google/uuid"
)

// GlobalRole is the application-wide authority level of a User. It is a
// separate enumeration from OrgRole and the two are never interchangeable.
type GlobalRole string

const (
	RoleMember     GlobalRole = "member"
	RoleAuthor     GlobalRole = "author"
	RoleAdmin      GlobalRole = "admin"
	RoleSuperAdmin GlobalRole = "superAdmin"
)

func (r GlobalRole) Valid() bool {
	switch r {
	case RoleMember, RoleAuthor, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// IsAdmin reports whether the role grants application-wide admin authority.
func (r GlobalRole) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// User holds exactly one global role at a time; role changes are full
// overwrites. Accounts, sessions and memberships are removed by FK cascade
// when the user is deleted.
type User struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name          string     `gorm:"size:255;not null" json:"name"`
	Email         string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	EmailVerified bool       `gorm:"not null;default:false" json:"email_verified"`
	Image         string     `gorm:"size:512" json:"image,omitempty"`
	Role          GlobalRole `gorm:"size:20;not null;default:'member'" json:"role"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Accounts    []Account `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Sessions    []Session `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Memberships []Member  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

const (
	ProviderCredential = "credential"
	ProviderGoogle     = "google"
)

// Account is one credential binding for a user. The credential provider
// stores a bcrypt hash in Password; social providers leave it empty.
type Account struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ProviderID string    `gorm:"size:50;not null;uniqueIndex:idx_accounts_provider_account" json:"provider_id"`
	AccountID  string    `gorm:"size:255;not null;uniqueIndex:idx_accounts_provider_account" json:"account_id"`
	Password   string    `gorm:"size:255" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
