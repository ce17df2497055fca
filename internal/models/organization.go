package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OrgRole is a user's authority inside one specific organization. It is
// scoped to that organization only and carries no application-wide meaning.
type OrgRole string

const (
	OrgRoleOwner  OrgRole = "owner"
	OrgRoleAdmin  OrgRole = "admin"
	OrgRoleMember OrgRole = "member"
)

func (r OrgRole) Valid() bool {
	switch r {
	case OrgRoleOwner, OrgRoleAdmin, OrgRoleMember:
		return true
	}
	return false
}

// CanManageMembers reports whether the role may add or remove members of its
// own organization.
func (r OrgRole) CanManageMembers() bool {
	return r == OrgRoleOwner || r == OrgRoleAdmin
}

type Organization struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string         `gorm:"size:200;not null" json:"name"`
	Slug      string         `gorm:"size:200;not null;uniqueIndex" json:"slug"`
	Logo      string         `gorm:"size:512" json:"logo,omitempty"`
	Metadata  datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`

	Members []Member `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
}

// Member binds one user to one organization with an org-scoped role. The
// composite unique index enforces at most one row per (user, organization)
// pair.
type Member struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_members_user_org" json:"user_id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_members_user_org" json:"organization_id"`
	Role           OrgRole   `gorm:"size:20;not null;default:'member'" json:"role"`
	CreatedAt      time.Time `json:"created_at"`

	User         User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"-"`
}

const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
	InvitationExpired  = "expired"
)

// Invitation is a pending offer to join an organization with a proposed
// role. Acceptance resolves it to a Member row.
type Invitation struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
	Email          string    `gorm:"size:255;not null;index" json:"email"`
	Role           OrgRole   `gorm:"size:20;not null;default:'member'" json:"role"`
	Status         string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	InviterID      uuid.UUID `gorm:"type:uuid;not null" json:"inviter_id"`
	ExpiresAt      time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt      time.Time `json:"created_at"`
}
