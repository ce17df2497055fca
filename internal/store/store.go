package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"orgblog/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type UserStore interface {
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	// CreateUserWithAccount inserts the user and its credential account in
	// one transaction.
	CreateUserWithAccount(ctx context.Context, user *models.User, account *models.Account) error
	UpdateUser(ctx context.Context, user *models.User) error
	// SetCredentialPassword overwrites the stored hash on the user's
	// credential account.
	SetCredentialPassword(ctx context.Context, userID uuid.UUID, hash string) error
	CredentialAccount(ctx context.Context, userID uuid.UUID) (*models.Account, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	ListUsers(ctx context.Context, limit, offset int) ([]models.User, int64, error)
}

type SessionStore interface {
	CreateSession(ctx context.Context, session *models.Session) error
	SessionByTokenHash(ctx context.Context, hash string) (*models.Session, error)
	RevokeSession(ctx context.Context, id uuid.UUID) error
	RevokeUserSessions(ctx context.Context, userID uuid.UUID) error
}

type MemberStore interface {
	MemberByID(ctx context.Context, id uuid.UUID) (*models.Member, error)
	Membership(ctx context.Context, userID, orgID uuid.UUID) (*models.Member, error)
	// OldestMembership returns the user's earliest membership by created_at,
	// id ascending as the final tie-break.
	OldestMembership(ctx context.Context, userID uuid.UUID) (*models.Member, error)
	Memberships(ctx context.Context, userID uuid.UUID) ([]models.Member, error)
	AddMember(ctx context.Context, member *models.Member) error
	DeleteMember(ctx context.Context, id uuid.UUID) error
}

type OrganizationStore interface {
	OrganizationByID(ctx context.Context, id uuid.UUID) (*models.Organization, error)
	OrganizationBySlug(ctx context.Context, slug string) (*models.Organization, error)
	OrganizationsForUser(ctx context.Context, userID uuid.UUID) ([]models.Organization, error)
	CreateInvitation(ctx context.Context, inv *models.Invitation) error
}

type VerificationStore interface {
	CreateVerification(ctx context.Context, v *models.Verification) error
	VerificationByValue(ctx context.Context, value string) (*models.Verification, error)
	DeleteVerification(ctx context.Context, id uuid.UUID) error
}
