package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"orgblog/internal/models"
)

// GormStore implements every store interface over a single injected GORM
// handle.
type GormStore struct {
	db *gorm.DB
}

func New(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

const uniqueViolation = "23505"

func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
	}
	return err
}

func (s *GormStore) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormStore) CreateUserWithAccount(ctx context.Context, user *models.User, account *models.Account) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Create(account).Error
	})
	return translate(err)
}

func (s *GormStore) UpdateUser(ctx context.Context, user *models.User) error {
	return translate(s.db.WithContext(ctx).Save(user).Error)
}

func (s *GormStore) SetCredentialPassword(ctx context.Context, userID uuid.UUID, hash string) error {
	return translate(s.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("user_id = ? AND provider_id = ?", userID, models.ProviderCredential).
		Update("password", hash).Error)
}

func (s *GormStore) CredentialAccount(ctx context.Context, userID uuid.UUID) (*models.Account, error) {
	var account models.Account
	err := s.db.WithContext(ctx).
		First(&account, "user_id = ? AND provider_id = ?", userID, models.ProviderCredential).Error
	if err != nil {
		return nil, translate(err)
	}
	return &account, nil
}

func (s *GormStore) DeleteUser(ctx context.Context, id uuid.UUID) error {
	// Dependent accounts, sessions and memberships go with the FK cascade.
	result := s.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) ListUsers(ctx context.Context, limit, offset int) ([]models.User, int64, error) {
	var users []models.User
	var total int64
	q := s.db.WithContext(ctx).Model(&models.User{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, translate(err)
	}
	return users, total, nil
}

func (s *GormStore) CreateSession(ctx context.Context, session *models.Session) error {
	return translate(s.db.WithContext(ctx).Create(session).Error)
}

func (s *GormStore) SessionByTokenHash(ctx context.Context, hash string) (*models.Session, error) {
	var session models.Session
	err := s.db.WithContext(ctx).
		First(&session, "token_hash = ? AND revoked = false", hash).Error
	if err != nil {
		return nil, translate(err)
	}
	return &session, nil
}

func (s *GormStore) RevokeSession(ctx context.Context, id uuid.UUID) error {
	return translate(s.db.WithContext(ctx).
		Model(&models.Session{}).Where("id = ?", id).
		Update("revoked", true).Error)
}

func (s *GormStore) RevokeUserSessions(ctx context.Context, userID uuid.UUID) error {
	return translate(s.db.WithContext(ctx).
		Model(&models.Session{}).Where("user_id = ?", userID).
		Update("revoked", true).Error)
}

func (s *GormStore) MemberByID(ctx context.Context, id uuid.UUID) (*models.Member, error) {
	var member models.Member
	if err := s.db.WithContext(ctx).First(&member, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &member, nil
}

func (s *GormStore) Membership(ctx context.Context, userID, orgID uuid.UUID) (*models.Member, error) {
	var member models.Member
	err := s.db.WithContext(ctx).
		First(&member, "user_id = ? AND organization_id = ?", userID, orgID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &member, nil
}

func (s *GormStore) OldestMembership(ctx context.Context, userID uuid.UUID) (*models.Member, error) {
	var member models.Member
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		First(&member).Error
	if err != nil {
		return nil, translate(err)
	}
	return &member, nil
}

func (s *GormStore) Memberships(ctx context.Context, userID uuid.UUID) ([]models.Member, error) {
	var members []models.Member
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&members).Error
	if err != nil {
		return nil, translate(err)
	}
	return members, nil
}

func (s *GormStore) AddMember(ctx context.Context, member *models.Member) error {
	return translate(s.db.WithContext(ctx).Create(member).Error)
}

func (s *GormStore) DeleteMember(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.Member{}, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) OrganizationByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	var org models.Organization
	if err := s.db.WithContext(ctx).First(&org, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &org, nil
}

func (s *GormStore) OrganizationBySlug(ctx context.Context, slug string) (*models.Organization, error) {
	var org models.Organization
	err := s.db.WithContext(ctx).
		Preload("Members").Preload("Members.User").
		First(&org, "slug = ?", slug).Error
	if err != nil {
		return nil, translate(err)
	}
	return &org, nil
}

func (s *GormStore) OrganizationsForUser(ctx context.Context, userID uuid.UUID) ([]models.Organization, error) {
	var orgs []models.Organization
	err := s.db.WithContext(ctx).
		Joins("JOIN members ON members.organization_id = organizations.id").
		Where("members.user_id = ?", userID).
		Order("organizations.name ASC").
		Find(&orgs).Error
	if err != nil {
		return nil, translate(err)
	}
	return orgs, nil
}

func (s *GormStore) CreateInvitation(ctx context.Context, inv *models.Invitation) error {
	return translate(s.db.WithContext(ctx).Create(inv).Error)
}

func (s *GormStore) CreateVerification(ctx context.Context, v *models.Verification) error {
	return translate(s.db.WithContext(ctx).Create(v).Error)
}

func (s *GormStore) VerificationByValue(ctx context.Context, value string) (*models.Verification, error) {
	var v models.Verification
	if err := s.db.WithContext(ctx).First(&v, "value = ?", value).Error; err != nil {
		return nil, translate(err)
	}
	return &v, nil
}

func (s *GormStore) DeleteVerification(ctx context.Context, id uuid.UUID) error {
	return translate(s.db.WithContext(ctx).Delete(&models.Verification{}, "id = ?", id).Error)
}
