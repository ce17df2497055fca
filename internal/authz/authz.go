// Package authz decides whether an authenticated identity may perform
// administrative actions, either application-wide (global role) or inside one
// organization (membership role). The two role scopes are distinct
// enumerations and are never substitutable: a global admin has no implicit
// standing inside an organization and an organization owner has no implicit
// application-wide authority.
package authz

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"orgblog/internal/models"
	"orgblog/internal/store"
)

type Reason string

const (
	ReasonNotAuthenticated Reason = "not_authenticated"
	ReasonUserNotFound     Reason = "user_not_found"
	ReasonInsufficientRole Reason = "insufficient_role"
)

type Result struct {
	Authorized bool
	Reason     Reason
}

func allowed() Result        { return Result{Authorized: true} }
func denied(r Reason) Result { return Result{Reason: r} }

// Store is the narrow read surface the checks need. Tests substitute an
// in-memory implementation.
type Store interface {
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Membership(ctx context.Context, userID, orgID uuid.UUID) (*models.Member, error)
}

type Service struct {
	store Store
}

func New(st Store) *Service {
	return &Service{store: st}
}

// CheckGlobalAdmin decides whether the caller may perform application-wide
// user management. Every call re-reads the user row so role changes take
// effect immediately; authorization state is never cached. callerID equal to
// uuid.Nil means no authenticated session. The returned error is non-nil only
// for store failures, never for a denial.
func (s *Service) CheckGlobalAdmin(ctx context.Context, callerID uuid.UUID) (Result, error) {
	if callerID == uuid.Nil {
		return denied(ReasonNotAuthenticated), nil
	}

	user, err := s.store.UserByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return denied(ReasonUserNotFound), nil
		}
		return denied(ReasonUserNotFound), err
	}

	if !user.Role.IsAdmin() {
		return denied(ReasonInsufficientRole), nil
	}
	return allowed(), nil
}

// OrgRole returns the user's membership role within one organization. ok is
// false when no membership exists. Roles in other organizations have no
// bearing on the result.
func (s *Service) OrgRole(ctx context.Context, userID, orgID uuid.UUID) (models.OrgRole, bool, error) {
	member, err := s.store.Membership(ctx, userID, orgID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return member.Role, true, nil
}

// CanManageOrg reports whether the caller may manage the given
// organization's members: either the global admin check passes, or the
// caller holds an owner/admin membership in that organization.
func (s *Service) CanManageOrg(ctx context.Context, callerID, orgID uuid.UUID) (bool, error) {
	res, err := s.CheckGlobalAdmin(ctx, callerID)
	if err != nil {
		return false, err
	}
	if res.Authorized {
		return true, nil
	}

	role, ok, err := s.OrgRole(ctx, callerID, orgID)
	if err != nil {
		return false, err
	}
	return ok && role.CanManageMembers(), nil
}
