package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"orgblog/internal/authz"
	"orgblog/internal/models"
	"orgblog/internal/store"
)

const invitationTTL = 72 * time.Hour

type MemberService struct {
	members store.MemberStore
	orgs    store.OrganizationStore
	authz   *authz.Service
}

func NewMemberService(members store.MemberStore, orgs store.OrganizationStore, az *authz.Service) *MemberService {
	return &MemberService{members: members, orgs: orgs, authz: az}
}

// AddMember creates a membership row. Store-level failures (duplicate pair,
// unknown organization) surface as a generic operation failure, not with
// store detail.
func (s *MemberService) AddMember(ctx context.Context, callerID, orgID, userID uuid.UUID, role models.OrgRole) (*models.Member, error) {
	if !role.Valid() {
		return nil, &ValidationError{Fields: map[string]string{"role": "must be one of: owner admin member"}}
	}

	ok, err := s.authz.CanManageOrg(ctx, callerID, orgID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}
	if !ok {
		return nil, ErrUnauthorized
	}

	member := models.Member{
		ID:             uuid.New(),
		UserID:         userID,
		OrganizationID: orgID,
		Role:           role,
	}
	if err := s.members.AddMember(ctx, &member); err != nil {
		slog.Error("add member failed", "action", "add_member", "organization_id", orgID.String(), "error", err.Error())
		return nil, fmt.Errorf("%w: failed to add member", ErrOperationFailed)
	}
	return &member, nil
}

// RemoveMember deletes a membership by its row id. Authority: the global
// admin check, or an owner/admin membership in the member's organization.
func (s *MemberService) RemoveMember(ctx context.Context, callerID, memberID uuid.UUID) error {
	member, err := s.members.MemberByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: member not found", ErrOperationFailed)
		}
		return fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}

	ok, err := s.authz.CanManageOrg(ctx, callerID, member.OrganizationID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}
	if !ok {
		return ErrUnauthorized
	}

	if err := s.members.DeleteMember(ctx, memberID); err != nil {
		slog.Error("remove member failed", "action", "remove_member", "member_id", memberID.String(), "error", err.Error())
		return fmt.Errorf("%w: failed to remove member", ErrOperationFailed)
	}
	return nil
}

func (s *MemberService) OrganizationsForUser(ctx context.Context, userID uuid.UUID) ([]models.Organization, error) {
	orgs, err := s.orgs.OrganizationsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}
	return orgs, nil
}

func (s *MemberService) OrganizationBySlug(ctx context.Context, slug string) (*models.Organization, error) {
	org, err := s.orgs.OrganizationBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}
	return org, nil
}

// ActiveOrganization resolves the organization a new session should pin.
// The tie-break is deterministic: earliest membership by created_at, id
// ascending. Users with no memberships get none.
func (s *MemberService) ActiveOrganization(ctx context.Context, userID uuid.UUID) (*models.Organization, error) {
	member, err := s.members.OldestMembership(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}

	org, err := s.orgs.OrganizationByID(ctx, member.OrganizationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}
	return org, nil
}

// Invite records a pending offer to join an organization. Delivery and the
// acceptance flow are outside this service.
func (s *MemberService) Invite(ctx context.Context, callerID, orgID uuid.UUID, email string, role models.OrgRole) (*models.Invitation, error) {
	if !role.Valid() {
		return nil, &ValidationError{Fields: map[string]string{"role": "must be one of: owner admin member"}}
	}

	ok, err := s.authz.CanManageOrg(ctx, callerID, orgID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}
	if !ok {
		return nil, ErrUnauthorized
	}

	inv := models.Invitation{
		ID:             uuid.New(),
		OrganizationID: orgID,
		Email:          email,
		Role:           role,
		Status:         models.InvitationPending,
		InviterID:      callerID,
		ExpiresAt:      time.Now().Add(invitationTTL),
	}
	if err := s.orgs.CreateInvitation(ctx, &inv); err != nil {
		slog.Error("create invitation failed", "action", "invite_member", "organization_id", orgID.String(), "error", err.Error())
		return nil, fmt.Errorf("%w: failed to create invitation", ErrOperationFailed)
	}
	return &inv, nil
}
