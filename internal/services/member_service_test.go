package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"orgblog/internal/authz"
	"orgblog/internal/models"
	"orgblog/internal/services"
)

func newMemberService(st *memStore) *services.MemberService {
	return services.NewMemberService(st, st, authz.New(st))
}

func TestAddMember(t *testing.T) {
	ctx := context.Background()

	t.Run("org owner can add", func(t *testing.T) {
		st := newMemStore()
		org := st.seedOrg("acme")
		owner := st.seedUser(models.RoleMember)
		newcomer := st.seedUser(models.RoleMember)
		st.seedMember(owner.ID, org.ID, models.OrgRoleOwner, time.Now())
		svc := newMemberService(st)

		member, err := svc.AddMember(ctx, owner.ID, org.ID, newcomer.ID, models.OrgRoleMember)
		require.NoError(t, err)
		require.Equal(t, newcomer.ID, member.UserID)
		require.Contains(t, st.members, member.ID)
	})

	t.Run("global admin can add without membership", func(t *testing.T) {
		st := newMemStore()
		org := st.seedOrg("acme")
		admin := st.seedUser(models.RoleSuperAdmin)
		newcomer := st.seedUser(models.RoleMember)
		svc := newMemberService(st)

		_, err := svc.AddMember(ctx, admin.ID, org.ID, newcomer.ID, models.OrgRoleAdmin)
		require.NoError(t, err)
	})

	t.Run("plain org member is denied", func(t *testing.T) {
		st := newMemStore()
		org := st.seedOrg("acme")
		member := st.seedUser(models.RoleMember)
		newcomer := st.seedUser(models.RoleMember)
		st.seedMember(member.ID, org.ID, models.OrgRoleMember, time.Now())
		svc := newMemberService(st)

		_, err := svc.AddMember(ctx, member.ID, org.ID, newcomer.ID, models.OrgRoleMember)
		require.ErrorIs(t, err, services.ErrUnauthorized)
	})

	t.Run("invalid role fails validation", func(t *testing.T) {
		st := newMemStore()
		org := st.seedOrg("acme")
		admin := st.seedUser(models.RoleAdmin)
		svc := newMemberService(st)

		_, err := svc.AddMember(ctx, admin.ID, org.ID, uuid.New(), models.OrgRole("superAdmin"))
		var verr *services.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Contains(t, verr.Fields, "role")
	})

	t.Run("store failure is a generic operation failure", func(t *testing.T) {
		st := newMemStore()
		org := st.seedOrg("acme")
		admin := st.seedUser(models.RoleAdmin)
		st.failAddMember = errors.New("constraint violated")
		svc := newMemberService(st)

		_, err := svc.AddMember(ctx, admin.ID, org.ID, uuid.New(), models.OrgRoleMember)
		require.ErrorIs(t, err, services.ErrOperationFailed)
		require.NotContains(t, err.Error(), "constraint", "store detail must not leak")
	})
}

func TestRemoveMember(t *testing.T) {
	ctx := context.Background()

	t.Run("global admin can remove", func(t *testing.T) {
		st := newMemStore()
		org := st.seedOrg("acme")
		admin := st.seedUser(models.RoleAdmin)
		target := st.seedUser(models.RoleMember)
		row := st.seedMember(target.ID, org.ID, models.OrgRoleMember, time.Now())
		svc := newMemberService(st)

		require.NoError(t, svc.RemoveMember(ctx, admin.ID, row.ID))
		require.NotContains(t, st.members, row.ID)
	})

	t.Run("org admin can remove in their own org", func(t *testing.T) {
		st := newMemStore()
		org := st.seedOrg("acme")
		orgAdmin := st.seedUser(models.RoleMember)
		target := st.seedUser(models.RoleMember)
		st.seedMember(orgAdmin.ID, org.ID, models.OrgRoleAdmin, time.Now())
		row := st.seedMember(target.ID, org.ID, models.OrgRoleMember, time.Now())
		svc := newMemberService(st)

		require.NoError(t, svc.RemoveMember(ctx, orgAdmin.ID, row.ID))
	})

	t.Run("admin of another org is denied", func(t *testing.T) {
		st := newMemStore()
		orgA := st.seedOrg("acme")
		orgB := st.seedOrg("globex")
		caller := st.seedUser(models.RoleMember)
		target := st.seedUser(models.RoleMember)
		st.seedMember(caller.ID, orgB.ID, models.OrgRoleOwner, time.Now())
		row := st.seedMember(target.ID, orgA.ID, models.OrgRoleMember, time.Now())
		svc := newMemberService(st)

		err := svc.RemoveMember(ctx, caller.ID, row.ID)
		require.ErrorIs(t, err, services.ErrUnauthorized)
		require.Contains(t, st.members, row.ID)
	})

	t.Run("unknown member id is an operation failure", func(t *testing.T) {
		st := newMemStore()
		st.seedUser(models.RoleAdmin)
		svc := newMemberService(st)

		err := svc.RemoveMember(ctx, uuid.New(), uuid.New())
		require.ErrorIs(t, err, services.ErrOperationFailed)
	})
}

func TestActiveOrganization(t *testing.T) {
	ctx := context.Background()

	t.Run("earliest membership wins", func(t *testing.T) {
		st := newMemStore()
		first := st.seedOrg("first")
		second := st.seedOrg("second")
		user := st.seedUser(models.RoleMember)
		now := time.Now()
		st.seedMember(user.ID, second.ID, models.OrgRoleMember, now)
		st.seedMember(user.ID, first.ID, models.OrgRoleOwner, now.Add(-24*time.Hour))
		svc := newMemberService(st)

		org, err := svc.ActiveOrganization(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, org)
		require.Equal(t, first.ID, org.ID)
	})

	t.Run("no memberships means no active org", func(t *testing.T) {
		st := newMemStore()
		user := st.seedUser(models.RoleMember)
		svc := newMemberService(st)

		org, err := svc.ActiveOrganization(ctx, user.ID)
		require.NoError(t, err)
		require.Nil(t, org)
	})
}

func TestInvite(t *testing.T) {
	ctx := context.Background()

	t.Run("owner invites with pending status", func(t *testing.T) {
		st := newMemStore()
		org := st.seedOrg("acme")
		owner := st.seedUser(models.RoleMember)
		st.seedMember(owner.ID, org.ID, models.OrgRoleOwner, time.Now())
		svc := newMemberService(st)

		inv, err := svc.Invite(ctx, owner.ID, org.ID, "new@example.com", models.OrgRoleMember)
		require.NoError(t, err)
		require.Equal(t, models.InvitationPending, inv.Status)
		require.Equal(t, owner.ID, inv.InviterID)
		require.True(t, inv.ExpiresAt.After(time.Now()))
	})

	t.Run("outsider is denied", func(t *testing.T) {
		st := newMemStore()
		org := st.seedOrg("acme")
		outsider := st.seedUser(models.RoleMember)
		svc := newMemberService(st)

		_, err := svc.Invite(ctx, outsider.ID, org.ID, "new@example.com", models.OrgRoleMember)
		require.ErrorIs(t, err, services.ErrUnauthorized)
	})
}

func TestOrganizationBySlug(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	org := st.seedOrg("acme")
	svc := newMemberService(st)

	got, err := svc.OrganizationBySlug(ctx, org.Slug)
	require.NoError(t, err)
	require.Equal(t, org.ID, got.ID)

	_, err = svc.OrganizationBySlug(ctx, "missing")
	require.ErrorIs(t, err, services.ErrNotFound)
}
