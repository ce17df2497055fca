package services_test

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"orgblog/internal/models"
	"orgblog/internal/store"
)

// memStore is an in-memory implementation of the store interfaces. Fail*
// fields inject the next error; cleared after one use.
type memStore struct {
	users         map[uuid.UUID]*models.User
	accounts      map[uuid.UUID]*models.Account
	sessions      map[uuid.UUID]*models.Session
	members       map[uuid.UUID]*models.Member
	orgs          map[uuid.UUID]*models.Organization
	invitations   map[uuid.UUID]*models.Invitation
	verifications map[uuid.UUID]*models.Verification

	failAddMember    error
	failDeleteMember error
}

func newMemStore() *memStore {
	return &memStore{
		users:         make(map[uuid.UUID]*models.User),
		accounts:      make(map[uuid.UUID]*models.Account),
		sessions:      make(map[uuid.UUID]*models.Session),
		members:       make(map[uuid.UUID]*models.Member),
		orgs:          make(map[uuid.UUID]*models.Organization),
		invitations:   make(map[uuid.UUID]*models.Invitation),
		verifications: make(map[uuid.UUID]*models.Verification),
	}
}

func (m *memStore) seedUser(role models.GlobalRole) *models.User {
	id := uuid.New()
	u := &models.User{
		ID:        id,
		Name:      "Seed User",
		Email:     id.String() + "@example.com",
		Role:      role,
		CreatedAt: time.Now(),
	}
	m.users[id] = u
	return u
}

func (m *memStore) seedOrg(name string) *models.Organization {
	o := &models.Organization{ID: uuid.New(), Name: name, Slug: name, CreatedAt: time.Now()}
	m.orgs[o.ID] = o
	return o
}

func (m *memStore) seedMember(userID, orgID uuid.UUID, role models.OrgRole, createdAt time.Time) *models.Member {
	mb := &models.Member{
		ID:             uuid.New(),
		UserID:         userID,
		OrganizationID: orgID,
		Role:           role,
		CreatedAt:      createdAt,
	}
	m.members[mb.ID] = mb
	return mb
}

// UserStore

func (m *memStore) UserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) UserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memStore) CreateUserWithAccount(_ context.Context, user *models.User, account *models.Account) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return store.ErrDuplicate
		}
	}
	uc, ac := *user, *account
	m.users[user.ID] = &uc
	m.accounts[account.ID] = &ac
	return nil
}

func (m *memStore) UpdateUser(_ context.Context, user *models.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return store.ErrNotFound
	}
	for _, u := range m.users {
		if u.ID != user.ID && u.Email == user.Email {
			return store.ErrDuplicate
		}
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *memStore) SetCredentialPassword(_ context.Context, userID uuid.UUID, hash string) error {
	for _, a := range m.accounts {
		if a.UserID == userID && a.ProviderID == models.ProviderCredential {
			a.Password = hash
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *memStore) CredentialAccount(_ context.Context, userID uuid.UUID) (*models.Account, error) {
	for _, a := range m.accounts {
		if a.UserID == userID && a.ProviderID == models.ProviderCredential {
			cp := *a
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memStore) DeleteUser(_ context.Context, id uuid.UUID) error {
	if _, ok := m.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *memStore) ListUsers(_ context.Context, limit, offset int) ([]models.User, int64, error) {
	all := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		all = append(all, *u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, total, nil
}

// SessionStore

func (m *memStore) CreateSession(_ context.Context, session *models.Session) error {
	cp := *session
	m.sessions[session.ID] = &cp
	return nil
}

func (m *memStore) SessionByTokenHash(_ context.Context, hash string) (*models.Session, error) {
	for _, s := range m.sessions {
		if s.TokenHash == hash && !s.Revoked {
			cp := *s
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memStore) RevokeSession(_ context.Context, id uuid.UUID) error {
	if s, ok := m.sessions[id]; ok {
		s.Revoked = true
	}
	return nil
}

func (m *memStore) RevokeUserSessions(_ context.Context, userID uuid.UUID) error {
	for _, s := range m.sessions {
		if s.UserID == userID {
			s.Revoked = true
		}
	}
	return nil
}

// MemberStore

func (m *memStore) MemberByID(_ context.Context, id uuid.UUID) (*models.Member, error) {
	mb, ok := m.members[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *mb
	return &cp, nil
}

func (m *memStore) Membership(_ context.Context, userID, orgID uuid.UUID) (*models.Member, error) {
	for _, mb := range m.members {
		if mb.UserID == userID && mb.OrganizationID == orgID {
			cp := *mb
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memStore) OldestMembership(_ context.Context, userID uuid.UUID) (*models.Member, error) {
	var mine []*models.Member
	for _, mb := range m.members {
		if mb.UserID == userID {
			mine = append(mine, mb)
		}
	}
	if len(mine) == 0 {
		return nil, store.ErrNotFound
	}
	sort.Slice(mine, func(i, j int) bool {
		if !mine[i].CreatedAt.Equal(mine[j].CreatedAt) {
			return mine[i].CreatedAt.Before(mine[j].CreatedAt)
		}
		return mine[i].ID.String() < mine[j].ID.String()
	})
	cp := *mine[0]
	return &cp, nil
}

func (m *memStore) Memberships(_ context.Context, userID uuid.UUID) ([]models.Member, error) {
	var mine []models.Member
	for _, mb := range m.members {
		if mb.UserID == userID {
			mine = append(mine, *mb)
		}
	}
	return mine, nil
}

func (m *memStore) AddMember(_ context.Context, member *models.Member) error {
	if err := m.failAddMember; err != nil {
		m.failAddMember = nil
		return err
	}
	for _, mb := range m.members {
		if mb.UserID == member.UserID && mb.OrganizationID == member.OrganizationID {
			return store.ErrDuplicate
		}
	}
	cp := *member
	m.members[member.ID] = &cp
	return nil
}

func (m *memStore) DeleteMember(_ context.Context, id uuid.UUID) error {
	if err := m.failDeleteMember; err != nil {
		m.failDeleteMember = nil
		return err
	}
	if _, ok := m.members[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.members, id)
	return nil
}

// OrganizationStore

func (m *memStore) OrganizationByID(_ context.Context, id uuid.UUID) (*models.Organization, error) {
	o, ok := m.orgs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *memStore) OrganizationBySlug(_ context.Context, slug string) (*models.Organization, error) {
	for _, o := range m.orgs {
		if o.Slug == slug {
			cp := *o
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memStore) OrganizationsForUser(_ context.Context, userID uuid.UUID) ([]models.Organization, error) {
	var out []models.Organization
	for _, mb := range m.members {
		if mb.UserID != userID {
			continue
		}
		if o, ok := m.orgs[mb.OrganizationID]; ok {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memStore) CreateInvitation(_ context.Context, inv *models.Invitation) error {
	cp := *inv
	m.invitations[inv.ID] = &cp
	return nil
}

// VerificationStore

func (m *memStore) CreateVerification(_ context.Context, v *models.Verification) error {
	cp := *v
	m.verifications[v.ID] = &cp
	return nil
}

func (m *memStore) VerificationByValue(_ context.Context, value string) (*models.Verification, error) {
	for _, v := range m.verifications {
		if v.Value == value {
			cp := *v
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memStore) DeleteVerification(_ context.Context, id uuid.UUID) error {
	delete(m.verifications, id)
	return nil
}
