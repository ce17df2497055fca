package seed

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"orgblog/internal/models"
)

var orgFixtures = []struct {
	name string
	slug string
}{
	{"Acme Publishing", "acme-publishing"},
	{"Indie Writers Collective", "indie-writers-collective"},
	{"Northwind Media", "northwind-media"},
}

// Organizations creates the fixture tenants and spreads memberships across
// the seeded users. Each org gets exactly one owner; every other membership
// role is randomized, deduplicated per (user, organization) pair.
func Organizations(db *gorm.DB, users []models.User) ([]models.Organization, error) {
	orgs := make([]models.Organization, 0, len(orgFixtures))
	for _, f := range orgFixtures {
		orgs = append(orgs, models.Organization{
			ID:        uuid.New(),
			Name:      f.name,
			Slug:      f.slug,
			CreatedAt: pastDate(365),
		})
	}
	if err := db.Create(&orgs).Error; err != nil {
		return nil, fmt.Errorf("failed to seed organizations: %w", err)
	}

	var members []models.Member
	joined := make(map[uuid.UUID]map[uuid.UUID]bool, len(orgs))
	add := func(userID, orgID uuid.UUID, role models.OrgRole) {
		if joined[orgID] == nil {
			joined[orgID] = make(map[uuid.UUID]bool)
		}
		if joined[orgID][userID] {
			return
		}
		joined[orgID][userID] = true
		members = append(members, models.Member{
			ID:             uuid.New(),
			UserID:         userID,
			OrganizationID: orgID,
			Role:           role,
			CreatedAt:      pastDate(300),
		})
	}

	// Owners rotate through the first users, and the first owner also joins
	// the second org as a plain member so at least one user holds different
	// roles in different organizations.
	for i, org := range orgs {
		add(users[i%len(users)].ID, org.ID, models.OrgRoleOwner)
	}
	add(users[0].ID, orgs[1].ID, models.OrgRoleMember)

	for _, org := range orgs {
		count := 3 + rand.Intn(4)
		for j := 0; j < count; j++ {
			role := models.OrgRoleMember
			if rand.Intn(4) == 0 {
				role = models.OrgRoleAdmin
			}
			add(pick(users).ID, org.ID, role)
		}
	}
	if err := db.Create(&members).Error; err != nil {
		return nil, fmt.Errorf("failed to seed members: %w", err)
	}

	var invitations []models.Invitation
	for i := 0; i < 3; i++ {
		org := pick(orgs)
		inviter := pick(users)
		invitations = append(invitations, models.Invitation{
			ID:             uuid.New(),
			OrganizationID: org.ID,
			Email:          fmt.Sprintf("invitee-%d@example.com", i),
			Role:           models.OrgRoleMember,
			Status:         models.InvitationPending,
			InviterID:      inviter.ID,
			ExpiresAt:      futureDate(3),
			CreatedAt:      pastDate(3),
		})
	}
	if err := db.Create(&invitations).Error; err != nil {
		return nil, fmt.Errorf("failed to seed invitations: %w", err)
	}

	return orgs, nil
}
