package seed

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"orgblog/internal/models"
)

// Users creates the fixed admin accounts plus randomized authors and
// members, each with a credential account sharing the seed password.
func Users(db *gorm.DB) ([]models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash seed password: %w", err)
	}

	users := []models.User{
		{
			ID:            uuid.New(),
			Name:          "Super Admin",
			Email:         "superadmin@example.com",
			EmailVerified: true,
			Role:          models.RoleSuperAdmin,
			CreatedAt:     pastDate(365),
		},
		{
			ID:            uuid.New(),
			Name:          "Admin User",
			Email:         "admin@example.com",
			EmailVerified: true,
			Role:          models.RoleAdmin,
			CreatedAt:     pastDate(365),
		},
	}

	for i := 0; i < 5; i++ {
		name := fullName()
		users = append(users, models.User{
			ID:            uuid.New(),
			Name:          name,
			Email:         emailFor(name, i),
			EmailVerified: true,
			Role:          models.RoleAuthor,
			CreatedAt:     pastDate(365),
		})
	}
	for i := 0; i < 10; i++ {
		name := fullName()
		users = append(users, models.User{
			ID:            uuid.New(),
			Name:          name,
			Email:         emailFor(name, 100+i),
			EmailVerified: rand.Intn(2) == 0,
			Role:          models.RoleMember,
			CreatedAt:     pastDate(365),
		})
	}

	if err := db.Create(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to seed users: %w", err)
	}

	accounts := make([]models.Account, 0, len(users))
	for _, u := range users {
		accounts = append(accounts, models.Account{
			ID:         uuid.New(),
			UserID:     u.ID,
			ProviderID: models.ProviderCredential,
			AccountID:  u.ID.String(),
			Password:   string(hash),
			CreatedAt:  u.CreatedAt,
		})
	}
	if err := db.Create(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to seed accounts: %w", err)
	}

	return users, nil
}

// Verifications creates a handful of pending email-verification tokens.
func Verifications(db *gorm.DB) error {
	verifications := make([]models.Verification, 0, 5)
	for i := 0; i < 5; i++ {
		verifications = append(verifications, models.Verification{
			ID:         uuid.New(),
			Identifier: fmt.Sprintf("pending-%d@example.com", i),
			Value:      uuid.NewString(),
			ExpiresAt:  futureDate(7),
			CreatedAt:  pastDate(7),
		})
	}
	if err := db.Create(&verifications).Error; err != nil {
		return fmt.Errorf("failed to seed verifications: %w", err)
	}
	return nil
}
