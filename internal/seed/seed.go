// Package seed populates the database with randomized fixture data in
// dependency order: users → accounts → organizations → categories/tags →
// posts → relations → comments/views → verifications. It is a development
// tool, not part of the runtime system.
package seed

import (
	"log/slog"

	"gorm.io/gorm"

	"orgblog/internal/models"
)

// Run wipes existing rows in reverse dependency order and reseeds
// everything. Wipe failures on individual tables are logged and skipped so a
// partially migrated database still seeds what it can.
func Run(db *gorm.DB) error {
	slog.Info("starting database seeding")
	wipe(db)

	users, err := Users(db)
	if err != nil {
		return err
	}
	orgs, err := Organizations(db, users)
	if err != nil {
		return err
	}
	categories, err := Categories(db)
	if err != nil {
		return err
	}
	tags, err := Tags(db)
	if err != nil {
		return err
	}
	posts, err := Posts(db, users, categories, tags)
	if err != nil {
		return err
	}
	if err := Comments(db, users, posts); err != nil {
		return err
	}
	if err := Views(db, users, posts); err != nil {
		return err
	}
	if err := Verifications(db); err != nil {
		return err
	}

	published := 0
	for _, p := range posts {
		if p.Status == models.PostPublished {
			published++
		}
	}
	slog.Info("database seeding completed",
		"users", len(users),
		"organizations", len(orgs),
		"categories", len(categories),
		"tags", len(tags),
		"posts", len(posts),
		"published", published,
	)
	slog.Info("login credentials", "superadmin", "superadmin@example.com", "admin", "admin@example.com", "password", seedPassword)
	return nil
}

func wipe(db *gorm.DB) {
	// post_tags is a join table without a model; clear it directly.
	if err := db.Exec("DELETE FROM post_tags").Error; err != nil {
		slog.Warn("wipe skipped", "table", "post_tags", "error", err.Error())
	}

	tables := []struct {
		name  string
		model interface{}
	}{
		{"comment_reports", &models.CommentReport{}},
		{"post_views", &models.PostView{}},
		{"comments", &models.Comment{}},
		{"posts", &models.Post{}},
		{"tags", &models.Tag{}},
		{"categories", &models.Category{}},
		{"invitations", &models.Invitation{}},
		{"members", &models.Member{}},
		{"organizations", &models.Organization{}},
		{"sessions", &models.Session{}},
		{"accounts", &models.Account{}},
		{"verifications", &models.Verification{}},
		{"users", &models.User{}},
	}
	for _, t := range tables {
		err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(t.model).Error
		if err != nil {
			slog.Warn("wipe skipped", "table", t.name, "error", err.Error())
		}
	}
}
