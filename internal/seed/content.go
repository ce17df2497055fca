package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"orgblog/internal/models"
)

var categoryFixtures = []struct {
	name string
	desc string
}{
	{"Technology", "Software, hardware and everything in between"},
	{"Web Development", "Frontend, backend and full-stack topics"},
	{"DevOps", "Infrastructure, deployment and operations"},
	{"Databases", "Storage engines, schemas and query tuning"},
	{"Security", "Application and infrastructure security"},
	{"Career", "Growth, hiring and working in tech"},
	{"Open Source", "Projects, licensing and community"},
	{"Tutorials", "Step-by-step guides and walkthroughs"},
	{"Opinion", "Commentary and hot takes"},
	{"News", "Announcements and industry updates"},
}

var tagNames = []string{
	"golang", "postgres", "docker", "kubernetes", "react", "typescript",
	"testing", "performance", "api-design", "authentication", "ci-cd",
	"observability", "refactoring", "architecture", "beginners",
}

// Categories inserts the fixed category list.
func Categories(db *gorm.DB) ([]models.Category, error) {
	categories := make([]models.Category, 0, len(categoryFixtures))
	for _, f := range categoryFixtures {
		categories = append(categories, models.Category{
			ID:          uuid.New(),
			Name:        f.name,
			Slug:        slugify(f.name),
			Description: f.desc,
			CreatedAt:   pastDate(365),
		})
	}
	if err := db.Create(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to seed categories: %w", err)
	}
	return categories, nil
}

// Tags inserts the fixed tag list.
func Tags(db *gorm.DB) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(tagNames))
	for _, name := range tagNames {
		tags = append(tags, models.Tag{
			ID:   uuid.New(),
			Name: name,
			Slug: slugify(name),
		})
	}
	if err := db.Create(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to seed tags: %w", err)
	}
	return tags, nil
}

// Posts creates a few posts per author. Roughly 70% are published with a
// PublishedAt in the past; the rest stay drafts. Each post gets 1-3 random
// tags through the post_tags join table.
func Posts(db *gorm.DB, users []models.User, categories []models.Category, tags []models.Tag) ([]models.Post, error) {
	var authors []models.User
	for _, u := range users {
		if u.Role == models.RoleAuthor || u.Role.IsAdmin() {
			authors = append(authors, u)
		}
	}

	var posts []models.Post
	seenSlugs := map[string]bool{}
	for _, author := range authors {
		count := 2 + rand.Intn(3)
		for i := 0; i < count; i++ {
			title := pick(titleWords) + " " + pick(titleTopics)
			slug := slugify(title)
			if seenSlugs[slug] {
				slug = slug + "-" + uuid.NewString()[:8]
			}
			seenSlugs[slug] = true

			content := paragraphs(3 + rand.Intn(4))
			category := pick(categories)

			post := models.Post{
				ID:         uuid.New(),
				Title:      title,
				Slug:       slug,
				Content:    content,
				Excerpt:    excerpt(content),
				Status:     models.PostDraft,
				AuthorID:   author.ID,
				CategoryID: &category.ID,
				CreatedAt:  pastDate(180),
			}
			if rand.Intn(10) < 7 {
				published := post.CreatedAt.Add(time.Duration(rand.Intn(72)) * time.Hour)
				post.Status = models.PostPublished
				post.PublishedAt = &published
			}
			posts = append(posts, post)
		}
	}
	if err := db.Create(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to seed posts: %w", err)
	}

	for i := range posts {
		picked := map[uuid.UUID]bool{}
		count := 1 + rand.Intn(3)
		var postTags []models.Tag
		for len(postTags) < count {
			t := pick(tags)
			if picked[t.ID] {
				continue
			}
			picked[t.ID] = true
			postTags = append(postTags, t)
		}
		if err := db.Model(&posts[i]).Association("Tags").Append(postTags); err != nil {
			return nil, fmt.Errorf("failed to seed post tags: %w", err)
		}
	}

	return posts, nil
}

// Comments adds a few reader comments to each published post.
func Comments(db *gorm.DB, users []models.User, posts []models.Post) error {
	var comments []models.Comment
	for _, post := range posts {
		if post.Status != models.PostPublished {
			continue
		}
		count := rand.Intn(5)
		for i := 0; i < count; i++ {
			author := pick(users)
			comments = append(comments, models.Comment{
				ID:        uuid.New(),
				PostID:    post.ID,
				AuthorID:  author.ID,
				Content:   pick(commentTexts),
				CreatedAt: pastDate(60),
			})
		}
	}
	if len(comments) == 0 {
		return nil
	}
	if err := db.Create(&comments).Error; err != nil {
		return fmt.Errorf("failed to seed comments: %w", err)
	}
	return nil
}

// Views records view rows for published posts, a mix of logged-in and
// anonymous readers, and backfills the denormalized view_count.
func Views(db *gorm.DB, users []models.User, posts []models.Post) error {
	for i := range posts {
		if posts[i].Status != models.PostPublished {
			continue
		}
		count := rand.Intn(40)
		views := make([]models.PostView, 0, count)
		for v := 0; v < count; v++ {
			view := models.PostView{
				ID:        uuid.New(),
				PostID:    posts[i].ID,
				IPAddress: fmt.Sprintf("192.0.2.%d", rand.Intn(255)),
				ViewedAt:  pastDate(60),
			}
			if rand.Intn(2) == 0 {
				u := pick(users)
				view.UserID = &u.ID
			}
			views = append(views, view)
		}
		if len(views) > 0 {
			if err := db.Create(&views).Error; err != nil {
				return fmt.Errorf("failed to seed post views: %w", err)
			}
		}
		err := db.Model(&posts[i]).Update("view_count", len(views)).Error
		if err != nil {
			return fmt.Errorf("failed to update view count: %w", err)
		}
	}
	return nil
}

func excerpt(content string) string {
	if idx := strings.Index(content, "\n"); idx > 0 && idx < 200 {
		return content[:idx]
	}
	if len(content) > 200 {
		return content[:200]
	}
	return content
}
