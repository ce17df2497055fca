package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"orgblog/internal/dto"
	"orgblog/internal/models"
)

var ErrCommentRejected = errors.New("comment does not meet content guidelines")

// ContentService serves the public read surface over posts, comments,
// categories and tags, and records post views. These are inert payload
// records; the service queries GORM directly.
type ContentService struct {
	db           *gorm.DB
	urlPattern   *regexp.Regexp
	emailPattern *regexp.Regexp
	spamPattern  *regexp.Regexp
}

func NewContentService(db *gorm.DB) *ContentService {
	return &ContentService{
		db:           db,
		urlPattern:   regexp.MustCompile(`(?i)(https?://\S+|www\.\S+\.\S+)`),
		emailPattern: regexp.MustCompile(`(?i)\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`),
		spamPattern:  regexp.MustCompile(`(!{4,}|\?{4,}|\.{5,})`),
	}
}

func (s *ContentService) ListPosts(ctx context.Context, categorySlug, tagSlug string, limit, offset int) ([]models.Post, int64, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	q := s.db.WithContext(ctx).Model(&models.Post{}).
		Where("posts.status = ?", models.PostPublished)

	if categorySlug != "" {
		q = q.Joins("JOIN categories ON categories.id = posts.category_id").
			Where("categories.slug = ?", categorySlug)
	}
	if tagSlug != "" {
		q = q.Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Joins("JOIN tags ON tags.id = post_tags.tag_id").
			Where("tags.slug = ?", tagSlug)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}

	var posts []models.Post
	err := q.Preload("Author").Preload("Category").Preload("Tags").
		Order("posts.published_at DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}
	return posts, total, nil
}

// PostBySlug returns a published post and records the read: a PostView row
// plus an atomic view_count increment, in one transaction.
func (s *ContentService) PostBySlug(ctx context.Context, slug string, viewerID *uuid.UUID, ip string) (*models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).
		Preload("Author").Preload("Category").Preload("Tags").
		First(&post, "slug = ? AND status = ?", slug, models.PostPublished).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		view := models.PostView{
			ID:        uuid.New(),
			PostID:    post.ID,
			UserID:    viewerID,
			IPAddress: ip,
			ViewedAt:  time.Now(),
		}
		if err := tx.Create(&view).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).Where("id = ?", post.ID).
			UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}
	post.ViewCount++
	return &post, nil
}

func (s *ContentService) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}
	return categories, nil
}

func (s *ContentService) ListTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}
	return tags, nil
}

func (s *ContentService) CommentsForPost(ctx context.Context, postSlug string, limit, offset int) ([]models.Comment, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var post models.Post
	err := s.db.WithContext(ctx).
		Select("id").First(&post, "slug = ? AND status = ?", postSlug, models.PostPublished).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}

	var comments []models.Comment
	err = s.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", post.ID).
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}
	return comments, nil
}

func (s *ContentService) CreateComment(ctx context.Context, authorID uuid.UUID, postSlug string, req *dto.CreateCommentRequest) (*models.Comment, error) {
	if err := checkStruct(req); err != nil {
		return nil, err
	}
	if ok, reason := s.filterContent(req.Content); !ok {
		return nil, fmt.Errorf("%w: %s", ErrCommentRejected, reason)
	}

	var post models.Post
	err := s.db.WithContext(ctx).
		Select("id").First(&post, "slug = ? AND status = ?", postSlug, models.PostPublished).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}

	comment := models.Comment{
		ID:       uuid.New(),
		PostID:   post.ID,
		AuthorID: authorID,
		Content:  req.Content,
	}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}
	return &comment, nil
}

// filterContent applies light heuristics before a comment is stored.
func (s *ContentService) filterContent(text string) (bool, string) {
	if s.urlPattern.MatchString(text) {
		return false, "url_not_allowed"
	}
	if s.emailPattern.MatchString(text) {
		return false, "contact_info_not_allowed"
	}
	if s.spamPattern.MatchString(text) {
		return false, "spam_detected"
	}
	return true, ""
}
