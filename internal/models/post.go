package models

import (
	"time"

	"github.com/google/uuid"
)

type PostStatus string

const (
	PostDraft     PostStatus = "draft"
	PostPublished PostStatus = "published"
	PostArchived  PostStatus = "archived"
)

type Post struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title       string     `gorm:"size:300;not null" json:"title"`
	Slug        string     `gorm:"size:300;not null;uniqueIndex" json:"slug"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	Excerpt     string     `gorm:"size:500" json:"excerpt,omitempty"`
	Status      PostStatus `gorm:"size:20;not null;default:'draft';index" json:"status"`
	AuthorID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"author_id"`
	CategoryID  *uuid.UUID `gorm:"type:uuid;index" json:"category_id,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	ViewCount   int64      `gorm:"not null;default:0" json:"view_count"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Author   User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Tags     []Tag     `gorm:"many2many:post_tags" json:"tags,omitempty"`
	Comments []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}

type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;index" json:"post_id"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null;index" json:"author_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Slug        string    `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	Description string    `gorm:"size:500" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Tag struct {
	ID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name string    `gorm:"size:100;not null" json:"name"`
	Slug string    `gorm:"size:100;not null;uniqueIndex" json:"slug"`
}

// PostView is one recorded read of a published post. UserID is nil for
// anonymous readers.
type PostView struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PostID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"post_id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	IPAddress string     `gorm:"size:45" json:"-"`
	ViewedAt  time.Time  `gorm:"not null;index" json:"viewed_at"`
}

const (
	ReportPending   = "pending"
	ReportReviewed  = "reviewed"
	ReportActioned  = "actioned"
	ReportDismissed = "dismissed"
)

// CommentReport is a reader's complaint about a comment, reviewed by
// application admins.
type CommentReport struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CommentID     uuid.UUID `gorm:"type:uuid;not null;index" json:"comment_id"`
	ReporterID    uuid.UUID `gorm:"type:uuid;not null;index" json:"reporter_id"`
	Reason        string    `gorm:"size:500;not null" json:"reason"`
	Status        string    `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ModeratorNote string    `gorm:"size:500" json:"moderator_note,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
