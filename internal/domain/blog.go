package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Blog post statuses
const (
	PostDraft     = "draft"
	PostPublished = "published"
	PostArchived  = "archived"
)

// DefaultReadTime is the reading time in minutes assumed when the author gives none
const DefaultReadTime = 5

// BlogPost is a travel article. Only published posts are public.
type BlogPost struct {
	ID         uuid.UUID  `json:"id"`
	AuthorID   uuid.UUID  `json:"author_id"`
	AuthorName string     `json:"author_name"`
	Title      string     `json:"title"`
	Slug       string     `json:"slug"`
	Excerpt    string     `json:"excerpt"`
	Content    string     `json:"content"`
	Tags       StringList `json:"tags"`
	ImageURL   string     `json:"image_url"`
	Status     string     `json:"status"`
	Views      int        `json:"views"`
	ReadTime   int        `json:"read_time"`
	IsFeatured bool       `json:"is_featured"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// BlogPostCreate represents blog post creation data
type BlogPostCreate struct {
	Title      string     `json:"title" validate:"required,max=200"`
	Excerpt    string     `json:"excerpt" validate:"max=500"`
	Content    string     `json:"content" validate:"required"`
	Tags       StringList `json:"tags"`
	ImageURL   string     `json:"image_url" validate:"omitempty,url"`
	AuthorName string     `json:"author_name" validate:"max=100"`
	ReadTime   int        `json:"read_time" validate:"omitempty,min=1,max=600"`
	Status     string     `json:"status" validate:"omitempty,oneof=draft published archived"`
}

// BlogPostUpdate represents a partial blog post update
type BlogPostUpdate struct {
	Title      *string     `json:"title,omitempty" validate:"omitempty,max=200"`
	Excerpt    *string     `json:"excerpt,omitempty" validate:"omitempty,max=500"`
	Content    *string     `json:"content,omitempty"`
	Tags       *StringList `json:"tags,omitempty"`
	ImageURL   *string     `json:"image_url,omitempty" validate:"omitempty,url"`
	AuthorName *string     `json:"author_name,omitempty" validate:"omitempty,max=100"`
	ReadTime   *int        `json:"read_time,omitempty" validate:"omitempty,min=1,max=600"`
	Status     *string     `json:"status,omitempty" validate:"omitempty,oneof=draft published archived"`
}

// BlogOrderings are the orderings accepted by the post list endpoint
var BlogOrderings = map[string]bool{
	"views":       true,
	"-views":      true,
	"created_at":  true,
	"-created_at": true,
}

// BlogComment is a reader's comment on a post
type BlogComment struct {
	ID           uuid.UUID `json:"id"`
	PostID       uuid.UUID `json:"post_id"`
	UserID       uuid.UUID `json:"user_id"`
	Content      string    `json:"content"`
	HelpfulCount int       `json:"helpful_count"`
	Reported     bool      `json:"reported"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BlogCommentInput carries comment text for create and update
type BlogCommentInput struct {
	Content string `json:"content" validate:"required,max=5000"`
}

// SavedPost is a post in a user's reading list
type SavedPost struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"post_id"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// BlogPostRepository defines the interface for blog post storage.
// List reads Category as a tag filter and OwnerID as the author.
type BlogPostRepository interface {
	Create(ctx context.Context, post *BlogPost) error
	GetByID(ctx context.Context, id uuid.UUID) (*BlogPost, error)
	List(ctx context.Context, filter ListingFilter) ([]BlogPost, error)
	Update(ctx context.Context, post *BlogPost) error
	Delete(ctx context.Context, id uuid.UUID) error
	SlugExists(ctx context.Context, slug string) (bool, error)
	// IncrementViews returns the new view count.
	IncrementViews(ctx context.Context, id uuid.UUID) (int, error)
}

// BlogCommentRepository defines the interface for comment storage
type BlogCommentRepository interface {
	Create(ctx context.Context, comment *BlogComment) error
	Get(ctx context.Context, postID, id uuid.UUID) (*BlogComment, error)
	ListByPost(ctx context.Context, postID uuid.UUID) ([]BlogComment, error)
	Update(ctx context.Context, comment *BlogComment) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementHelpful(ctx context.Context, id uuid.UUID) (int, error)
	MarkReported(ctx context.Context, id uuid.UUID) error
}

// SavedPostRepository defines the interface for reading-list storage
type SavedPostRepository interface {
	// Save returns ErrConflict when the post is already saved.
	Save(ctx context.Context, saved *SavedPost) error
	// Remove reports false when nothing was saved.
	Remove(ctx context.Context, postID, userID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]SavedPost, error)
}
