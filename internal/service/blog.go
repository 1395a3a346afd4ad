package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Rrens/tourism-api/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// BlogService handles blog posts, their comments and users' reading lists
type BlogService struct {
	posts    domain.BlogPostRepository
	comments domain.BlogCommentRepository
	saved    domain.SavedPostRepository
	users    domain.UserRepository
	now      func() time.Time
}

// NewBlogService creates a new blog service
func NewBlogService(
	posts domain.BlogPostRepository,
	comments domain.BlogCommentRepository,
	saved domain.SavedPostRepository,
	users domain.UserRepository,
) *BlogService {
	return &BlogService{
		posts:    posts,
		comments: comments,
		saved:    saved,
		users:    users,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreatePost adds a post written by the caller. The author name falls back
// to the caller's username.
func (s *BlogService) CreatePost(ctx context.Context, actor domain.Actor, input domain.BlogPostCreate) (*domain.BlogPost, error) {
	content, err := nonBlankContent(input.Content)
	if err != nil {
		return nil, err
	}

	slug, err := uniqueSlug(ctx, input.Title, s.posts.SlugExists)
	if err != nil {
		return nil, err
	}

	authorName := strings.TrimSpace(input.AuthorName)
	if authorName == "" {
		authorName = s.username(ctx, actor.UserID)
	}

	readTime := input.ReadTime
	if readTime == 0 {
		readTime = domain.DefaultReadTime
	}

	now := s.now()
	post := &domain.BlogPost{
		ID:         uuid.New(),
		AuthorID:   actor.UserID,
		AuthorName: authorName,
		Title:      strings.TrimSpace(input.Title),
		Slug:       slug,
		Excerpt:    strings.TrimSpace(input.Excerpt),
		Content:    content,
		Tags:       input.Tags,
		ImageURL:   input.ImageURL,
		Status:     orDefault(input.Status, domain.PostDraft),
		ReadTime:   readTime,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *BlogService) username(ctx context.Context, id uuid.UUID) string {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		log.Warn().Err(err).Str("user_id", id.String()).Msg("failed to resolve author name")
		return ""
	}
	return user.Username
}

// GetPost returns a post. Unpublished posts are visible to their author and admins only.
func (s *BlogService) GetPost(ctx context.Context, actor *domain.Actor, id uuid.UUID) (*domain.BlogPost, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canView(actor, post.AuthorID, post.Status, domain.PostPublished) {
		return nil, fmt.Errorf("%w: blog post", domain.ErrNotFound)
	}
	return post, nil
}

// ListPosts returns published posts, or every post of the caller when mine is set
func (s *BlogService) ListPosts(ctx context.Context, actor *domain.Actor, mine bool, filter domain.ListingFilter) ([]domain.BlogPost, error) {
	return s.posts.List(ctx, publicFilter(filter, actor, mine, domain.PostPublished))
}

// FeaturedPosts returns published featured posts
func (s *BlogService) FeaturedPosts(ctx context.Context, filter domain.ListingFilter) ([]domain.BlogPost, error) {
	featured := true
	filter.Featured = &featured
	return s.posts.List(ctx, publicFilter(filter, nil, false, domain.PostPublished))
}

// UpdatePost applies a partial update. Author or admin only; the slug never changes.
func (s *BlogService) UpdatePost(ctx context.Context, actor domain.Actor, id uuid.UUID, input domain.BlogPostUpdate) (*domain.BlogPost, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(actor, post.AuthorID); err != nil {
		return nil, err
	}

	if input.Title != nil {
		post.Title = strings.TrimSpace(*input.Title)
	}
	if input.Excerpt != nil {
		post.Excerpt = strings.TrimSpace(*input.Excerpt)
	}
	if input.Content != nil {
		content, err := nonBlankContent(*input.Content)
		if err != nil {
			return nil, err
		}
		post.Content = content
	}
	if input.Tags != nil {
		post.Tags = *input.Tags
	}
	if input.ImageURL != nil {
		post.ImageURL = *input.ImageURL
	}
	if input.AuthorName != nil {
		post.AuthorName = strings.TrimSpace(*input.AuthorName)
	}
	if input.ReadTime != nil {
		post.ReadTime = *input.ReadTime
	}
	if input.Status != nil {
		post.Status = *input.Status
	}

	post.UpdatedAt = s.now()
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post with its comments. Author or admin only.
func (s *BlogService) DeletePost(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwner(actor, post.AuthorID); err != nil {
		return err
	}
	return s.posts.Delete(ctx, id)
}

// ToggleFeatured flips is_featured. Admin only.
func (s *BlogService) ToggleFeatured(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.BlogPost, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	post.IsFeatured = !post.IsFeatured
	post.UpdatedAt = s.now()
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// RecordView counts a read of a visible post and returns the new total
func (s *BlogService) RecordView(ctx context.Context, actor *domain.Actor, id uuid.UUID) (int, error) {
	if _, err := s.GetPost(ctx, actor, id); err != nil {
		return 0, err
	}
	return s.posts.IncrementViews(ctx, id)
}

// ListComments returns the comments of a visible post, newest first
func (s *BlogService) ListComments(ctx context.Context, actor *domain.Actor, postID uuid.UUID) ([]domain.BlogComment, error) {
	if _, err := s.GetPost(ctx, actor, postID); err != nil {
		return nil, err
	}
	return s.comments.ListByPost(ctx, postID)
}

// GetComment returns one comment of a visible post
func (s *BlogService) GetComment(ctx context.Context, actor *domain.Actor, postID, id uuid.UUID) (*domain.BlogComment, error) {
	if _, err := s.GetPost(ctx, actor, postID); err != nil {
		return nil, err
	}
	return s.comments.Get(ctx, postID, id)
}

// CreateComment adds the caller's comment to a visible post
func (s *BlogService) CreateComment(ctx context.Context, actor domain.Actor, postID uuid.UUID, input domain.BlogCommentInput) (*domain.BlogComment, error) {
	content, err := nonBlankContent(input.Content)
	if err != nil {
		return nil, err
	}
	if _, err := s.GetPost(ctx, &actor, postID); err != nil {
		return nil, err
	}

	now := s.now()
	comment := &domain.BlogComment{
		ID:        uuid.New(),
		PostID:    postID,
		UserID:    actor.UserID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// UpdateComment edits the caller's own comment
func (s *BlogService) UpdateComment(ctx context.Context, actor domain.Actor, postID, id uuid.UUID, input domain.BlogCommentInput) (*domain.BlogComment, error) {
	content, err := nonBlankContent(input.Content)
	if err != nil {
		return nil, err
	}
	comment, err := s.comments.Get(ctx, postID, id)
	if err != nil {
		return nil, err
	}
	if comment.UserID != actor.UserID {
		return nil, fmt.Errorf("%w: only the author can edit a comment", domain.ErrForbidden)
	}

	comment.Content = content
	comment.UpdatedAt = s.now()
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a comment. Authors and admins may delete.
func (s *BlogService) DeleteComment(ctx context.Context, actor domain.Actor, postID, id uuid.UUID) error {
	comment, err := s.comments.Get(ctx, postID, id)
	if err != nil {
		return err
	}
	if !actor.CanModify(comment.UserID) {
		return fmt.Errorf("%w: only the author or an admin can delete a comment", domain.ErrForbidden)
	}
	return s.comments.Delete(ctx, id)
}

// MarkCommentHelpful increments a comment's helpful counter
func (s *BlogService) MarkCommentHelpful(ctx context.Context, postID, id uuid.UUID) (int, error) {
	if _, err := s.comments.Get(ctx, postID, id); err != nil {
		return 0, err
	}
	return s.comments.IncrementHelpful(ctx, id)
}

// ReportComment flags a comment for moderation
func (s *BlogService) ReportComment(ctx context.Context, postID, id uuid.UUID) error {
	if _, err := s.comments.Get(ctx, postID, id); err != nil {
		return err
	}
	return s.comments.MarkReported(ctx, id)
}

// SavePost adds a visible post to the caller's reading list
func (s *BlogService) SavePost(ctx context.Context, actor domain.Actor, postID uuid.UUID) (*domain.SavedPost, error) {
	if _, err := s.GetPost(ctx, &actor, postID); err != nil {
		return nil, err
	}

	saved := &domain.SavedPost{
		ID:        uuid.New(),
		PostID:    postID,
		UserID:    actor.UserID,
		CreatedAt: s.now(),
	}
	if err := s.saved.Save(ctx, saved); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("%w: post already saved", domain.ErrConflict)
		}
		return nil, err
	}
	return saved, nil
}

// UnsavePost removes a post from the caller's reading list
func (s *BlogService) UnsavePost(ctx context.Context, actor domain.Actor, postID uuid.UUID) error {
	removed, err := s.saved.Remove(ctx, postID, actor.UserID)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%w: post is not saved", domain.ErrInvalidInput)
	}
	return nil
}

// ListSavedPosts returns the caller's reading list
func (s *BlogService) ListSavedPosts(ctx context.Context, actor domain.Actor) ([]domain.SavedPost, error) {
	return s.saved.ListByUser(ctx, actor.UserID)
}
