package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/Rrens/tourism-api/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// BlogPostRepository implements domain.BlogPostRepository
type BlogPostRepository struct {
	db *DB
}

// NewBlogPostRepository creates a new blog post repository
func NewBlogPostRepository(db *DB) *BlogPostRepository {
	return &BlogPostRepository{db: db}
}

const blogPostColumns = `id, author_id, author_name, title, slug, excerpt, content, tags, image_url,
	status, views, read_time, is_featured, created_at, updated_at`

func scanBlogPost(row pgx.Row) (*domain.BlogPost, error) {
	var p domain.BlogPost
	err := row.Scan(
		&p.ID,
		&p.AuthorID,
		&p.AuthorName,
		&p.Title,
		&p.Slug,
		&p.Excerpt,
		&p.Content,
		(*[]string)(&p.Tags),
		&p.ImageURL,
		&p.Status,
		&p.Views,
		&p.ReadTime,
		&p.IsFeatured,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *BlogPostRepository) Create(ctx context.Context, p *domain.BlogPost) error {
	query := `
		INSERT INTO blog_posts (id, author_id, author_name, title, slug, excerpt, content, tags, image_url,
			status, views, read_time, is_featured, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.db.conn(ctx).Exec(ctx, query,
		p.ID, p.AuthorID, p.AuthorName, p.Title, p.Slug, p.Excerpt, p.Content, []string(p.Tags), p.ImageURL,
		p.Status, p.Views, p.ReadTime, p.IsFeatured, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return mapError(err, "create blog post")
	}
	return nil
}

func (r *BlogPostRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.BlogPost, error) {
	query := `SELECT ` + blogPostColumns + ` FROM blog_posts WHERE id = $1`
	p, err := scanBlogPost(r.db.conn(ctx).QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err, "get blog post")
	}
	return p, nil
}

func (r *BlogPostRepository) List(ctx context.Context, filter domain.ListingFilter) ([]domain.BlogPost, error) {
	where, args := postWhere(filter)
	order, args := pageOrder(filter, domain.BlogOrderings, args)

	rows, err := r.db.conn(ctx).Query(ctx, `SELECT `+blogPostColumns+` FROM blog_posts`+where+order, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list blog posts: %w", err)
	}
	defer rows.Close()

	posts := []domain.BlogPost{}
	for rows.Next() {
		p, err := scanBlogPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan blog post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// Update writes the author-editable columns. views is only changed by IncrementViews.
func (r *BlogPostRepository) Update(ctx context.Context, p *domain.BlogPost) error {
	query := `
		UPDATE blog_posts
		SET author_name = $1, title = $2, excerpt = $3, content = $4, tags = $5, image_url = $6,
			status = $7, read_time = $8, is_featured = $9, updated_at = $10
		WHERE id = $11
	`
	tag, err := r.db.conn(ctx).Exec(ctx, query,
		p.AuthorName, p.Title, p.Excerpt, p.Content, []string(p.Tags), p.ImageURL,
		p.Status, p.ReadTime, p.IsFeatured, p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		return mapError(err, "update blog post")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to update blog post: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *BlogPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, "blog_posts", id)
}

func (r *BlogPostRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	return slugExists(ctx, r.db, "blog_posts", slug)
}

func (r *BlogPostRepository) IncrementViews(ctx context.Context, id uuid.UUID) (int, error) {
	var views int
	err := r.db.conn(ctx).QueryRow(ctx, `UPDATE blog_posts SET views = views + 1 WHERE id = $1 RETURNING views`, id).Scan(&views)
	if err != nil {
		return 0, mapError(err, "count blog post view")
	}
	return views, nil
}

// postWhere renders the post list filters. Category matches a tag.
func postWhere(f domain.ListingFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", len(args))))
	}

	if f.Featured != nil {
		add("is_featured = ?", *f.Featured)
	}
	if f.Category != "" {
		add("? = ANY(tags)", f.Category)
	}
	if f.Status != "" {
		add("status = ?", f.Status)
	}
	if f.OwnerID != nil {
		add("author_id = ?", *f.OwnerID)
	}
	if f.Search != "" {
		add("(title ILIKE ? OR excerpt ILIKE ? OR content ILIKE ?)", "%"+f.Search+"%")
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// BlogCommentRepository implements domain.BlogCommentRepository
type BlogCommentRepository struct {
	db *DB
}

// NewBlogCommentRepository creates a new comment repository
func NewBlogCommentRepository(db *DB) *BlogCommentRepository {
	return &BlogCommentRepository{db: db}
}

const blogCommentColumns = `id, post_id, user_id, content, helpful_count, reported, created_at, updated_at`

func scanBlogComment(row pgx.Row) (*domain.BlogComment, error) {
	var c domain.BlogComment
	if err := row.Scan(&c.ID, &c.PostID, &c.UserID, &c.Content, &c.HelpfulCount, &c.Reported, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *BlogCommentRepository) Create(ctx context.Context, c *domain.BlogComment) error {
	query := `
		INSERT INTO blog_comments (id, post_id, user_id, content, helpful_count, reported, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.conn(ctx).Exec(ctx, query,
		c.ID, c.PostID, c.UserID, c.Content, c.HelpfulCount, c.Reported, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return mapError(err, "create comment")
	}
	return nil
}

func (r *BlogCommentRepository) Get(ctx context.Context, postID, id uuid.UUID) (*domain.BlogComment, error) {
	query := `SELECT ` + blogCommentColumns + ` FROM blog_comments WHERE id = $1 AND post_id = $2`
	c, err := scanBlogComment(r.db.conn(ctx).QueryRow(ctx, query, id, postID))
	if err != nil {
		return nil, mapError(err, "get comment")
	}
	return c, nil
}

func (r *BlogCommentRepository) ListByPost(ctx context.Context, postID uuid.UUID) ([]domain.BlogComment, error) {
	query := `SELECT ` + blogCommentColumns + ` FROM blog_comments WHERE post_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.conn(ctx).Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []domain.BlogComment{}
	for rows.Next() {
		c, err := scanBlogComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, *c)
	}
	return comments, rows.Err()
}

func (r *BlogCommentRepository) Update(ctx context.Context, c *domain.BlogComment) error {
	tag, err := r.db.conn(ctx).Exec(ctx,
		`UPDATE blog_comments SET content = $1, updated_at = $2 WHERE id = $3`,
		c.Content, c.UpdatedAt, c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to update comment: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *BlogCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, "blog_comments", id)
}

func (r *BlogCommentRepository) IncrementHelpful(ctx context.Context, id uuid.UUID) (int, error) {
	var count int
	err := r.db.conn(ctx).QueryRow(ctx,
		`UPDATE blog_comments SET helpful_count = helpful_count + 1 WHERE id = $1 RETURNING helpful_count`, id,
	).Scan(&count)
	if err != nil {
		return 0, mapError(err, "mark comment helpful")
	}
	return count, nil
}

func (r *BlogCommentRepository) MarkReported(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.conn(ctx).Exec(ctx, `UPDATE blog_comments SET reported = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to report comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to report comment: %w", domain.ErrNotFound)
	}
	return nil
}

// SavedPostRepository implements domain.SavedPostRepository
type SavedPostRepository struct {
	db *DB
}

// NewSavedPostRepository creates a new reading-list repository
func NewSavedPostRepository(db *DB) *SavedPostRepository {
	return &SavedPostRepository{db: db}
}

func (r *SavedPostRepository) Save(ctx context.Context, s *domain.SavedPost) error {
	_, err := r.db.conn(ctx).Exec(ctx,
		`INSERT INTO saved_posts (id, post_id, user_id, created_at) VALUES ($1, $2, $3, $4)`,
		s.ID, s.PostID, s.UserID, s.CreatedAt,
	)
	if err != nil {
		return mapError(err, "save post")
	}
	return nil
}

func (r *SavedPostRepository) Remove(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	tag, err := r.db.conn(ctx).Exec(ctx, `DELETE FROM saved_posts WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to unsave post: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *SavedPostRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.SavedPost, error) {
	rows, err := r.db.conn(ctx).Query(ctx, `
		SELECT id, post_id, user_id, created_at
		FROM saved_posts
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved posts: %w", err)
	}
	defer rows.Close()

	saved := []domain.SavedPost{}
	for rows.Next() {
		var s domain.SavedPost
		if err := rows.Scan(&s.ID, &s.PostID, &s.UserID, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan saved post: %w", err)
		}
		saved = append(saved, s)
	}
	return saved, rows.Err()
}
