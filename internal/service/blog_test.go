package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Rrens/tourism-api/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type memBlogStore struct {
	mu       sync.Mutex
	posts    map[uuid.UUID]domain.BlogPost
	comments map[uuid.UUID]domain.BlogComment
	saved    map[[2]uuid.UUID]domain.SavedPost
}

func newMemBlogStore() *memBlogStore {
	return &memBlogStore{
		posts:    map[uuid.UUID]domain.BlogPost{},
		comments: map[uuid.UUID]domain.BlogComment{},
		saved:    map[[2]uuid.UUID]domain.SavedPost{},
	}
}

type memPosts struct{ s *memBlogStore }

type memComments struct{ s *memBlogStore }

type memSavedPosts struct{ s *memBlogStore }

func (r memPosts) Create(ctx context.Context, p *domain.BlogPost) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.posts[p.ID] = *p
	return nil
}

func (r memPosts) GetByID(ctx context.Context, id uuid.UUID) (*domain.BlogPost, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.posts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r memPosts) List(ctx context.Context, f domain.ListingFilter) ([]domain.BlogPost, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []domain.BlogPost{}
	for _, p := range r.s.posts {
		if f.Featured != nil && p.IsFeatured != *f.Featured {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.OwnerID != nil && p.AuthorID != *f.OwnerID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r memPosts) Update(ctx context.Context, p *domain.BlogPost) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.posts[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	updated := *p
	updated.Views = old.Views
	r.s.posts[p.ID] = updated
	return nil
}

func (r memPosts) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.posts, id)
	for cid, c := range r.s.comments {
		if c.PostID == id {
			delete(r.s.comments, cid)
		}
	}
	return nil
}

func (r memPosts) SlugExists(ctx context.Context, slug string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.posts {
		if p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r memPosts) IncrementViews(ctx context.Context, id uuid.UUID) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.posts[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	p.Views++
	r.s.posts[id] = p
	return p.Views, nil
}

func (r memComments) Create(ctx context.Context, c *domain.BlogComment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.comments[c.ID] = *c
	return nil
}

func (r memComments) Get(ctx context.Context, postID, id uuid.UUID) (*domain.BlogComment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.comments[id]
	if !ok || c.PostID != postID {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r memComments) ListByPost(ctx context.Context, postID uuid.UUID) ([]domain.BlogComment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []domain.BlogComment{}
	for _, c := range r.s.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r memComments) Update(ctx context.Context, c *domain.BlogComment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.comments[c.ID] = *c
	return nil
}

func (r memComments) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.comments, id)
	return nil
}

func (r memComments) IncrementHelpful(ctx context.Context, id uuid.UUID) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := r.s.comments[id]
	c.HelpfulCount++
	r.s.comments[id] = c
	return c.HelpfulCount, nil
}

func (r memComments) MarkReported(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := r.s.comments[id]
	c.Reported = true
	r.s.comments[id] = c
	return nil
}

func (r memSavedPosts) Save(ctx context.Context, s *domain.SavedPost) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := [2]uuid.UUID{s.PostID, s.UserID}
	if _, ok := r.s.saved[key]; ok {
		return domain.ErrConflict
	}
	r.s.saved[key] = *s
	return nil
}

func (r memSavedPosts) Remove(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := [2]uuid.UUID{postID, userID}
	if _, ok := r.s.saved[key]; !ok {
		return false, nil
	}
	delete(r.s.saved, key)
	return true, nil
}

func (r memSavedPosts) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.SavedPost, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []domain.SavedPost{}
	for _, s := range r.s.saved {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func newTestBlogService(users domain.UserRepository) (*BlogService, *memBlogStore) {
	store := newMemBlogStore()
	svc := NewBlogService(memPosts{store}, memComments{store}, memSavedPosts{store}, users)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	return svc, store
}

func publishedPost(t *testing.T, svc *BlogService, author domain.Actor, title string) *domain.BlogPost {
	t.Helper()
	post, err := svc.CreatePost(context.Background(), author, domain.BlogPostCreate{
		Title:      title,
		Content:    "Notes from the road.",
		AuthorName: "Selam",
		Status:     domain.PostPublished,
	})
	require.NoError(t, err)
	return post
}

func TestBlogService_CreatePost(t *testing.T) {
	ctx := context.Background()
	author := domain.Actor{UserID: uuid.New(), Role: domain.RoleUser}

	users := new(MockUserRepository)
	users.On("GetByID", ctx, author.UserID).Return(&domain.User{ID: author.UserID, Username: "abebe"}, nil)
	svc, _ := newTestBlogService(users)

	post, err := svc.CreatePost(ctx, author, domain.BlogPostCreate{
		Title:   "  Hiking the Simien Mountains ",
		Content: " Day one starts in Debark. ",
		Tags:    domain.StringList{"hiking", "amhara"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Hiking the Simien Mountains", post.Title)
	assert.Equal(t, "hiking-the-simien-mountains", post.Slug)
	assert.Equal(t, "Day one starts in Debark.", post.Content)
	assert.Equal(t, "abebe", post.AuthorName)
	assert.Equal(t, author.UserID, post.AuthorID)
	assert.Equal(t, domain.PostDraft, post.Status)
	assert.Equal(t, domain.DefaultReadTime, post.ReadTime)
	assert.Zero(t, post.Views)
	assert.False(t, post.IsFeatured)

	second, err := svc.CreatePost(ctx, author, domain.BlogPostCreate{Title: "Hiking the Simien Mountains", Content: "Again"})
	require.NoError(t, err)
	assert.Equal(t, "hiking-the-simien-mountains-1", second.Slug)

	users.AssertExpectations(t)
}

func TestBlogService_CreatePostAuthorLookupFails(t *testing.T) {
	ctx := context.Background()
	author := domain.Actor{UserID: uuid.New()}

	users := new(MockUserRepository)
	users.On("GetByID", ctx, author.UserID).Return(nil, domain.ErrNotFound)
	svc, _ := newTestBlogService(users)

	post, err := svc.CreatePost(ctx, author, domain.BlogPostCreate{Title: "Gondar castles", Content: "Fasil Ghebbi"})
	require.NoError(t, err)
	assert.Empty(t, post.AuthorName)
}

func TestBlogService_CreatePostBlankContent(t *testing.T) {
	svc, store := newTestBlogService(new(MockUserRepository))

	_, err := svc.CreatePost(context.Background(), domain.Actor{UserID: uuid.New()}, domain.BlogPostCreate{Title: "Empty", Content: "  \n "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, store.posts)
}

func TestBlogService_DraftVisibility(t *testing.T) {
	ctx := context.Background()
	author := domain.Actor{UserID: uuid.New(), Role: domain.RoleUser}
	stranger := domain.Actor{UserID: uuid.New(), Role: domain.RoleUser}
	admin := domain.Actor{UserID: uuid.New(), Role: domain.RoleAdmin}
	svc, _ := newTestBlogService(new(MockUserRepository))

	draft, err := svc.CreatePost(ctx, author, domain.BlogPostCreate{Title: "Unfinished", Content: "wip", AuthorName: "Selam"})
	require.NoError(t, err)
	published := publishedPost(t, svc, author, "Lalibela at dawn")

	_, err = svc.GetPost(ctx, nil, draft.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.GetPost(ctx, &stranger, draft.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.GetPost(ctx, &author, draft.ID)
	assert.NoError(t, err)
	_, err = svc.GetPost(ctx, &admin, draft.ID)
	assert.NoError(t, err)
	_, err = svc.GetPost(ctx, nil, published.ID)
	assert.NoError(t, err)

	public, err := svc.ListPosts(ctx, &author, false, domain.ListingFilter{})
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, published.ID, public[0].ID)

	mine, err := svc.ListPosts(ctx, &author, true, domain.ListingFilter{})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	// mine without a caller falls back to the public list
	anon, err := svc.ListPosts(ctx, nil, true, domain.ListingFilter{})
	require.NoError(t, err)
	assert.Len(t, anon, 1)
}

func TestBlogService_RecordView(t *testing.T) {
	ctx := context.Background()
	author := domain.Actor{UserID: uuid.New()}
	svc, store := newTestBlogService(new(MockUserRepository))
	post := publishedPost(t, svc, author, "Danakil depression")

	for want := 1; want <= 3; want++ {
		views, err := svc.RecordView(ctx, nil, post.ID)
		require.NoError(t, err)
		assert.Equal(t, want, views)
	}

	// an author edit must not reset the counter
	title := "Danakil Depression"
	_, err := svc.UpdatePost(ctx, author, post.ID, domain.BlogPostUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, 3, store.posts[post.ID].Views)

	_, err = svc.RecordView(ctx, nil, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBlogService_Featured(t *testing.T) {
	ctx := context.Background()
	author := domain.Actor{UserID: uuid.New(), Role: domain.RoleUser}
	admin := domain.Actor{UserID: uuid.New(), Role: domain.RoleAdmin}
	svc, _ := newTestBlogService(new(MockUserRepository))
	post := publishedPost(t, svc, author, "Coffee ceremony")

	_, err := svc.ToggleFeatured(ctx, author, post.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	toggled, err := svc.ToggleFeatured(ctx, admin, post.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsFeatured)

	featured, err := svc.FeaturedPosts(ctx, domain.ListingFilter{})
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, post.ID, featured[0].ID)

	toggled, err = svc.ToggleFeatured(ctx, admin, post.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsFeatured)

	featured, err = svc.FeaturedPosts(ctx, domain.ListingFilter{})
	require.NoError(t, err)
	assert.Empty(t, featured)
}

func TestBlogService_UpdateAndDeletePermissions(t *testing.T) {
	ctx := context.Background()
	author := domain.Actor{UserID: uuid.New(), Role: domain.RoleUser}
	stranger := domain.Actor{UserID: uuid.New(), Role: domain.RoleUser}
	admin := domain.Actor{UserID: uuid.New(), Role: domain.RoleAdmin}
	svc, store := newTestBlogService(new(MockUserRepository))
	post := publishedPost(t, svc, author, "Axum obelisks")

	title := "Stolen title"
	_, err := svc.UpdatePost(ctx, stranger, post.ID, domain.BlogPostUpdate{Title: &title})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	blank := "   "
	_, err = svc.UpdatePost(ctx, author, post.ID, domain.BlogPostUpdate{Content: &blank})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	title = "Axum obelisks revisited"
	updated, err := svc.UpdatePost(ctx, admin, post.ID, domain.BlogPostUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, post.Slug, updated.Slug)

	assert.ErrorIs(t, svc.DeletePost(ctx, stranger, post.ID), domain.ErrForbidden)
	require.NoError(t, svc.DeletePost(ctx, author, post.ID))
	assert.Empty(t, store.posts)

	assert.ErrorIs(t, svc.DeletePost(ctx, author, post.ID), domain.ErrNotFound)
}

func TestBlogService_Comments(t *testing.T) {
	ctx := context.Background()
	author := domain.Actor{UserID: uuid.New(), Role: domain.RoleUser}
	reader := domain.Actor{UserID: uuid.New(), Role: domain.RoleUser}
	admin := domain.Actor{UserID: uuid.New(), Role: domain.RoleAdmin}
	svc, _ := newTestBlogService(new(MockUserRepository))
	post := publishedPost(t, svc, author, "Harar hyenas")

	comment, err := svc.CreateComment(ctx, reader, post.ID, domain.BlogCommentInput{Content: " Went last spring! "})
	require.NoError(t, err)
	assert.Equal(t, "Went last spring!", comment.Content)
	assert.Equal(t, reader.UserID, comment.UserID)

	_, err = svc.CreateComment(ctx, reader, post.ID, domain.BlogCommentInput{Content: "\t"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// only the comment author may edit, admins included
	_, err = svc.UpdateComment(ctx, admin, post.ID, comment.ID, domain.BlogCommentInput{Content: "edited"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	edited, err := svc.UpdateComment(ctx, reader, post.ID, comment.ID, domain.BlogCommentInput{Content: "Went last autumn!"})
	require.NoError(t, err)
	assert.Equal(t, "Went last autumn!", edited.Content)

	count, err := svc.MarkCommentHelpful(ctx, post.ID, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	count, err = svc.MarkCommentHelpful(ctx, post.ID, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, svc.ReportComment(ctx, post.ID, comment.ID))
	got, err := svc.GetComment(ctx, nil, post.ID, comment.ID)
	require.NoError(t, err)
	assert.True(t, got.Reported)
	assert.Equal(t, 2, got.HelpfulCount)

	// a comment id under the wrong post is not found
	_, err = svc.MarkCommentHelpful(ctx, uuid.New(), comment.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, svc.DeleteComment(ctx, author, post.ID, comment.ID), domain.ErrForbidden)
	require.NoError(t, svc.DeleteComment(ctx, admin, post.ID, comment.ID))

	comments, err := svc.ListComments(ctx, nil, post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestBlogService_CommentOnHiddenDraft(t *testing.T) {
	ctx := context.Background()
	author := domain.Actor{UserID: uuid.New()}
	reader := domain.Actor{UserID: uuid.New()}
	svc, store := newTestBlogService(new(MockUserRepository))

	draft, err := svc.CreatePost(ctx, author, domain.BlogPostCreate{Title: "Draft", Content: "wip", AuthorName: "x"})
	require.NoError(t, err)

	_, err = svc.CreateComment(ctx, reader, draft.ID, domain.BlogCommentInput{Content: "first"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, store.comments)

	_, err = svc.ListComments(ctx, nil, draft.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBlogService_SavedPosts(t *testing.T) {
	ctx := context.Background()
	author := domain.Actor{UserID: uuid.New()}
	reader := domain.Actor{UserID: uuid.New()}
	svc, _ := newTestBlogService(new(MockUserRepository))
	post := publishedPost(t, svc, author, "Omo valley")

	saved, err := svc.SavePost(ctx, reader, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, saved.PostID)

	_, err = svc.SavePost(ctx, reader, post.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Contains(t, err.Error(), "already saved")

	list, err := svc.ListSavedPosts(ctx, reader)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.UnsavePost(ctx, reader, post.ID))
	err = svc.UnsavePost(ctx, reader, post.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	draft, err := svc.CreatePost(ctx, author, domain.BlogPostCreate{Title: "Hidden", Content: "wip", AuthorName: "x"})
	require.NoError(t, err)
	_, err = svc.SavePost(ctx, reader, draft.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBlogService_ListPostsPassesFilter(t *testing.T) {
	ctx := context.Background()
	posts := new(MockBlogPostRepository)
	svc := NewBlogService(posts, nil, nil, new(MockUserRepository))

	posts.On("List", ctx, mock.MatchedBy(func(f domain.ListingFilter) bool {
		return f.Category == "coffee" && f.Status == domain.PostPublished && f.OwnerID == nil && f.Ordering == "-views"
	})).Return([]domain.BlogPost{}, nil)

	owner := uuid.New()
	_, err := svc.ListPosts(ctx, nil, false, domain.ListingFilter{Category: "coffee", Ordering: "-views", OwnerID: &owner})
	require.NoError(t, err)
	posts.AssertExpectations(t)
}

// MockBlogPostRepository mocks the BlogPostRepository interface
type MockBlogPostRepository struct {
	mock.Mock
}

func (m *MockBlogPostRepository) Create(ctx context.Context, p *domain.BlogPost) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockBlogPostRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.BlogPost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BlogPost), args.Error(1)
}

func (m *MockBlogPostRepository) List(ctx context.Context, filter domain.ListingFilter) ([]domain.BlogPost, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.BlogPost), args.Error(1)
}

func (m *MockBlogPostRepository) Update(ctx context.Context, p *domain.BlogPost) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockBlogPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBlogPostRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlogPostRepository) IncrementViews(ctx context.Context, id uuid.UUID) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}
