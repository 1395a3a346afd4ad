package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Rrens/tourism-api/internal/domain"
	"github.com/Rrens/tourism-api/internal/llm"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockProvider mocks the llm.Provider interface
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) AvailableModels() []string { return []string{"mock-1"} }

func (m *MockProvider) DefaultModel() string { return "mock-1" }

func (m *MockProvider) IsConfigured() bool { return true }

func (m *MockProvider) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*llm.Response), args.Error(1)
}

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockEventRepository mocks the EventRepository interface
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Create(ctx context.Context, e *domain.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEventRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockEventRepository) List(ctx context.Context, filter domain.ListingFilter) ([]domain.Event, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Event), args.Error(1)
}

func (m *MockEventRepository) Update(ctx context.Context, e *domain.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEventRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockEventRepository) SetAttendees(ctx context.Context, id uuid.UUID, attendees int) (bool, error) {
	args := m.Called(ctx, id, attendees)
	return args.Bool(0), args.Error(1)
}

// MockDestinationRepository mocks the DestinationRepository interface
type MockDestinationRepository struct {
	mock.Mock
}

func (m *MockDestinationRepository) Create(ctx context.Context, d *domain.Destination) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDestinationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Destination), args.Error(1)
}

func (m *MockDestinationRepository) List(ctx context.Context, filter domain.ListingFilter) ([]domain.Destination, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Destination), args.Error(1)
}

func (m *MockDestinationRepository) Update(ctx context.Context, d *domain.Destination) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDestinationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDestinationRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

// MockBookingRepository mocks the BookingRepository interface
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockBookingRepository) CountConfirmedForEvent(ctx context.Context, eventID uuid.UUID) (int, error) {
	args := m.Called(ctx, eventID)
	return args.Int(0), args.Error(1)
}

// MockPaymentRepository mocks the PaymentRepository interface
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]domain.Payment, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockSavedRepository mocks the SavedRepository interface
type MockSavedRepository struct {
	mock.Mock
}

func (m *MockSavedRepository) Save(ctx context.Context, saved *domain.SavedListing) error {
	args := m.Called(ctx, saved)
	return args.Error(0)
}

func (m *MockSavedRepository) Remove(ctx context.Context, kind domain.ListingKind, entityID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, kind, entityID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSavedRepository) ListByUser(ctx context.Context, kind domain.ListingKind, userID uuid.UUID) ([]domain.SavedListing, error) {
	args := m.Called(ctx, kind, userID)
	return args.Get(0).([]domain.SavedListing), args.Error(1)
}

// MockListingRatingRepository mocks the ListingRatingRepository interface
type MockListingRatingRepository struct {
	mock.Mock
}

func (m *MockListingRatingRepository) Exists(ctx context.Context, kind domain.ListingKind, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, kind, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockListingRatingRepository) UpdateRating(ctx context.Context, kind domain.ListingKind, id uuid.UUID, summary domain.RatingSummary) (bool, error) {
	args := m.Called(ctx, kind, id, summary)
	return args.Bool(0), args.Error(1)
}

// passthroughTx runs fn directly
type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// memChatStore is an in-memory conversation and message store
type memChatStore struct {
	mu            sync.Mutex
	conversations map[string]*domain.Conversation
	messages      []domain.Message
	// createHook, when set, runs before a conversation is stored
	createHook func(conv *domain.Conversation) error
}

func newMemChatStore() *memChatStore {
	return &memChatStore{conversations: map[string]*domain.Conversation{}}
}

type memConversations struct{ s *memChatStore }

type memMessages struct{ s *memChatStore }

func (r memConversations) Create(ctx context.Context, conv *domain.Conversation) error {
	if r.s.createHook != nil {
		if err := r.s.createHook(conv); err != nil {
			return err
		}
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.conversations[conv.SessionID]; ok {
		return domain.ErrConflict
	}
	c := *conv
	r.s.conversations[conv.SessionID] = &c
	return nil
}

func (r memConversations) GetBySessionID(ctx context.Context, sessionID string) (*domain.Conversation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.conversations[sessionID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r memConversations) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Conversation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Conversation
	for _, c := range r.s.conversations {
		if c.OwnedBy(userID) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	if offset >= len(out) {
		return []domain.Conversation{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r memConversations) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.conversations {
		if c.ID == id {
			c.UpdatedAt = at
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r memMessages) Create(ctx context.Context, msg *domain.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.messages = append(r.s.messages, *msg)
	return nil
}

func (r memMessages) ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]domain.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []domain.Message{}
	for _, m := range r.s.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// memReviewStore is an in-memory review store with listing aggregates
type memReviewStore struct {
	mu       sync.Mutex
	reviews  map[uuid.UUID]domain.Review
	listings map[uuid.UUID]*domain.RatingSummary
}

func newMemReviewStore(listingIDs ...uuid.UUID) *memReviewStore {
	s := &memReviewStore{
		reviews:  map[uuid.UUID]domain.Review{},
		listings: map[uuid.UUID]*domain.RatingSummary{},
	}
	for _, id := range listingIDs {
		s.listings[id] = &domain.RatingSummary{}
	}
	return s
}

func (s *memReviewStore) summary(id uuid.UUID) domain.RatingSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.listings[id]
}

func (s *memReviewStore) Exists(ctx context.Context, kind domain.ListingKind, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.listings[id]
	return ok, nil
}

func (s *memReviewStore) UpdateRating(ctx context.Context, kind domain.ListingKind, id uuid.UUID, summary domain.RatingSummary) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.listings[id]; !ok {
		return false, nil
	}
	s.listings[id] = &summary
	return true, nil
}

func (s *memReviewStore) Create(ctx context.Context, review *domain.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reviews {
		if r.Kind == review.Kind && r.EntityID == review.EntityID && r.UserID == review.UserID {
			return domain.ErrConflict
		}
	}
	s.reviews[review.ID] = *review
	return nil
}

func (s *memReviewStore) Get(ctx context.Context, kind domain.ListingKind, entityID, id uuid.UUID) (*domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reviews[id]
	if !ok || r.Kind != kind || r.EntityID != entityID {
		return nil, domain.ErrNotFound
	}
	return &r, nil
}

func (s *memReviewStore) ListByEntity(ctx context.Context, kind domain.ListingKind, entityID uuid.UUID, sortBy string) ([]domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Review
	for _, r := range s.reviews {
		if r.Kind == kind && r.EntityID == entityID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memReviewStore) Update(ctx context.Context, review *domain.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews[review.ID] = *review
	return nil
}

func (s *memReviewStore) Delete(ctx context.Context, kind domain.ListingKind, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reviews[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.reviews, id)
	return nil
}

func (s *memReviewStore) IncrementHelpful(ctx context.Context, kind domain.ListingKind, id uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reviews[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	r.HelpfulCount++
	s.reviews[id] = r
	return r.HelpfulCount, nil
}

func (s *memReviewStore) MarkReported(ctx context.Context, kind domain.ListingKind, id uuid.UUID, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reviews[id]
	if !ok {
		return domain.ErrNotFound
	}
	r.Reported = true
	r.ReportReason = reason
	s.reviews[id] = r
	return nil
}

func (s *memReviewStore) ListRatings(ctx context.Context, kind domain.ListingKind, entityID uuid.UUID) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []int{}
	for _, r := range s.reviews {
		if r.Kind == kind && r.EntityID == entityID {
			out = append(out, r.Rating)
		}
	}
	return out, nil
}
