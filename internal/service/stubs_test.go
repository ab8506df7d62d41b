package service

import (
	"context"
	"sync"

	"postboard/internal/events"
	"postboard/internal/models"

	"github.com/stretchr/testify/mock"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	listFn   func(context.Context, string) ([]models.PostSummary, error)
	createFn func(context.Context, *models.Post) error
	deleteFn func(context.Context, uint) error
	purgeFn  func(context.Context) (int64, error)
}

func (s *postRepoStub) List(ctx context.Context, viewerID string) ([]models.PostSummary, error) {
	return s.listFn(ctx, viewerID)
}
func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) Purge(ctx context.Context) (int64, error) {
	return s.purgeFn(ctx)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		listFn:   func(_ context.Context, _ string) ([]models.PostSummary, error) { return nil, nil },
		createFn: func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
		purgeFn:  func(_ context.Context) (int64, error) { return 0, nil },
	}
}

// likeRepoStub keeps likes in memory with the same uniqueness rule as the store.
type likeRepoStub struct {
	mu        sync.Mutex
	likes     map[uint]map[string]bool
	createErr error
	countErr  error
	calls     int
}

func newLikeRepoStub() *likeRepoStub {
	return &likeRepoStub{likes: map[uint]map[string]bool{}}
}

func (s *likeRepoStub) Create(_ context.Context, postID uint, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.createErr != nil {
		return s.createErr
	}
	if s.likes[postID] == nil {
		s.likes[postID] = map[string]bool{}
	}
	if s.likes[postID][userID] {
		return models.NewConflictError("Post already liked", nil)
	}
	s.likes[postID][userID] = true
	return nil
}

func (s *likeRepoStub) Delete(_ context.Context, postID uint, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	delete(s.likes[postID], userID)
	return nil
}

func (s *likeRepoStub) CountByPost(_ context.Context, postID uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.countErr != nil {
		return 0, s.countErr
	}
	return int64(len(s.likes[postID])), nil
}

type publisherMock struct {
	mock.Mock
}

func (m *publisherMock) Publish(ctx context.Context, event events.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *publisherMock) Close() error {
	return m.Called().Error(0)
}
