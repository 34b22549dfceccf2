package service

import (
	"context"
	"testing"

	"quill/internal/models"

	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn         func(context.Context, *models.Post) error
	getByIDFn        func(context.Context, uint) (*models.Post, error)
	listByAuthorFn   func(context.Context, uint) ([]*models.Post, error)
	searchFn         func(context.Context, string, int, int) ([]*models.Post, error)
	countSearchFn    func(context.Context, string) (int64, error)
	participantsFn   func(context.Context, uint) ([]models.User, error)
	addParticipantFn func(context.Context, uint, uint) error
	updateFn         func(context.Context, *models.Post) error
	deleteFn         func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) ListByAuthor(ctx context.Context, authorID uint) ([]*models.Post, error) {
	return s.listByAuthorFn(ctx, authorID)
}
func (s *postRepoStub) Search(ctx context.Context, q string, limit, offset int) ([]*models.Post, error) {
	return s.searchFn(ctx, q, limit, offset)
}
func (s *postRepoStub) CountSearch(ctx context.Context, q string) (int64, error) {
	return s.countSearchFn(ctx, q)
}
func (s *postRepoStub) Participants(ctx context.Context, postID uint) ([]models.User, error) {
	return s.participantsFn(ctx, postID)
}
func (s *postRepoStub) AddParticipant(ctx context.Context, postID, userID uint) error {
	return s.addParticipantFn(ctx, postID, userID)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:         func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn:        func(_ context.Context, _ uint) (*models.Post, error) { return &models.Post{}, nil },
		listByAuthorFn:   func(_ context.Context, _ uint) ([]*models.Post, error) { return nil, nil },
		searchFn:         func(_ context.Context, _ string, _, _ int) ([]*models.Post, error) { return nil, nil },
		countSearchFn:    func(_ context.Context, _ string) (int64, error) { return 0, nil },
		participantsFn:   func(_ context.Context, _ uint) ([]models.User, error) { return nil, nil },
		addParticipantFn: func(_ context.Context, _, _ uint) error { return nil },
		updateFn:         func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:         func(_ context.Context, _ uint) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint) ([]*models.Comment, error)
	listByUserFn func(context.Context, uint) ([]*models.Comment, error)
	listAllFn    func(context.Context) ([]*models.Comment, error)
	recentFn     func(context.Context, string, int) ([]*models.Comment, error)
	deleteFn     func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) ListByUser(ctx context.Context, userID uint) ([]*models.Comment, error) {
	return s.listByUserFn(ctx, userID)
}
func (s *commentRepoStub) ListAll(ctx context.Context) ([]*models.Comment, error) {
	return s.listAllFn(ctx)
}
func (s *commentRepoStub) RecentByPostCategory(ctx context.Context, q string, limit int) ([]*models.Comment, error) {
	return s.recentFn(ctx, q, limit)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:    func(_ context.Context, _ uint) (*models.Comment, error) { return &models.Comment{}, nil },
		listByPostFn: func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		listByUserFn: func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		listAllFn:    func(_ context.Context) ([]*models.Comment, error) { return nil, nil },
		recentFn:     func(_ context.Context, _ string, _ int) ([]*models.Comment, error) { return nil, nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn            func(context.Context, uint) (*models.User, error)
	getByIDWithProfileFn func(context.Context, uint) (*models.User, error)
	getByUsernameFn      func(context.Context, string) (*models.User, error)
	createWithProfileFn  func(context.Context, *models.User) error
	updateFn             func(context.Context, *models.User) error
	saveWithProfileFn    func(context.Context, *models.User, *models.Profile) error
	deleteFn             func(context.Context, uint) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByIDWithProfile(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDWithProfileFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) CreateWithProfile(ctx context.Context, user *models.User) error {
	return s.createWithProfileFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) SaveWithProfile(ctx context.Context, user *models.User, profile *models.Profile) error {
	return s.saveWithProfileFn(ctx, user, profile)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:            func(_ context.Context, _ uint) (*models.User, error) { return &models.User{}, nil },
		getByIDWithProfileFn: func(_ context.Context, _ uint) (*models.User, error) { return &models.User{}, nil },
		getByUsernameFn:      func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createWithProfileFn:  func(_ context.Context, _ *models.User) error { return nil },
		updateFn:             func(_ context.Context, _ *models.User) error { return nil },
		saveWithProfileFn:    func(_ context.Context, _ *models.User, _ *models.Profile) error { return nil },
		deleteFn:             func(_ context.Context, _ uint) error { return nil },
	}
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()

	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T", err)
	require.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()

	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T", err)
	require.Equal(t, "UNAUTHORIZED", appErr.Code)
}
