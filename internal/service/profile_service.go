package service

import (
	"context"

	"quill/internal/models"
	"quill/internal/repository"
	"quill/internal/validation"
)

type ProfileService struct {
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

// ProfilePage is the context for the public profile view.
type ProfilePage struct {
	User     *models.User      `json:"user"`
	Posts    []*models.Post    `json:"posts"`
	Comments []*models.Comment `json:"post_comments"`
}

type EditProfileInput struct {
	UserID      uint
	UserForm    validation.UserEditForm
	ProfileForm validation.ProfileEditForm
}

func NewProfileService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
) *ProfileService {
	return &ProfileService{
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

// GetProfilePage loads a user's public profile: the user, the posts they
// authored, and the comments they made.
func (s *ProfileService) GetProfilePage(ctx context.Context, userID uint) (*ProfilePage, error) {
	user, err := s.userRepo.GetByIDWithProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.ListByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ProfilePage{User: user, Posts: posts, Comments: comments}, nil
}

// EditProfile applies the identity and profile forms together. Both forms
// must validate before either is persisted; the writes happen in one
// transaction so a failure leaves nothing half-updated.
func (s *ProfileService) EditProfile(ctx context.Context, in EditProfileInput) (*models.User, error) {
	userErrs := in.UserForm.Validate()
	profileErrs := in.ProfileForm.Validate()
	if len(userErrs) > 0 || len(profileErrs) > 0 {
		merged := validation.Errors{}
		for k, v := range userErrs {
			merged[k] = v
		}
		for k, v := range profileErrs {
			merged[k] = v
		}
		return nil, models.NewFormError("Invalid profile", merged)
	}

	user, err := s.userRepo.GetByIDWithProfile(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if user.Profile == nil {
		// Registration always creates a profile; a missing one is a data fault.
		return nil, models.NewNotFoundError("Profile", in.UserID)
	}

	user.FirstName = in.UserForm.FirstName
	user.LastName = in.UserForm.LastName
	user.Email = in.UserForm.Email

	profile := user.Profile
	profile.Bio = in.ProfileForm.Bio
	profile.DateOfBirth = in.ProfileForm.ParsedDateOfBirth()
	if in.ProfileForm.Photo != "" {
		profile.Photo = in.ProfileForm.Photo
	}

	if err := s.userRepo.SaveWithProfile(ctx, user, profile); err != nil {
		return nil, err
	}

	return s.userRepo.GetByIDWithProfile(ctx, in.UserID)
}
