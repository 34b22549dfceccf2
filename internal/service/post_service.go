// Package service contains the application's business rules on top of the
// repository layer.
package service

import (
	"context"

	"quill/internal/models"
	"quill/internal/repository"
	"quill/internal/validation"
)

// notAllowedMessage is the historical response body shown to a non-author
// attempting to edit or delete a post. The wording is load-bearing for
// existing clients.
const notAllowedMessage = "You are not allowed to be here!!"

type PostService struct {
	postRepo repository.PostRepository
}

type CreatePostInput struct {
	AuthorID uint
	Form     validation.PostForm
}

type UpdatePostInput struct {
	UserID uint
	PostID uint
	Form   validation.PostForm
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// CreatePost validates the form and saves a new post. The author always comes
// from the session, never from the client.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if errs := in.Form.Validate(); len(errs) > 0 {
		return nil, models.NewFormError("Invalid post", errs)
	}

	post := &models.Post{
		Title:      in.Form.Title,
		Body:       in.Form.Body,
		Image:      in.Form.Image,
		CategoryID: in.Form.CategoryID,
		AuthorID:   in.AuthorID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

// AuthorizeAuthor loads a post and verifies the user wrote it. The edit and
// delete confirmation pages use this before rendering.
func (s *PostService) AuthorizeAuthor(ctx context.Context, postID, userID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != userID {
		return nil, models.NewUnauthorizedError(notAllowedMessage)
	}

	return post, nil
}

// UpdatePost saves edits to an existing post. The ownership check runs before
// the form is evaluated.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != in.UserID {
		return nil, models.NewUnauthorizedError(notAllowedMessage)
	}

	if errs := in.Form.Validate(); len(errs) > 0 {
		return nil, models.NewFormError("Invalid post", errs)
	}

	post.Title = in.Form.Title
	post.Body = in.Form.Body
	post.Image = in.Form.Image
	post.CategoryID = in.Form.CategoryID

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

// DeletePost removes a post and its comments. Author-only: the historical
// delete path skipped the ownership check that update enforced; the two are
// unified here.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != in.UserID {
		return nil, models.NewUnauthorizedError(notAllowedMessage)
	}

	if err := s.postRepo.Delete(ctx, in.PostID); err != nil {
		return nil, err
	}

	return post, nil
}
