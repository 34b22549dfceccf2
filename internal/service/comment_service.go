package service

import (
	"context"

	"quill/internal/models"
	"quill/internal/repository"
	"quill/internal/validation"
)

// The wording of this message is load-bearing for clients, typo included.
const commentNotAllowedMessage = "Your are not allowed here!!"

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

type AddCommentInput struct {
	UserID uint
	PostID uint
	Form   validation.CommentForm
}

type DeleteCommentInput struct {
	UserID    uint
	CommentID uint
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// AddComment saves a comment on the post and records the commenter as a
// participant. The participant add is idempotent, so commenting twice leaves
// the participant set unchanged.
func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}

	if errs := in.Form.Validate(); len(errs) > 0 {
		return nil, models.NewFormError("Invalid comment", errs)
	}

	comment := &models.Comment{
		Body:   in.Form.Body,
		PostID: in.PostID,
		UserID: in.UserID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	if err := s.postRepo.AddParticipant(ctx, in.PostID, in.UserID); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// AuthorizeOwner loads a comment and verifies the user wrote it.
func (s *CommentService) AuthorizeOwner(ctx context.Context, commentID, userID uint) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if comment.UserID != userID {
		return nil, models.NewUnauthorizedError(commentNotAllowedMessage)
	}

	return comment, nil
}

// DeleteComment removes a comment. Only its author may delete it.
func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}

	if comment.UserID != in.UserID {
		return nil, models.NewUnauthorizedError(commentNotAllowedMessage)
	}

	if err := s.commentRepo.Delete(ctx, in.CommentID); err != nil {
		return nil, err
	}

	return comment, nil
}
