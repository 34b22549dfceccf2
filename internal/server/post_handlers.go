package server

import (
	"fmt"

	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/service"
	"quill/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// PostDetail renders a single post with its comments, the set of users who
// have commented on it, and the full category list.
func (s *Server) PostDetail(c *fiber.Ctx) error {
	id, err := parseID(c, "Post")
	if err != nil {
		return respondServiceError(c, err)
	}

	ctx := c.UserContext()

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return respondServiceError(c, err)
	}

	comments, err := s.commentRepo.ListByPost(ctx, id)
	if err != nil {
		return respondServiceError(c, err)
	}

	participants, err := s.postRepo.Participants(ctx, id)
	if err != nil {
		return respondServiceError(c, err)
	}

	categories, err := s.categoryRepo.List(ctx, 0)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"post":          post,
		"post_comments": comments,
		"participants":  participants,
		"categories":    categories,
	})
}

// SubmitComment adds a comment to the post and returns the visitor to the
// post page.
func (s *Server) SubmitComment(c *fiber.Ctx) error {
	id, err := parseID(c, "Post")
	if err != nil {
		return respondServiceError(c, err)
	}

	userID, _ := currentUserID(c)

	var form validation.CommentForm
	if err := c.BodyParser(&form); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	ctx := c.UserContext()
	comment, err := s.commentService.AddComment(ctx, service.AddCommentInput{
		UserID: userID,
		PostID: id,
		Form:   form,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.Logger.InfoContext(ctx, "comment created",
		"comment_id", comment.ID, "post_id", id)
	return c.Redirect(fmt.Sprintf("/post/%d", id), fiber.StatusFound)
}

// CreatePostPage renders the post form with the selectable categories.
func (s *Server) CreatePostPage(c *fiber.Ctx) error {
	categories, err := s.categoryRepo.List(c.UserContext(), 0)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"page": "create_post", "categories": categories})
}

// CreatePost saves a new post authored by the current user.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID, _ := currentUserID(c)

	var form validation.PostForm
	if err := c.BodyParser(&form); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	ctx := c.UserContext()
	post, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		AuthorID: userID,
		Form:     form,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.Logger.InfoContext(ctx, "post created", "post_id", post.ID)
	return c.Redirect("/", fiber.StatusFound)
}

// UpdatePostPage renders the edit form prefilled with the post. Non-authors
// are refused before anything is shown.
func (s *Server) UpdatePostPage(c *fiber.Ctx) error {
	id, err := parseID(c, "Post")
	if err != nil {
		return respondServiceError(c, err)
	}

	userID, _ := currentUserID(c)

	post, err := s.postService.AuthorizeAuthor(c.UserContext(), id, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	categories, err := s.categoryRepo.List(c.UserContext(), 0)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"page":       "update_post",
		"post":       post,
		"categories": categories,
	})
}

// UpdatePost applies edits to the current user's post.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := parseID(c, "Post")
	if err != nil {
		return respondServiceError(c, err)
	}

	userID, _ := currentUserID(c)

	var form validation.PostForm
	if err := c.BodyParser(&form); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	ctx := c.UserContext()
	post, err := s.postService.UpdatePost(ctx, service.UpdatePostInput{
		UserID: userID,
		PostID: id,
		Form:   form,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.Logger.InfoContext(ctx, "post updated", "post_id", post.ID)
	return c.Redirect("/", fiber.StatusFound)
}

// DeletePostPage renders the delete confirmation for the author.
func (s *Server) DeletePostPage(c *fiber.Ctx) error {
	id, err := parseID(c, "Post")
	if err != nil {
		return respondServiceError(c, err)
	}

	userID, _ := currentUserID(c)

	post, err := s.postService.AuthorizeAuthor(c.UserContext(), id, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"obj": post})
}

// DeletePost removes the current user's post together with its comments.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := parseID(c, "Post")
	if err != nil {
		return respondServiceError(c, err)
	}

	userID, _ := currentUserID(c)

	ctx := c.UserContext()
	post, err := s.postService.DeletePost(ctx, service.DeletePostInput{
		UserID: userID,
		PostID: id,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.Logger.InfoContext(ctx, "post deleted", "post_id", post.ID)
	return c.Redirect("/", fiber.StatusFound)
}
