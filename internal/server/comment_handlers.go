package server

import (
	"quill/internal/middleware"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// DeleteCommentPage renders the delete confirmation for the comment's author.
func (s *Server) DeleteCommentPage(c *fiber.Ctx) error {
	id, err := parseID(c, "Comment")
	if err != nil {
		return respondServiceError(c, err)
	}

	userID, _ := currentUserID(c)

	comment, err := s.commentService.AuthorizeOwner(c.UserContext(), id, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"obj": comment})
}

// DeleteComment removes the current user's comment. The post's participant
// set is left alone; history of participation survives comment deletion.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	id, err := parseID(c, "Comment")
	if err != nil {
		return respondServiceError(c, err)
	}

	userID, _ := currentUserID(c)

	ctx := c.UserContext()
	comment, err := s.commentService.DeleteComment(ctx, service.DeleteCommentInput{
		UserID:    userID,
		CommentID: id,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.Logger.InfoContext(ctx, "comment deleted",
		"comment_id", comment.ID, "post_id", comment.PostID)
	return c.Redirect("/", fiber.StatusFound)
}
