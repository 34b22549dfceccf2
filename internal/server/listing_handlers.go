package server

import (
	"quill/internal/cache"
	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/paginate"

	"github.com/gofiber/fiber/v2"
)

// Home renders the main listing: posts matching the search term (all posts
// when the term is empty), paginated five per page, plus the sidebar of the
// first five categories, the total match count and the three most recent
// comments on matching categories.
func (s *Server) Home(c *fiber.Ctx) error {
	ctx := c.UserContext()
	q := c.Query("q")

	count, err := s.postRepo.CountSearch(ctx, q)
	if err != nil {
		return respondServiceError(c, err)
	}

	page := paginate.GetPage(c.Query("page"), count, postsPerPage)

	posts, err := s.postRepo.Search(ctx, q, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	// The sidebar is identical for every visitor, so it sits behind the cache.
	var categories []*models.Category
	err = cache.Aside(ctx, cache.CategorySidebarKey(), &categories,
		cache.CategorySidebarTTL, func() error {
			var ferr error
			categories, ferr = s.categoryRepo.List(ctx, 5)
			return ferr
		})
	if err != nil {
		return respondServiceError(c, err)
	}

	comments, err := s.commentRepo.RecentByPostCategory(ctx, q, 3)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"posts":         posts,
		"page":          page,
		"categories":    categories,
		"post_count":    count,
		"post_comments": comments,
		"q":             q,
	})
}

// Categories renders the category browse page, filtered by the search term.
func (s *Server) Categories(c *fiber.Ctx) error {
	ctx := c.UserContext()
	q := c.Query("q")

	categories, err := s.categoryRepo.Search(ctx, q)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"categories": categories,
		"q":          q,
	})
}

// Activity renders the sitewide feed of every comment.
func (s *Server) Activity(c *fiber.Ctx) error {
	ctx := c.UserContext()

	comments, err := s.commentRepo.ListAll(ctx)
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.Logger.DebugContext(ctx, "activity feed served",
		"comments", len(comments))

	return c.JSON(fiber.Map{"post_comments": comments})
}
