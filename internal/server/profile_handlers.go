package server

import (
	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/service"
	"quill/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// UserProfile renders a public profile: the user with their profile record,
// their posts and their comments, plus the category list for navigation.
func (s *Server) UserProfile(c *fiber.Ctx) error {
	id, err := parseID(c, "User")
	if err != nil {
		return respondServiceError(c, err)
	}

	ctx := c.UserContext()

	page, err := s.profileService.GetProfilePage(ctx, id)
	if err != nil {
		return respondServiceError(c, err)
	}

	categories, err := s.categoryRepo.List(ctx, 0)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"user":          page.User,
		"posts":         page.Posts,
		"post_comments": page.Comments,
		"categories":    categories,
	})
}

// EditProfilePage renders the edit forms prefilled from the current user.
func (s *Server) EditProfilePage(c *fiber.Ctx) error {
	userID, _ := currentUserID(c)

	user, err := s.userRepo.GetByIDWithProfile(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	userForm := fiber.Map{
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"email":      user.Email,
	}
	profileForm := fiber.Map{}
	if user.Profile != nil {
		profileForm["bio"] = user.Profile.Bio
		profileForm["photo"] = user.Profile.Photo
		if user.Profile.DateOfBirth != nil {
			profileForm["date_of_birth"] = user.Profile.DateOfBirth.Format("2006-01-02")
		}
	}

	return c.JSON(fiber.Map{
		"page":         "edit_profile",
		"user_form":    userForm,
		"profile_form": profileForm,
	})
}

type editProfileRequest struct {
	validation.UserEditForm
	validation.ProfileEditForm
}

// EditProfile applies the combined identity and profile edits for the
// current user.
func (s *Server) EditProfile(c *fiber.Ctx) error {
	userID, _ := currentUserID(c)

	var req editProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	ctx := c.UserContext()
	user, err := s.profileService.EditProfile(ctx, service.EditProfileInput{
		UserID:      userID,
		UserForm:    req.UserEditForm,
		ProfileForm: req.ProfileEditForm,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.Logger.InfoContext(ctx, "profile updated", "user_id", user.ID)
	return c.Redirect("/", fiber.StatusFound)
}
