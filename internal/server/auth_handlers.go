package server

import (
	"strings"

	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// loginFailedMessage is deliberately identical for an unknown username and a
// wrong password. The server log carries the distinction.
const loginFailedMessage = "Username OR password does not exist"

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// LoginPage renders the login context. Authenticated users are sent home.
func (s *Server) LoginPage(c *fiber.Ctx) error {
	if _, ok := currentUserID(c); ok {
		return c.Redirect("/", fiber.StatusFound)
	}
	return c.JSON(fiber.Map{"page": "login"})
}

// Login authenticates a user and opens a session.
func (s *Server) Login(c *fiber.Ctx) error {
	if _, ok := currentUserID(c); ok {
		return c.Redirect("/", fiber.StatusFound)
	}

	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	ctx := c.UserContext()
	username := strings.ToLower(strings.TrimSpace(req.Username))

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return respondServiceError(c, err)
	}
	if user == nil {
		middleware.Logger.InfoContext(ctx, "login rejected",
			"reason", "unknown username", "username", username)
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError(loginFailedMessage))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		middleware.Logger.InfoContext(ctx, "login rejected",
			"reason", "wrong password", "user_id", user.ID)
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError(loginFailedMessage))
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	setSessionCookie(c, token)

	middleware.Logger.InfoContext(ctx, "user logged in", "user_id", user.ID)
	return c.Redirect("/", fiber.StatusFound)
}

// Logout destroys the session and clears the cookie. Safe to call while
// anonymous.
func (s *Server) Logout(c *fiber.Ctx) error {
	if token, ok := c.Locals("sessionToken").(string); ok && token != "" {
		if err := s.sessions.Destroy(c.UserContext(), token); err != nil {
			middleware.Logger.WarnContext(c.UserContext(),
				"session destroy failed", "error", err)
		}
	}
	clearSessionCookie(c)
	return c.Redirect("/", fiber.StatusFound)
}

// RegisterPage renders the registration context.
func (s *Server) RegisterPage(c *fiber.Ctx) error {
	if _, ok := currentUserID(c); ok {
		return c.Redirect("/", fiber.StatusFound)
	}
	return c.JSON(fiber.Map{"page": "register"})
}

// Register creates a user plus empty profile and logs them straight in.
// Usernames are lowercased before validation so lookups stay case-insensitive.
func (s *Server) Register(c *fiber.Ctx) error {
	var form validation.RegistrationForm
	if err := c.BodyParser(&form); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	form.Username = strings.ToLower(strings.TrimSpace(form.Username))

	if errs := form.Validate(); len(errs) > 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewFormError("An error occurred during registration", errs))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return respondServiceError(c, err)
	}

	ctx := c.UserContext()
	user := &models.User{
		Username: form.Username,
		Email:    form.Email,
		Password: string(hashed),
	}
	if err := s.userRepo.CreateWithProfile(ctx, user); err != nil {
		return respondServiceError(c, err)
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	setSessionCookie(c, token)

	middleware.Logger.InfoContext(ctx, "user registered", "user_id", user.ID)
	return c.Redirect("/", fiber.StatusFound)
}
