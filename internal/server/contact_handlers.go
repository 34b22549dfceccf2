package server

import (
	"quill/internal/mailer"
	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Contact serves the contact form on GET and accepts it on POST. The form has
// no required fields and nothing is persisted; the submission is only logged.
func (s *Server) Contact(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodGet {
		return c.JSON(fiber.Map{"page": "contact"})
	}

	var form validation.ContactForm
	if err := c.BodyParser(&form); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	// Validation never fails today, kept for when the form grows rules.
	if errs := form.Validate(); len(errs) > 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewFormError("Invalid contact submission", errs))
	}

	middleware.Logger.InfoContext(c.UserContext(), "contact form received",
		"name", form.Name)

	return c.JSON(fiber.Map{"page": "contact", "submitted": true})
}

// SendEmailPage renders the outbound email form.
func (s *Server) SendEmailPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "send_email"})
}

// SendEmail validates the form and hands the message to the mailer. The
// validated fields are the ones sent.
func (s *Server) SendEmail(c *fiber.Ctx) error {
	var form validation.SendEmailForm
	if err := c.BodyParser(&form); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if errs := form.Validate(); len(errs) > 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewFormError("Invalid email", errs))
	}

	ctx := c.UserContext()
	msg := mailer.Message{
		Name: form.Name,
		From: form.Email,
		To:   form.To,
		Body: form.Body,
	}
	if err := s.mail.Send(msg); err != nil {
		middleware.Logger.ErrorContext(ctx, "send email failed", "error", err)
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	middleware.Logger.InfoContext(ctx, "email sent", "to", form.To)
	return c.Redirect("/", fiber.StatusFound)
}
