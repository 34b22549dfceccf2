package validation

import (
	"strings"
	"time"
)

// Errors maps form field names to validation messages. Empty means valid.
type Errors map[string]string

// dateLayout accepts the HTML date input format.
const dateLayout = "2006-01-02"

// RegistrationForm carries the fields of the register page.
type RegistrationForm struct {
	Username  string `json:"username" form:"username"`
	Email     string `json:"email" form:"email"`
	Password  string `json:"password" form:"password"`
	Password2 string `json:"password2" form:"password2"`
}

// Validate checks the registration form. The confirmation password must match
// the first one.
func (f *RegistrationForm) Validate() Errors {
	errs := Errors{}

	if err := ValidateUsername(strings.TrimSpace(f.Username)); err != nil {
		errs["username"] = err.Error()
	}
	if f.Email != "" {
		if err := ValidateEmail(f.Email); err != nil {
			errs["email"] = err.Error()
		}
	}
	if err := ValidatePassword(f.Password); err != nil {
		errs["password"] = err.Error()
	}
	if f.Password != f.Password2 {
		errs["password2"] = "Passwords do not match"
	}

	return errs
}

// UserEditForm carries the identity fields of the edit-profile page.
type UserEditForm struct {
	FirstName string `json:"first_name" form:"first_name"`
	LastName  string `json:"last_name" form:"last_name"`
	Email     string `json:"email" form:"email"`
}

func (f *UserEditForm) Validate() Errors {
	errs := Errors{}

	if len(f.FirstName) > 150 {
		errs["first_name"] = "first name must not exceed 150 characters"
	}
	if len(f.LastName) > 150 {
		errs["last_name"] = "last name must not exceed 150 characters"
	}
	if f.Email != "" {
		if err := ValidateEmail(f.Email); err != nil {
			errs["email"] = err.Error()
		}
	}

	return errs
}

// ProfileEditForm carries the profile fields of the edit-profile page.
type ProfileEditForm struct {
	Bio         string `json:"bio" form:"bio"`
	DateOfBirth string `json:"date_of_birth" form:"date_of_birth"`
	Photo       string `json:"photo" form:"photo"`
}

func (f *ProfileEditForm) Validate() Errors {
	errs := Errors{}

	if f.DateOfBirth != "" {
		if _, err := time.Parse(dateLayout, f.DateOfBirth); err != nil {
			errs["date_of_birth"] = "date of birth must be in YYYY-MM-DD format"
		}
	}

	return errs
}

// ParsedDateOfBirth returns the date of birth, or nil when the field is empty.
// Call Validate first; an unparseable value returns nil here.
func (f *ProfileEditForm) ParsedDateOfBirth() *time.Time {
	if f.DateOfBirth == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, f.DateOfBirth)
	if err != nil {
		return nil
	}
	return &t
}

// PostForm carries the create/update post fields. Author and participants are
// never client-supplied.
type PostForm struct {
	Title      string `json:"title" form:"title"`
	Body       string `json:"body" form:"body"`
	CategoryID *uint  `json:"category_id" form:"category_id"`
	Image      string `json:"image" form:"image"`
}

func (f *PostForm) Validate() Errors {
	errs := Errors{}

	if strings.TrimSpace(f.Title) == "" {
		errs["title"] = "title is required"
	} else if len(f.Title) > 200 {
		errs["title"] = "title must not exceed 200 characters"
	}
	if strings.TrimSpace(f.Body) == "" {
		errs["body"] = "body is required"
	}

	return errs
}

// CommentForm carries the comment submission field.
type CommentForm struct {
	Body string `json:"body" form:"body"`
}

func (f *CommentForm) Validate() Errors {
	errs := Errors{}

	if strings.TrimSpace(f.Body) == "" {
		errs["body"] = "body is required"
	}

	return errs
}

// SendEmailForm carries the contact-email fields.
type SendEmailForm struct {
	Name  string `json:"name" form:"name"`
	Email string `json:"email" form:"email"`
	To    string `json:"to" form:"to"`
	Body  string `json:"body" form:"body"`
}

func (f *SendEmailForm) Validate() Errors {
	errs := Errors{}

	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "name is required"
	} else if len(f.Name) > 255 {
		errs["name"] = "name must not exceed 255 characters"
	}
	if err := ValidateEmail(f.Email); err != nil {
		errs["email"] = err.Error()
	}
	if err := ValidateEmail(f.To); err != nil {
		errs["to"] = err.Error()
	}
	if strings.TrimSpace(f.Body) == "" {
		errs["body"] = "body is required"
	} else if len(f.Body) > 250 {
		errs["body"] = "body must not exceed 250 characters"
	}

	return errs
}

// ContactForm is a deliberate stub: it accepts everything.
type ContactForm struct {
	Name    string `json:"name" form:"name"`
	Message string `json:"message" form:"message"`
}

func (f *ContactForm) Validate() Errors {
	return Errors{}
}
