package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("alice"))
	assert.NoError(t, ValidateUsername("alice_99"))
	assert.Error(t, ValidateUsername("al"))
	assert.Error(t, ValidateUsername(strings.Repeat("a", 31)))
	assert.Error(t, ValidateUsername("has space"))
	assert.Error(t, ValidateUsername("_leading"))
	assert.Error(t, ValidateUsername("trailing-"))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("a@b.co"))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("@missing.local"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Sup3rsecret"))
	assert.Error(t, ValidatePassword("short1A"))
	assert.Error(t, ValidatePassword("alllowercase1"))
	assert.Error(t, ValidatePassword("ALLUPPERCASE1"))
	assert.Error(t, ValidatePassword("NoDigitsHere"))
}

func TestValidatePassword_BcryptLengthBoundary(t *testing.T) {
	longest := "A1" + strings.Repeat("a", 70)
	require.Len(t, longest, 72)
	require.NoError(t, ValidatePassword(longest))

	// Anything the validator accepts must also be hashable.
	_, err := bcrypt.GenerateFromPassword([]byte(longest), bcrypt.MinCost)
	assert.NoError(t, err)

	tooLong := "A1" + strings.Repeat("a", 78)
	assert.Error(t, ValidatePassword(tooLong))
}

func TestRegistrationForm(t *testing.T) {
	form := RegistrationForm{
		Username:  "alice",
		Password:  "Sup3rsecret",
		Password2: "Sup3rsecret",
	}
	assert.Empty(t, form.Validate())

	form.Password2 = "different"
	errs := form.Validate()
	require.Contains(t, errs, "password2")
	assert.Equal(t, "Passwords do not match", errs["password2"])
}

func TestPostForm(t *testing.T) {
	form := PostForm{Title: "Hi", Body: "world"}
	assert.Empty(t, form.Validate())

	empty := PostForm{}
	errs := empty.Validate()
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "body")

	blank := PostForm{Title: "   ", Body: "\t"}
	errs = blank.Validate()
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "body")
}

func TestCommentForm(t *testing.T) {
	assert.Empty(t, (&CommentForm{Body: "nice"}).Validate())
	assert.Contains(t, (&CommentForm{}).Validate(), "body")
}

func TestProfileEditForm_DateOfBirth(t *testing.T) {
	form := ProfileEditForm{DateOfBirth: "1990-04-01"}
	require.Empty(t, form.Validate())
	dob := form.ParsedDateOfBirth()
	require.NotNil(t, dob)
	assert.Equal(t, 1990, dob.Year())

	form.DateOfBirth = "April 1st"
	assert.Contains(t, form.Validate(), "date_of_birth")

	form.DateOfBirth = ""
	assert.Empty(t, form.Validate())
	assert.Nil(t, form.ParsedDateOfBirth())
}

func TestSendEmailForm(t *testing.T) {
	form := SendEmailForm{
		Name:  "Alice",
		Email: "alice@example.com",
		To:    "bob@example.com",
		Body:  "hello",
	}
	assert.Empty(t, form.Validate())

	form.Body = strings.Repeat("x", 251)
	assert.Contains(t, form.Validate(), "body")

	form.Body = ""
	assert.Contains(t, form.Validate(), "body")

	form.To = "nope"
	assert.Contains(t, form.Validate(), "to")
}

func TestContactForm_AcceptsEverything(t *testing.T) {
	assert.Empty(t, (&ContactForm{}).Validate())
	assert.Empty(t, (&ContactForm{Name: "x", Message: strings.Repeat("y", 100000)}).Validate())
}
