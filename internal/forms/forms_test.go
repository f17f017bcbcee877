package forms

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogin(t *testing.T) {
	t.Run("strips whitespace from the email address", func(t *testing.T) {
		f := ParseLogin(url.Values{"email_address": {"  valid@email.com \t"}, "password": {"1234567890"}})
		assert.Equal(t, "valid@email.com", f.EmailAddress)
		assert.True(t, f.Validate().Valid())
	})

	t.Run("missing fields", func(t *testing.T) {
		errs := ParseLogin(url.Values{}).Validate()
		assert.Equal(t, Errors{
			"email_address": "Email address must be provided",
			"password":      "Please enter your password",
		}, errs)
	})

	t.Run("whitespace-only password is missing", func(t *testing.T) {
		f := ParseLogin(url.Values{"email_address": {"valid@email.com"}, "password": {"   "}})
		assert.Equal(t, "   ", f.Password)
		assert.Equal(t, Errors{"password": "Please enter your password"}, f.Validate())
	})

	t.Run("password is kept as typed", func(t *testing.T) {
		f := ParseLogin(url.Values{"email_address": {"valid@email.com"}, "password": {" 1234567890 "}})
		assert.Equal(t, " 1234567890 ", f.Password)
		assert.True(t, f.Validate().Valid())
	})

	t.Run("invalid email", func(t *testing.T) {
		errs := ParseLogin(url.Values{"email_address": {"not-an-email"}, "password": {"x"}}).Validate()
		assert.Equal(t, "Please enter a valid email address", errs["email_address"])
	})
}

func TestEmailAddress(t *testing.T) {
	assert.True(t, ParseEmailAddress(url.Values{"email_address": {" a@b.com "}}).Validate().Valid())
	assert.Equal(t, "Email address must be provided",
		ParseEmailAddress(url.Values{"email_address": {"   "}}).Validate()["email_address"])
}

func TestChangePassword(t *testing.T) {
	cases := map[string]struct {
		password, confirm string
		want              Errors
	}{
		"valid":             {"1234567890", "1234567890", Errors{}},
		"empty":             {"", "", Errors{"password": "Please enter a new password", "confirm_password": "Please confirm your new password"}},
		"too short":         {"123456789", "123456789", Errors{"password": "Passwords must be between 10 and 50 characters"}},
		"too long":          {strings.Repeat("a", 51), strings.Repeat("a", 51), Errors{"password": "Passwords must be between 10 and 50 characters"}},
		"doesnt match":      {"1234567890", "0987654321", Errors{"confirm_password": "The passwords you entered do not match"}},
		"fifty is fine":     {strings.Repeat("a", 50), strings.Repeat("a", 50), Errors{}},
		"only spaces":       {strings.Repeat(" ", 10), strings.Repeat(" ", 10), Errors{"password": "Please enter a new password", "confirm_password": "Please confirm your new password"}},
		"tabs and newlines": {"\t\n\t\n\t\n\t\n\t\n", "\t\n\t\n\t\n\t\n\t\n", Errors{"password": "Please enter a new password", "confirm_password": "Please confirm your new password"}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			f := ParseChangePassword(url.Values{"password": {tc.password}, "confirm_password": {tc.confirm}})
			assert.Equal(t, tc.want, f.Validate())
		})
	}
}

func TestCreateUser(t *testing.T) {
	f := ParseCreateUser(url.Values{"name": {"  Valid Name "}, "password": {"1234567890"}})
	assert.Equal(t, "Valid Name", f.Name)
	assert.True(t, f.Validate().Valid())

	errs := ParseCreateUser(url.Values{"name": {" "}, "password": {""}}).Validate()
	assert.Equal(t, Errors{"name": "Please enter a name", "password": "Please enter a password"}, errs)

	errs = ParseCreateUser(url.Values{"name": {"x"}, "password": {strings.Repeat(" ", 11)}}).Validate()
	assert.Equal(t, Errors{"password": "Please enter a password"}, errs)

	errs = ParseCreateUser(url.Values{"name": {strings.Repeat("n", 256)}, "password": {"1234567890"}}).Validate()
	assert.Equal(t, "Names must be between 1 and 255 characters", errs["name"])
}
