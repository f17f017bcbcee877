// Package forms parses and validates the account forms.
//
// Text fields are trimmed before validation. Passwords are taken as typed.
package forms

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/asaskevich/govalidator"
)

// Errors maps a field name to its first failing message.
type Errors map[string]string

func (e Errors) add(field, message string) {
	if _, ok := e[field]; !ok {
		e[field] = message
	}
}

// Valid reports whether no field failed.
func (e Errors) Valid() bool { return len(e) == 0 }

func stripped(form url.Values, field string) string {
	return strings.TrimSpace(form.Get(field))
}

// blank is the required-field check; whitespace alone counts as missing.
func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func lengthBetween(s string, min, max int) bool {
	n := utf8.RuneCountInString(s)
	return n >= min && n <= max
}

func validateEmail(errs Errors, email string) {
	switch {
	case email == "":
		errs.add("email_address", "Email address must be provided")
	case !govalidator.IsEmail(email):
		errs.add("email_address", "Please enter a valid email address")
	}
}

func validatePassword(errs Errors, password, requiredMessage string) {
	switch {
	case blank(password):
		errs.add("password", requiredMessage)
	case !govalidator.StringLength(password, "10", "50"):
		errs.add("password", "Passwords must be between 10 and 50 characters")
	}
}

type Login struct {
	EmailAddress string
	Password     string
}

func ParseLogin(form url.Values) Login {
	return Login{
		EmailAddress: stripped(form, "email_address"),
		Password:     form.Get("password"),
	}
}

func (f Login) Validate() Errors {
	errs := Errors{}
	validateEmail(errs, f.EmailAddress)
	if blank(f.Password) {
		errs.add("password", "Please enter your password")
	}
	return errs
}

type EmailAddress struct {
	EmailAddress string
}

func ParseEmailAddress(form url.Values) EmailAddress {
	return EmailAddress{EmailAddress: stripped(form, "email_address")}
}

func (f EmailAddress) Validate() Errors {
	errs := Errors{}
	validateEmail(errs, f.EmailAddress)
	return errs
}

type ChangePassword struct {
	Password        string
	ConfirmPassword string
}

func ParseChangePassword(form url.Values) ChangePassword {
	return ChangePassword{
		Password:        form.Get("password"),
		ConfirmPassword: form.Get("confirm_password"),
	}
}

func (f ChangePassword) Validate() Errors {
	errs := Errors{}
	validatePassword(errs, f.Password, "Please enter a new password")
	switch {
	case blank(f.ConfirmPassword):
		errs.add("confirm_password", "Please confirm your new password")
	case f.ConfirmPassword != f.Password:
		errs.add("confirm_password", "The passwords you entered do not match")
	}
	return errs
}

type CreateUser struct {
	Name     string
	Password string
}

func ParseCreateUser(form url.Values) CreateUser {
	return CreateUser{
		Name:     stripped(form, "name"),
		Password: form.Get("password"),
	}
}

func (f CreateUser) Validate() Errors {
	errs := Errors{}
	switch {
	case f.Name == "":
		errs.add("name", "Please enter a name")
	case !lengthBetween(f.Name, 1, 255):
		errs.add("name", "Names must be between 1 and 255 characters")
	}
	validatePassword(errs, f.Password, "Please enter a password")
	return errs
}
