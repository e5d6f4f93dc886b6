// Package forms holds the typed inputs of every HTML form and their
// validation rules.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report errors under the form field name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})

	return v
}

// Validate runs the struct's validate tags and translates failures into
// per-field messages
func Validate(input interface{}) Errors {
	errs := Errors{}

	err := validate.Struct(input)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add(NonFieldErrors, err.Error())
		return errs
	}

	for _, fe := range verrs {
		errs.Add(fe.Field(), message(fe))
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this value has at least %s characters.", fe.Param())
	case "number":
		return "Select a valid choice."
	case "email":
		return "Enter a valid email address."
	case "username":
		return "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	case "eqfield":
		return "The two password fields didn't match."
	default:
		return "Enter a valid value."
	}
}

// PostInput is the post create/edit form
type PostInput struct {
	Text  string `form:"text" validate:"required"`
	Group string `form:"group" validate:"omitempty,number"`
	// ClearImage removes the current image when editing
	ClearImage bool `form:"image-clear"`
}

// Normalize trims surrounding whitespace
func (in *PostInput) Normalize() {
	in.Text = strings.TrimSpace(in.Text)
	in.Group = strings.TrimSpace(in.Group)
}

// Validate normalizes and validates the input
func (in *PostInput) Validate() Errors {
	in.Normalize()
	return Validate(in)
}

// GroupID returns the selected group, or 0 when none is selected
func (in *PostInput) GroupID() int64 {
	id, err := strconv.ParseInt(in.Group, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// CommentInput is the comment form
type CommentInput struct {
	Text string `form:"text" validate:"required"`
}

// Validate normalizes and validates the input
func (in *CommentInput) Validate() Errors {
	in.Text = strings.TrimSpace(in.Text)
	return Validate(in)
}

// SignupInput is the registration form
type SignupInput struct {
	FirstName       string `form:"first_name" validate:"max=150"`
	LastName        string `form:"last_name" validate:"max=150"`
	Username        string `form:"username" validate:"required,max=150,username"`
	Email           string `form:"email" validate:"omitempty,email,max=254"`
	Password        string `form:"password1" validate:"required,min=8,max=128"`
	PasswordConfirm string `form:"password2" validate:"required,eqfield=Password"`
}

// Validate normalizes and validates the input
func (in *SignupInput) Validate() Errors {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	return Validate(in)
}

// LoginInput is the login form
type LoginInput struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// Validate normalizes and validates the input
func (in *LoginInput) Validate() Errors {
	in.Username = strings.TrimSpace(in.Username)
	return Validate(in)
}
