// Package contact validates contact-form submissions and hands them to a
// Sender: the remote relay endpoint, or SMTP.
package contact

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Message is the contact form body. Field names match the relay's JSON.
type Message struct {
	Name    string `json:"name" form:"name" validate:"required,single_line"`
	Email   string `json:"email" form:"email" validate:"required,loose_email"`
	Subject string `json:"subject" form:"subject" validate:"single_line"`
	Message string `json:"message" form:"message" validate:"required"`
}

// Normalize trims surrounding whitespace from every field.
func (m *Message) Normalize() {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Subject = strings.TrimSpace(m.Subject)
	m.Message = strings.TrimSpace(m.Message)
}

// looseEmail accepts anything shaped like a@b.c, same as the form's client-side check.
var looseEmail = regexp.MustCompile(`^\S+@\S+\.\S+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("loose_email", func(fl validator.FieldLevel) bool {
		return looseEmail.MatchString(fl.Field().String())
	})
	// Name and Subject end up in mail headers.
	_ = v.RegisterValidation("single_line", func(fl validator.FieldLevel) bool {
		return !strings.ContainsAny(fl.Field().String(), "\r\n")
	})
	return v
}

// ValidationError carries the user-facing message for the first invalid field.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validate normalizes m and checks it, reporting fields in form order.
func (m *Message) Validate() error {
	m.Normalize()
	err := validate.Struct(m)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	first := verrs[0]
	for _, fe := range verrs {
		if order[fe.Field()] < order[first.Field()] {
			first = fe
		}
	}
	msg := messages[first.Field()]
	if first.Tag() == "single_line" {
		msg = first.Field() + " must be a single line"
	}
	return &ValidationError{Field: first.Field(), Msg: msg}
}

var order = map[string]int{"Name": 0, "Email": 1, "Subject": 2, "Message": 3}

var messages = map[string]string{
	"Name":    "Name is required",
	"Email":   "Please enter a valid email",
	"Message": "Message is required",
}
