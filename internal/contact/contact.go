// Package contact validates contact-form submissions and delivers them by
// mail.
package contact

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	ErrInvalidForm   = errors.New("invalid contact form")
	ErrNotConfigured = errors.New("SMTP credentials not configured")
)

const (
	maxNameLength    = 120
	maxEmailLength   = 254
	maxMessageLength = 5000
)

type Message struct {
	Name       string
	Email      string
	Body       string
	ReceivedAt time.Time
}

// FieldError names the form field that failed validation.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *FieldError) Is(target error) bool {
	return target == ErrInvalidForm
}

// NewMessage trims and validates the submitted fields.
func NewMessage(name, email, body string, now time.Time) (Message, error) {
	m := Message{
		Name:       strings.TrimSpace(name),
		Email:      strings.TrimSpace(email),
		Body:       strings.TrimSpace(body),
		ReceivedAt: now,
	}
	return m, m.Validate()
}

func (m Message) Validate() error {
	switch {
	case m.Name == "":
		return &FieldError{Field: "fullName", Reason: "required"}
	case utf8.RuneCountInString(m.Name) > maxNameLength:
		return &FieldError{Field: "fullName", Reason: "too long"}
	case strings.ContainsAny(m.Name, "\r\n"):
		return &FieldError{Field: "fullName", Reason: "must be a single line"}
	case m.Email == "":
		return &FieldError{Field: "email", Reason: "required"}
	case len(m.Email) > maxEmailLength:
		return &FieldError{Field: "email", Reason: "too long"}
	case !validEmail(m.Email):
		return &FieldError{Field: "email", Reason: "not an email address"}
	case m.Body == "":
		return &FieldError{Field: "message", Reason: "required"}
	case utf8.RuneCountInString(m.Body) > maxMessageLength:
		return &FieldError{Field: "message", Reason: "too long"}
	}
	return nil
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// Sender delivers a validated message.
type Sender interface {
	Send(ctx context.Context, m Message) error
}
