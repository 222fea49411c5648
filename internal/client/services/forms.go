package services

import (
	"strings"

	"github.com/dmitrijs2005/gymbacteria/internal/common"
)

// Form validation messages shown next to the offending field.
const (
	MsgAccessKeyRequired = "Please enter your access key"
	MsgNicknameRequired  = "Please enter your nickname"
)

// NicknameMaxLen bounds the signup nickname.
const NicknameMaxLen = 64

// FieldError describes one invalid form field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every invalid field of a form. It matches
// common.ErrorValidation with errors.Is.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Field + ": " + f.Message
	}
	return "validation error: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == common.ErrorValidation
}

// LoginForm is the login page input.
type LoginForm struct {
	AccessKey string
}

func (f LoginForm) Check() []FieldError {
	if strings.TrimSpace(f.AccessKey) == "" {
		return []FieldError{{Field: "access_key", Message: MsgAccessKeyRequired}}
	}
	return nil
}

// Validate returns a *ValidationError, or nil.
func (f LoginForm) Validate() error {
	return asError(f.Check())
}

// SignupForm is the signup page input.
type SignupForm struct {
	Nickname string
}

func (f SignupForm) Check() []FieldError {
	n := strings.TrimSpace(f.Nickname)
	switch {
	case n == "":
		return []FieldError{{Field: "nickname", Message: MsgNicknameRequired}}
	case len(n) > NicknameMaxLen:
		return []FieldError{{Field: "nickname", Message: "Nickname is too long"}}
	}
	return nil
}

// Validate returns a *ValidationError, or nil.
func (f SignupForm) Validate() error {
	return asError(f.Check())
}

func asError(fields []FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
