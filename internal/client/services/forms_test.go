package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginForm(t *testing.T) {
	assert.NoError(t, LoginForm{AccessKey: "k"}.Validate())
	assert.Len(t, LoginForm{}.Check(), 1)
}

func TestSignupForm(t *testing.T) {
	assert.NoError(t, SignupForm{Nickname: "alex"}.Validate())

	fields := SignupForm{Nickname: "\t"}.Check()
	assert.Equal(t, []FieldError{{Field: "nickname", Message: MsgNicknameRequired}}, fields)

	long := SignupForm{Nickname: strings.Repeat("x", NicknameMaxLen+1)}
	assert.Len(t, long.Check(), 1)
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Fields: []FieldError{{Field: "a", Message: "bad"}, {Field: "b", Message: "worse"}}}
	assert.Equal(t, "validation error: a: bad; b: worse", err.Error())
}
