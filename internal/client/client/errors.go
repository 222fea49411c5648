package client

import "errors"

var (
	ErrUnavailable        = errors.New("server unavailable")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotFound           = errors.New("not found")
	ErrRejected           = errors.New("request rejected")
	ErrUnexpectedResponse = errors.New("unexpected response")
)
