// Package models holds the client-side domain types shared by the session
// subsystem and its consumers.
package models

// User is the identity record returned by the API for an access key.
// It is never mutated in place; a re-fetch produces a new value.
type User struct {
	ID        int64  `json:"id"`
	Nickname  string `json:"nickname"`
	AccessKey string `json:"access_key"`
}

// Equal reports whether u and o describe the same identity record.
func (u *User) Equal(o *User) bool {
	if u == nil || o == nil {
		return u == o
	}
	return *u == *o
}
