// Package common contains shared constants, sentinel errors and small helpers
// used across gymbacteria client components.
package common

// Storage keys for the persisted session. They match the keys the web front
// end keeps in browser local storage, so a migrated store stays readable.
const (
	AccessKeyStorageKey = "gym_bacteria_access_key"
	UserStorageKey      = "gym_bacteria_user"
)

// RequestIDHeaderName is the HTTP header carrying a per-request id on
// outbound API calls.
const RequestIDHeaderName = "X-Request-ID"
