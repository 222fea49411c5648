// Package identity turns an access key into a user record by asking the
// training API. It is the only component that talks to the user endpoints
// on behalf of the session.
package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gymbacteria/internal/client/client"
	"github.com/dmitrijs2005/gymbacteria/internal/client/models"
	"github.com/dmitrijs2005/gymbacteria/internal/common"
	"github.com/dmitrijs2005/gymbacteria/internal/logging"
)

var (
	// ErrAuthenticationFailed wraps every failure to resolve a credential,
	// whatever the cause. The cause stays in the chain.
	ErrAuthenticationFailed = errors.New("authentication failed")
	// ErrRegistrationFailed wraps failures to create an identity.
	ErrRegistrationFailed = errors.New("registration failed")
	// ErrDeletionFailed wraps failures to delete an identity.
	ErrDeletionFailed = errors.New("deletion failed")
)

// AccessKeySize is the number of random bytes in a generated access key.
const AccessKeySize = 16

// Resolver is the identity contract the session manager depends on.
type Resolver interface {
	Resolve(ctx context.Context, credential string) (*models.User, error)
	Create(ctx context.Context, nickname, credential string) (*models.User, error)
	Delete(ctx context.Context, credential string) error
}

// APIResolver implements Resolver over the training API client.
type APIResolver struct {
	api    client.Client
	logger logging.Logger
}

func NewAPIResolver(api client.Client, logger logging.Logger) *APIResolver {
	return &APIResolver{api: api, logger: logger.With("module", "identity")}
}

// Resolve fetches the user owning credential. The returned user is never nil
// when err is nil.
func (r *APIResolver) Resolve(ctx context.Context, credential string) (*models.User, error) {
	u, err := r.api.GetUser(ctx, credential)
	if err == nil && u == nil {
		err = client.ErrUnexpectedResponse
	}
	if err != nil {
		r.logger.Debug(ctx, "resolve failed", "credential", common.MaskSecret(credential), "error", err)
		return nil, fmt.Errorf("%w: %w", ErrAuthenticationFailed, err)
	}
	return u, nil
}

// Create registers a new identity under credential.
func (r *APIResolver) Create(ctx context.Context, nickname, credential string) (*models.User, error) {
	u, err := r.api.CreateUser(ctx, nickname, credential)
	if err == nil && u == nil {
		err = client.ErrUnexpectedResponse
	}
	if err != nil {
		r.logger.Debug(ctx, "create failed", "nickname", nickname, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrRegistrationFailed, err)
	}
	return u, nil
}

// Delete removes the identity owning credential.
func (r *APIResolver) Delete(ctx context.Context, credential string) error {
	if err := r.api.DeleteUser(ctx, credential); err != nil {
		r.logger.Debug(ctx, "delete failed", "credential", common.MaskSecret(credential), "error", err)
		return fmt.Errorf("%w: %w", ErrDeletionFailed, err)
	}
	return nil
}

// GenerateAccessKey returns a fresh random access key for signup.
func GenerateAccessKey() (string, error) {
	k, err := common.MakeRandHexString(AccessKeySize)
	if err != nil {
		return "", fmt.Errorf("generate access key: %w", err)
	}
	return k, nil
}
