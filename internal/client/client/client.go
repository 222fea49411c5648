package client

import (
	"context"

	"github.com/dmitrijs2005/gymbacteria/internal/client/models"
)

// Client is the transport-agnostic contract for the training API's user
// endpoints.
type Client interface {
	GetUser(ctx context.Context, accessKey string) (*models.User, error)
	CreateUser(ctx context.Context, nickname string, accessKey string) (*models.User, error)
	DeleteUser(ctx context.Context, accessKey string) error
	Ping(ctx context.Context) (*Health, error)
}

// Health is the API health-check payload.
type Health struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
