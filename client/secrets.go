package client

import (
	"context"
	"net/http"

	"github.com/c360studio/edcclient/edc"
	"github.com/c360studio/edcclient/jsonld"
	"github.com/c360studio/edcclient/secret"
)

const resourceSecrets = "secrets"

// SecretAPI manages vault secrets.
type SecretAPI struct{ c *Client }

// Create stores a new secret.
func (s *SecretAPI) Create(ctx context.Context, ns *secret.NewSecret) (edc.IDResponse, error) {
	return create(ctx, s.c, resourceSecrets, jsonld.WithDefaultContext(ns))
}

// Get fetches the secret with id.
func (s *SecretAPI) Get(ctx context.Context, id string) (secret.Secret, error) {
	return fetch[secret.Secret](ctx, s.c, resourceSecrets, id)
}

// Update replaces the stored secret with the same id.
func (s *SecretAPI) Update(ctx context.Context, sec *secret.Secret) error {
	return s.c.do(ctx, http.MethodPut, resourceSecrets, nil, jsonld.WithDefaultContext(sec), nil)
}

// Delete removes the secret with id.
func (s *SecretAPI) Delete(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodDelete, resourceSecrets, []string{id}, nil, nil)
}
