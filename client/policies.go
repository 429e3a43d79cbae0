package client

import (
	"context"
	"net/http"

	"github.com/c360studio/edcclient/edc"
	"github.com/c360studio/edcclient/jsonld"
	"github.com/c360studio/edcclient/policy"
	"github.com/c360studio/edcclient/query"
)

const resourcePolicies = "policydefinitions"

// PolicyAPI manages policy definitions. Payloads travel under the ODRL
// context.
type PolicyAPI struct{ c *Client }

// Create stores a new policy definition.
func (p *PolicyAPI) Create(ctx context.Context, def *policy.NewDefinition) (edc.IDResponse, error) {
	return create(ctx, p.c, resourcePolicies, jsonld.WithPolicyContext(def))
}

// Get fetches the policy definition with id.
func (p *PolicyAPI) Get(ctx context.Context, id string) (policy.Definition, error) {
	return fetch[policy.Definition](ctx, p.c, resourcePolicies, id)
}

// Update replaces the stored definition with the same id.
func (p *PolicyAPI) Update(ctx context.Context, def *policy.Definition) error {
	return p.c.do(ctx, http.MethodPut, resourcePolicies, []string{def.ID}, jsonld.WithPolicyContext(def), nil)
}

// Query lists the policy definitions matching q.
func (p *PolicyAPI) Query(ctx context.Context, q query.Query) ([]policy.Definition, error) {
	return list[policy.Definition](ctx, p.c, resourcePolicies, q)
}

// Delete removes the policy definition with id.
func (p *PolicyAPI) Delete(ctx context.Context, id string) error {
	return p.c.do(ctx, http.MethodDelete, resourcePolicies, []string{id}, nil, nil)
}
