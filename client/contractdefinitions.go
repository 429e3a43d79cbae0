package client

import (
	"context"
	"net/http"

	"github.com/c360studio/edcclient/contract"
	"github.com/c360studio/edcclient/edc"
	"github.com/c360studio/edcclient/jsonld"
	"github.com/c360studio/edcclient/query"
)

const resourceContractDefinitions = "contractdefinitions"

// ContractDefinitionAPI manages contract definitions.
type ContractDefinitionAPI struct{ c *Client }

// Create stores a new contract definition.
func (d *ContractDefinitionAPI) Create(ctx context.Context, def *contract.NewDefinition) (edc.IDResponse, error) {
	return create(ctx, d.c, resourceContractDefinitions, jsonld.WithDefaultContext(def))
}

// Get fetches the contract definition with id.
func (d *ContractDefinitionAPI) Get(ctx context.Context, id string) (contract.Definition, error) {
	return fetch[contract.Definition](ctx, d.c, resourceContractDefinitions, id)
}

// Update replaces the stored definition with the same id.
func (d *ContractDefinitionAPI) Update(ctx context.Context, def *contract.Definition) error {
	return d.c.do(ctx, http.MethodPut, resourceContractDefinitions, nil, jsonld.WithDefaultContext(def), nil)
}

// Query lists the contract definitions matching q.
func (d *ContractDefinitionAPI) Query(ctx context.Context, q query.Query) ([]contract.Definition, error) {
	return list[contract.Definition](ctx, d.c, resourceContractDefinitions, q)
}

// Delete removes the contract definition with id.
func (d *ContractDefinitionAPI) Delete(ctx context.Context, id string) error {
	return d.c.do(ctx, http.MethodDelete, resourceContractDefinitions, []string{id}, nil, nil)
}
