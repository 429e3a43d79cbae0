package client

import (
	"context"

	"github.com/c360studio/edcclient/contract"
	"github.com/c360studio/edcclient/query"
)

const resourceAgreements = "contractagreements"

// AgreementAPI reads contract agreements.
type AgreementAPI struct{ c *Client }

// Get fetches the agreement with id.
func (a *AgreementAPI) Get(ctx context.Context, id string) (contract.Agreement, error) {
	return fetch[contract.Agreement](ctx, a.c, resourceAgreements, id)
}

// Negotiation fetches the negotiation that produced the agreement with id.
func (a *AgreementAPI) Negotiation(ctx context.Context, id string) (contract.Negotiation, error) {
	return fetch[contract.Negotiation](ctx, a.c, resourceAgreements, id, "negotiation")
}

// Query lists the agreements matching q.
func (a *AgreementAPI) Query(ctx context.Context, q query.Query) ([]contract.Agreement, error) {
	return list[contract.Agreement](ctx, a.c, resourceAgreements, q)
}
