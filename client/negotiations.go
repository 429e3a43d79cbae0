package client

import (
	"context"
	"net/http"
	"time"

	"github.com/c360studio/edcclient/contract"
	"github.com/c360studio/edcclient/edc"
	"github.com/c360studio/edcclient/jsonld"
	"github.com/c360studio/edcclient/query"
)

const resourceNegotiations = "contractnegotiations"

// NegotiationAPI starts and tracks contract negotiations.
type NegotiationAPI struct{ c *Client }

// Initiate starts a negotiation. The request embeds an ODRL offer and is sent
// under the ODRL context.
func (n *NegotiationAPI) Initiate(ctx context.Context, req *contract.Request) (edc.IDResponse, error) {
	return create(ctx, n.c, resourceNegotiations, jsonld.WithPolicyContext(req))
}

// Get fetches the negotiation with id.
func (n *NegotiationAPI) Get(ctx context.Context, id string) (contract.Negotiation, error) {
	return fetch[contract.Negotiation](ctx, n.c, resourceNegotiations, id)
}

// State fetches only the state of the negotiation with id.
func (n *NegotiationAPI) State(ctx context.Context, id string) (contract.NegotiationState, error) {
	resp, err := fetch[contract.StateResponse](ctx, n.c, resourceNegotiations, id, "state")
	return resp.State, err
}

// Agreement fetches the agreement produced by the negotiation with id.
func (n *NegotiationAPI) Agreement(ctx context.Context, id string) (contract.Agreement, error) {
	return fetch[contract.Agreement](ctx, n.c, resourceNegotiations, id, "agreement")
}

// Terminate ends the negotiation with id.
func (n *NegotiationAPI) Terminate(ctx context.Context, id, reason string) error {
	body := jsonld.WithDefaultContext(contract.Terminate{ID: id, Reason: reason})
	return n.c.do(ctx, http.MethodPost, resourceNegotiations, []string{id, "terminate"}, body, nil)
}

// Query lists the negotiations matching q.
func (n *NegotiationAPI) Query(ctx context.Context, q query.Query) ([]contract.Negotiation, error) {
	return list[contract.Negotiation](ctx, n.c, resourceNegotiations, q)
}

// Await polls the negotiation state every interval until it is finalized or
// terminated, or ctx ends. On error it returns the last state observed.
func (n *NegotiationAPI) Await(ctx context.Context, id string, interval time.Duration) (contract.NegotiationState, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var last contract.NegotiationState
	for {
		state, err := n.State(ctx, id)
		if err != nil {
			return last, err
		}
		last = state
		if state.Done() {
			return state, nil
		}
		n.c.logger.Debug("Negotiation pending", "id", id, "state", state)

		select {
		case <-ctx.Done():
			return state, ctx.Err()
		case <-ticker.C:
		}
	}
}
