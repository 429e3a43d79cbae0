package client

import (
	"context"
	"net/http"
	"time"

	"github.com/c360studio/edcclient/edc"
	"github.com/c360studio/edcclient/jsonld"
	"github.com/c360studio/edcclient/query"
	"github.com/c360studio/edcclient/transfer"
)

const resourceTransfers = "transferprocesses"

// TransferAPI starts and controls transfer processes.
type TransferAPI struct{ c *Client }

// Initiate starts a transfer.
func (t *TransferAPI) Initiate(ctx context.Context, req *transfer.Request) (edc.IDResponse, error) {
	return create(ctx, t.c, resourceTransfers, jsonld.WithDefaultContext(req))
}

// Get fetches the transfer process with id.
func (t *TransferAPI) Get(ctx context.Context, id string) (transfer.Process, error) {
	return fetch[transfer.Process](ctx, t.c, resourceTransfers, id)
}

// State fetches only the state of the transfer process with id.
func (t *TransferAPI) State(ctx context.Context, id string) (transfer.State, error) {
	resp, err := fetch[transfer.StateResponse](ctx, t.c, resourceTransfers, id, "state")
	return resp.State, err
}

// Terminate ends the transfer process with id.
func (t *TransferAPI) Terminate(ctx context.Context, id, reason string) error {
	body := jsonld.WithDefaultContext(transfer.Terminate{ID: id, Reason: reason})
	return t.c.do(ctx, http.MethodPost, resourceTransfers, []string{id, "terminate"}, body, nil)
}

// Suspend pauses the transfer process with id.
func (t *TransferAPI) Suspend(ctx context.Context, id, reason string) error {
	body := jsonld.WithDefaultContext(transfer.Suspend{ID: id, Reason: reason})
	return t.c.do(ctx, http.MethodPost, resourceTransfers, []string{id, "suspend"}, body, nil)
}

// Resume restarts a suspended transfer process.
func (t *TransferAPI) Resume(ctx context.Context, id string) error {
	return t.c.do(ctx, http.MethodPost, resourceTransfers, []string{id, "resume"}, nil, nil)
}

// Deprovision releases the resources provisioned for the transfer process.
func (t *TransferAPI) Deprovision(ctx context.Context, id string) error {
	return t.c.do(ctx, http.MethodPost, resourceTransfers, []string{id, "deprovision"}, nil, nil)
}

// Query lists the transfer processes matching q.
func (t *TransferAPI) Query(ctx context.Context, q query.Query) ([]transfer.Process, error) {
	return list[transfer.Process](ctx, t.c, resourceTransfers, q)
}

// Await polls the transfer state every interval until target or an end
// state is reached, or ctx ends. On error it returns the last state observed.
func (t *TransferAPI) Await(ctx context.Context, id string, target transfer.State, interval time.Duration) (transfer.State, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var last transfer.State
	for {
		state, err := t.State(ctx, id)
		if err != nil {
			return last, err
		}
		last = state
		if state == target || state.Done() {
			return state, nil
		}

		select {
		case <-ctx.Done():
			return state, ctx.Err()
		case <-ticker.C:
		}
	}
}
