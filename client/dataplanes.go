package client

import (
	"context"

	"github.com/c360studio/edcclient/dataplane"
)

const resourceDataPlanes = "dataplanes"

// DataPlaneAPI lists registered data planes.
type DataPlaneAPI struct{ c *Client }

// List returns every data plane known to the connector.
func (d *DataPlaneAPI) List(ctx context.Context) ([]dataplane.Instance, error) {
	return fetchAll[dataplane.Instance](ctx, d.c, resourceDataPlanes)
}
