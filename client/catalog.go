package client

import (
	"context"
	"net/http"

	"github.com/c360studio/edcclient/catalog"
	"github.com/c360studio/edcclient/jsonld"
)

const resourceCatalog = "catalog"

// CatalogAPI fetches the catalogs of counter-parties through the connector.
type CatalogAPI struct{ c *Client }

// Request fetches the catalog described by req.
func (a *CatalogAPI) Request(ctx context.Context, req *catalog.Request) (catalog.Catalog, error) {
	var env jsonld.Envelope[catalog.Catalog]
	err := a.c.do(ctx, http.MethodPost, resourceCatalog, []string{"request"}, jsonld.WithDefaultContext(req), &env)
	return env.Inner, err
}

// Dataset fetches a single dataset. Providers may answer with a nested
// catalog, so the result is a tree node.
func (a *CatalogAPI) Dataset(ctx context.Context, req *catalog.DatasetRequest) (catalog.Node, error) {
	var env jsonld.Envelope[catalog.Node]
	err := a.c.do(ctx, http.MethodPost, resourceCatalog, []string{"dataset", "request"}, jsonld.WithDefaultContext(req), &env)
	return env.Inner, err
}
