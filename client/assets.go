package client

import (
	"context"
	"net/http"

	"github.com/c360studio/edcclient/asset"
	"github.com/c360studio/edcclient/edc"
	"github.com/c360studio/edcclient/jsonld"
	"github.com/c360studio/edcclient/query"
)

const resourceAssets = "assets"

// AssetAPI manages assets.
type AssetAPI struct{ c *Client }

// Create stores a new asset.
func (a *AssetAPI) Create(ctx context.Context, na *asset.NewAsset) (edc.IDResponse, error) {
	return create(ctx, a.c, resourceAssets, jsonld.WithDefaultContext(na))
}

// Get fetches the asset with id.
func (a *AssetAPI) Get(ctx context.Context, id string) (asset.Asset, error) {
	return fetch[asset.Asset](ctx, a.c, resourceAssets, id)
}

// Update replaces the stored asset with the same id.
func (a *AssetAPI) Update(ctx context.Context, as *asset.Asset) error {
	return a.c.do(ctx, http.MethodPut, resourceAssets, nil, jsonld.WithDefaultContext(as), nil)
}

// Query lists the assets matching q.
func (a *AssetAPI) Query(ctx context.Context, q query.Query) ([]asset.Asset, error) {
	return list[asset.Asset](ctx, a.c, resourceAssets, q)
}

// Delete removes the asset with id.
func (a *AssetAPI) Delete(ctx context.Context, id string) error {
	return a.c.do(ctx, http.MethodDelete, resourceAssets, []string{id}, nil, nil)
}
