package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/edcclient/asset"
	"github.com/c360studio/edcclient/catalog"
	"github.com/c360studio/edcclient/client"
	"github.com/c360studio/edcclient/contract"
	"github.com/c360studio/edcclient/edc"
	"github.com/c360studio/edcclient/edctest"
	"github.com/c360studio/edcclient/policy"
	"github.com/c360studio/edcclient/query"
	"github.com/c360studio/edcclient/secret"
	"github.com/c360studio/edcclient/transfer"
)

func secretPayload(id, value string) *secret.NewSecret {
	return secret.New(id, value)
}

func TestProviderSetup(t *testing.T) {
	srv := edctest.NewServer(t)
	c := newClient(t, srv)
	ctx := context.Background()

	p := policy.New(policy.KindSet).Permit(policy.NewPermission(policy.Atomic("purpose", "eq", "research")))
	_, err := c.Policies().Create(ctx, policy.Define("policy-1", p))
	require.NoError(t, err)

	reqs := srv.Requests()
	var body map[string]any
	require.NoError(t, json.Unmarshal(reqs[len(reqs)-1].Body, &body))
	assert.Contains(t, body["@context"], "odrl")

	def, err := c.Policies().Get(ctx, "policy-1")
	require.NoError(t, err)
	require.Len(t, def.Policy.Permissions, 1)
	require.Len(t, def.Policy.Permissions[0].Constraints, 1)
	atomic := def.Policy.Permissions[0].Constraints[0].Atomic
	require.NotNil(t, atomic)
	assert.Equal(t, "purpose", atomic.LeftOperand.ID)

	def.PrivateProperties.Set("reviewed", true)
	require.NoError(t, c.Policies().Update(ctx, &def))
	last := srv.Requests()[len(srv.Requests())-1]
	assert.Equal(t, http.MethodPut, last.Method)
	assert.Equal(t, "/management/v3/policydefinitions/policy-1", last.Path)

	cd := contract.Define("cd-1", "policy-1", "policy-1").Select("id", "=", "asset-1")
	_, err = c.ContractDefinitions().Create(ctx, cd)
	require.NoError(t, err)

	defs, err := c.ContractDefinitions().Query(ctx, query.All())
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "policy-1", defs[0].AccessPolicyID)
	require.Len(t, defs[0].AssetsSelector, 1)

	defs[0].ContractPolicyID = "policy-2"
	require.NoError(t, c.ContractDefinitions().Update(ctx, &defs[0]))
	updated, err := c.ContractDefinitions().Get(ctx, "cd-1")
	require.NoError(t, err)
	assert.Equal(t, "policy-2", updated.ContractPolicyID)

	require.NoError(t, c.ContractDefinitions().Delete(ctx, "cd-1"))
	require.NoError(t, c.Policies().Delete(ctx, "policy-1"))
}

func TestQueryPaging(t *testing.T) {
	srv := edctest.NewServer(t)
	c := newClient(t, srv)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c", "d"} {
		_, err := c.Assets().Create(ctx, asset.New(id, asset.HTTPData("https://example.com/"+id)))
		require.NoError(t, err)
	}

	page, err := c.Assets().Query(ctx, query.All().Page(1, 2))
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "b", page[0].ID)
	assert.Equal(t, "c", page[1].ID)
}

const federatedCatalog = `{
	"@context": {"@vocab": "https://w3id.org/edc/v0.0.1/ns/", "dcat": "http://www.w3.org/ns/dcat#"},
	"@id": "urn:catalog:root",
	"@type": "dcat:Catalog",
	"dspace:participantId": "provider",
	"dcat:dataset": [
		{"@id": "asset-1", "@type": "dcat:Dataset", "dct:title": "One"},
		{
			"@id": "urn:catalog:sub",
			"@type": "dcat:Catalog",
			"dcat:service": {"@id": "svc-1", "@type": "dcat:DataService", "dcat:endpointURL": "https://sub/dsp"},
			"dcat:dataset": {"@id": "asset-2", "@type": "dcat:Dataset"}
		}
	]
}`

func TestCatalogRequests(t *testing.T) {
	srv := edctest.NewServer(t)
	c := newClient(t, srv)
	ctx := context.Background()

	t.Run("unavailable", func(t *testing.T) {
		_, err := c.Catalog().Request(ctx, catalog.NewRequest("http://provider/api/dsp"))
		require.Error(t, err)
		assert.True(t, client.IsTransient(err))
	})

	srv.SetCatalog(federatedCatalog)
	srv.SetDataset("asset-1", `{"@id": "asset-1", "@type": "dcat:Dataset", "dct:title": "One"}`)

	t.Run("catalog", func(t *testing.T) {
		cat, err := c.Catalog().Request(ctx, catalog.NewRequest("http://provider/api/dsp").WithCounterParty("provider"))
		require.NoError(t, err)
		assert.Equal(t, "provider", cat.ParticipantID)

		var ids []string
		for _, ds := range cat.FlattenDatasets() {
			ids = append(ids, ds.ID)
		}
		assert.Equal(t, []string{"asset-1", "asset-2"}, ids)
		require.Len(t, cat.FlattenServices(), 1)
		assert.Equal(t, "svc-1", cat.FlattenServices()[0].ID)
	})

	t.Run("dataset", func(t *testing.T) {
		node, err := c.Catalog().Dataset(ctx, catalog.NewDatasetRequest("asset-1", "http://provider/api/dsp"))
		require.NoError(t, err)
		assert.True(t, node.IsDataset())
		assert.Equal(t, "One", node.TitleOr(""))

		_, err = c.Catalog().Dataset(ctx, catalog.NewDatasetRequest("missing", "http://provider/api/dsp"))
		assert.True(t, client.IsNotFound(err))
	})
}

func TestNegotiationFlow(t *testing.T) {
	srv := edctest.NewServer(t)
	c := newClient(t, srv)
	ctx := context.Background()

	offer := policy.New(policy.KindOffer).
		WithTarget(policy.Term("asset-1")).
		WithParties("provider", "").
		Permit(policy.NewPermission())
	offer.ID = "offer-1"

	req := contract.NewRequest("http://provider/api/dsp", "provider", *offer).
		WithCallback(edc.NewCallbackAddress("http://me/cb", "contract.negotiation"))
	started, err := c.Negotiations().Initiate(ctx, req)
	require.NoError(t, err)

	neg, err := c.Negotiations().Get(ctx, started.ID)
	require.NoError(t, err)
	assert.Equal(t, contract.NegotiationRequested, neg.State)
	assert.Equal(t, edc.RoleConsumer, neg.Role)
	assert.Equal(t, "provider", neg.CounterPartyID)
	assert.Len(t, neg.CallbackAddresses, 1)

	srv.Finalize(started.ID, "agreement-1")

	state, err := c.Negotiations().Await(ctx, started.ID, time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, contract.NegotiationFinalized, state)

	agreement, err := c.Negotiations().Agreement(ctx, started.ID)
	require.NoError(t, err)
	assert.Equal(t, "agreement-1", agreement.ID)
	assert.Equal(t, "asset-1", agreement.AssetID)
	assert.Equal(t, policy.KindAgreement, agreement.Policy.Kind)

	byAgreement, err := c.Agreements().Negotiation(ctx, "agreement-1")
	require.NoError(t, err)
	assert.Equal(t, started.ID, byAgreement.ID)

	agreements, err := c.Agreements().Query(ctx, query.All())
	require.NoError(t, err)
	assert.Len(t, agreements, 1)

	_, err = c.Agreements().Get(ctx, "agreement-1")
	require.NoError(t, err)

	negs, err := c.Negotiations().Query(ctx, query.All())
	require.NoError(t, err)
	assert.Len(t, negs, 1)
}

func TestNegotiationTerminate(t *testing.T) {
	srv := edctest.NewServer(t)
	c := newClient(t, srv)
	ctx := context.Background()

	started, err := c.Negotiations().Initiate(ctx, contract.NewRequest("http://p/dsp", "p", *policy.New(policy.KindOffer)))
	require.NoError(t, err)

	require.NoError(t, c.Negotiations().Terminate(ctx, started.ID, "changed my mind"))
	state, err := c.Negotiations().State(ctx, started.ID)
	require.NoError(t, err)
	assert.Equal(t, contract.NegotiationTerminated, state)

	reqs := srv.Requests()
	var body map[string]any
	require.NoError(t, json.Unmarshal(reqs[len(reqs)-2].Body, &body))
	assert.Equal(t, "changed my mind", body["reason"])
	assert.Equal(t, started.ID, body["@id"])
}

func TestAwaitHonoursContext(t *testing.T) {
	srv := edctest.NewServer(t)
	c := newClient(t, srv)

	started, err := c.Negotiations().Initiate(context.Background(), contract.NewRequest("http://p/dsp", "p", *policy.New(policy.KindOffer)))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	state, err := c.Negotiations().Await(ctx, started.ID, time.Millisecond)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, contract.NegotiationRequested, state)
}

func TestTransferFlow(t *testing.T) {
	srv := edctest.NewServer(t)
	c := newClient(t, srv)
	ctx := context.Background()

	req := transfer.NewRequest("http://provider/api/dsp", "agreement-1", transfer.TypeHTTPPush).
		WithDestination(asset.HTTPData("http://sink/in"))
	started, err := c.Transfers().Initiate(ctx, req)
	require.NoError(t, err)

	tp, err := c.Transfers().Get(ctx, started.ID)
	require.NoError(t, err)
	assert.Equal(t, transfer.StateRequested, tp.State)
	assert.Equal(t, "agreement-1", tp.ContractID)
	assert.Equal(t, transfer.TypeHTTPPush, tp.TransferType)
	require.NotNil(t, tp.DataDestination)
	assert.Equal(t, asset.TypeHTTPData, tp.DataDestination.Type())
	assert.NotEmpty(t, tp.CorrelationID)

	transfers := c.Transfers()
	steps := []struct {
		action func() error
		want   transfer.State
	}{
		{func() error { return transfers.Suspend(ctx, started.ID, "pause") }, transfer.StateSuspended},
		{func() error { return transfers.Resume(ctx, started.ID) }, transfer.StateStarted},
		{func() error { return transfers.Terminate(ctx, started.ID, "stop") }, transfer.StateTerminated},
		{func() error { return transfers.Deprovision(ctx, started.ID) }, transfer.StateDeprovisioned},
	}
	for _, step := range steps {
		require.NoError(t, step.action())
		state, err := transfers.State(ctx, started.ID)
		require.NoError(t, err)
		assert.Equal(t, step.want, state)
	}

	state, err := transfers.Await(ctx, started.ID, transfer.StateStarted, time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, transfer.StateDeprovisioned, state)

	all, err := transfers.Query(ctx, query.All())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
