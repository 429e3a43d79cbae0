package transfer_test

import (
	"encoding/json"
	"testing"

	"github.com/c360studio/edcclient/asset"
	"github.com/c360studio/edcclient/edc"
	"github.com/c360studio/edcclient/jsonld"
	"github.com/c360studio/edcclient/properties"
	"github.com/c360studio/edcclient/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestPayload(t *testing.T) {
	req := transfer.NewRequest("http://provider/api/dsp", "agreement-1", transfer.TypeHTTPPush).
		WithDestination(asset.HTTPData("http://sink/data"))

	data, err := json.Marshal(jsonld.WithDefaultContext(req))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"@context": {"@vocab": "https://w3id.org/edc/v0.0.1/ns/"},
		"counterPartyAddress": "http://provider/api/dsp",
		"contractId": "agreement-1",
		"transferType": "HttpData-PUSH",
		"protocol": "dataspace-protocol-http",
		"dataDestination": {"type": "HttpData", "baseUrl": "http://sink/data"},
		"callbackAddresses": []
	}`, string(data))
}

func TestPullRequestOmitsDestination(t *testing.T) {
	req := transfer.NewRequest("http://provider/api/dsp", "agreement-1", transfer.TypeHTTPPull).
		WithCallback(edc.NewCallbackAddress("http://me/cb", "transfer.process.started"))

	data, err := json.Marshal(req)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.NotContains(t, doc, "dataDestination")
	assert.Len(t, doc["callbackAddresses"], 1)
}

func TestProcessDecode(t *testing.T) {
	resp := `{
		"@context": {"@vocab": "https://w3id.org/edc/v0.0.1/ns/"},
		"@type": "TransferProcess",
		"@id": "tp-1",
		"correlationId": "corr-1",
		"state": "STARTED",
		"stateTimestamp": 1700000000000,
		"type": "PROVIDER",
		"assetId": "asset-1",
		"contractId": "agreement-1",
		"transferType": "HttpData-PULL",
		"callbackAddresses": {"transactional": false, "uri": "http://me/cb", "events": "transfer.process"},
		"privateProperties": {"attempt": 2}
	}`

	p, err := jsonld.Unwrap[transfer.Process]([]byte(resp))
	require.NoError(t, err)
	assert.Equal(t, "tp-1", p.ID)
	assert.Equal(t, transfer.StateStarted, p.State)
	assert.False(t, p.State.Done())
	assert.Equal(t, edc.RoleProvider, p.Role)
	assert.Nil(t, p.DataDestination)
	require.Len(t, p.CallbackAddresses, 1)
	assert.Equal(t, []string{"transfer.process"}, []string(p.CallbackAddresses[0].Events))

	attempt, ok, err := transfer.PrivateProperty[int](&p, "attempt")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, attempt)
}

func TestProcessRejectsUnknownRole(t *testing.T) {
	_, err := jsonld.Unwrap[transfer.Process]([]byte(`{"@id": "tp-1", "state": "STARTED", "type": "BROKER"}`))
	assert.Error(t, err)
}

func TestStates(t *testing.T) {
	s, err := jsonld.Unwrap[transfer.StateResponse]([]byte(`{"state": "DEPROVISIONING_REQUESTED"}`))
	require.NoError(t, err)
	assert.Equal(t, transfer.StateDeprovisioningRequested, s.State)

	s, err = jsonld.Unwrap[transfer.StateResponse]([]byte(`{"state": "RETRYING"}`))
	require.NoError(t, err)
	assert.Equal(t, transfer.State("RETRYING"), s.State)

	assert.True(t, transfer.StateCompleted.Done())
	assert.True(t, transfer.StateTerminated.Done())
	assert.False(t, transfer.StateSuspended.Done())
}

func TestStateProperties(t *testing.T) {
	props := properties.New().Set("state", transfer.StateStarted).Set("bad", 1)

	state, ok, err := properties.Get[transfer.State](props, "state")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, transfer.StateStarted, state)

	_, _, err = properties.Get[transfer.State](props, "bad")
	assert.True(t, properties.IsConversionError(err))
}
