package jsonld_test

import (
	"encoding/json"
	"testing"

	"github.com/c360studio/edcclient/jsonld"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandResolvesVocab(t *testing.T) {
	payload := map[string]any{"@id": "urn:asset:1", "name": "weather"}
	data, err := json.Marshal(jsonld.WithDefaultContext(payload))
	require.NoError(t, err)

	expanded, err := jsonld.Expand(data)
	require.NoError(t, err)
	require.Len(t, expanded, 1)

	node, ok := expanded[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "urn:asset:1", node["@id"])
	assert.Equal(t,
		[]any{map[string]any{"@value": "weather"}},
		node["https://w3id.org/edc/v0.0.1/ns/name"])
}

func TestExpandResolvesPolicyPrefix(t *testing.T) {
	payload := map[string]any{
		"@id":             "urn:policy:1",
		"odrl:permission": map[string]any{"@id": "urn:permission:1"},
	}
	data, err := json.Marshal(jsonld.WithPolicyContext(payload))
	require.NoError(t, err)

	expanded, err := jsonld.Expand(data)
	require.NoError(t, err)
	require.Len(t, expanded, 1)

	node := expanded[0].(map[string]any)
	assert.Contains(t, node, "http://www.w3.org/ns/odrl/2/permission")
}

func TestExpandRejectsInvalidJSON(t *testing.T) {
	_, err := jsonld.Expand([]byte(`{not json`))
	assert.Error(t, err)
}

func TestCompactNormalizesPrefixes(t *testing.T) {
	doc := `{
		"@id": "urn:policy:1",
		"http://www.w3.org/ns/odrl/2/permission": {"@id": "urn:permission:1"},
		"https://w3id.org/edc/v0.0.1/ns/name": "offer"
	}`

	compacted, err := jsonld.Compact([]byte(doc), jsonld.PolicyContext())
	require.NoError(t, err)
	assert.Equal(t, "urn:policy:1", compacted["@id"])
	assert.Equal(t, "offer", compacted["name"])
	assert.Equal(t, map[string]any{"@id": "urn:permission:1"}, compacted["odrl:permission"])
}
