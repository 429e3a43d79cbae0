package jsonld_test

import (
	"encoding/json"
	"testing"

	"github.com/c360studio/edcclient/jsonld"
	"github.com/c360studio/edcclient/properties"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type secret struct {
	ID    string `json:"@id"`
	Value string `json:"value"`
}

func TestEnvelopeMarshal(t *testing.T) {
	tests := []struct {
		name string
		env  json.Marshaler
		want string
	}{
		{
			name: "default context",
			env:  jsonld.WithDefaultContext(secret{ID: "s1", Value: "hunter2"}),
			want: `{"@context":{"@vocab":"https://w3id.org/edc/v0.0.1/ns/"},"@id":"s1","value":"hunter2"}`,
		},
		{
			name: "policy context",
			env:  jsonld.WithPolicyContext(secret{ID: "s1", Value: "hunter2"}),
			want: `{"@context":{"@vocab":"https://w3id.org/edc/v0.0.1/ns/","odrl":"http://www.w3.org/ns/odrl/2/"},"@id":"s1","value":"hunter2"}`,
		},
		{
			name: "nil context falls back to default",
			env:  jsonld.Envelope[secret]{Inner: secret{ID: "s1"}},
			want: `{"@context":{"@vocab":"https://w3id.org/edc/v0.0.1/ns/"},"@id":"s1","value":""}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.env)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestEnvelopeContextComesFirst(t *testing.T) {
	props := properties.New().Set("zeta", 1).Set("alpha", 2)

	data, err := json.Marshal(jsonld.WithDefaultContext(props))
	require.NoError(t, err)

	var out properties.Properties
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, []string{"@context", "zeta", "alpha"}, out.Keys())
}

func TestEnvelopeReplacesInnerContext(t *testing.T) {
	props := properties.New().Set("@context", "https://example.com/ctx").Set("name", "x")

	data, err := json.Marshal(jsonld.WithPolicyContext(props))
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, map[string]any{
		"@vocab": "https://w3id.org/edc/v0.0.1/ns/",
		"odrl":   "http://www.w3.org/ns/odrl/2/",
	}, out["@context"])
}

func TestEnvelopeRejectsNonObject(t *testing.T) {
	_, err := json.Marshal(jsonld.WithDefaultContext([]string{"a"}))
	require.Error(t, err)
	assert.ErrorIs(t, err, jsonld.ErrNotObject)

	_, err = jsonld.Unwrap[secret]([]byte(`"just a string"`))
	assert.ErrorIs(t, err, jsonld.ErrNotObject)
}

func TestRoundTrip(t *testing.T) {
	contexts := map[string]jsonld.Context{
		"default": jsonld.DefaultContext(),
		"policy":  jsonld.PolicyContext(),
	}

	for name, ctx := range contexts {
		t.Run(name, func(t *testing.T) {
			in := secret{ID: "s-42", Value: "v"}
			data, err := json.Marshal(jsonld.Wrap(ctx, in))
			require.NoError(t, err)

			var env jsonld.Envelope[secret]
			require.NoError(t, json.Unmarshal(data, &env))
			assert.Equal(t, in, env.Inner)
			assert.Equal(t, ctx, env.Context)
		})
	}
}

func TestUnwrapStripsContext(t *testing.T) {
	doc := `{"@context":{"@vocab":"https://w3id.org/edc/v0.0.1/ns/"},"@id":"a1","properties":{"name":"x"}}`

	props, err := jsonld.Unwrap[*properties.Properties]([]byte(doc))
	require.NoError(t, err)
	assert.False(t, props.Has("@context"))
	assert.Equal(t, []string{"@id", "properties"}, props.Keys())
}

func TestUnwrapKeepsUnstructuredContextOut(t *testing.T) {
	doc := `{"@context":["https://w3id.org/edc/connector/management/v0.0.1"],"@id":"s1","value":"v"}`

	var env jsonld.Envelope[secret]
	require.NoError(t, json.Unmarshal([]byte(doc), &env))
	assert.Nil(t, env.Context)
	assert.Equal(t, secret{ID: "s1", Value: "v"}, env.Inner)
}

func TestUnwrapAll(t *testing.T) {
	doc := `[
		{"@context":{"@vocab":"https://w3id.org/edc/v0.0.1/ns/"},"@id":"s1","value":"a"},
		{"@context":{"@vocab":"https://w3id.org/edc/v0.0.1/ns/"},"@id":"s2","value":"b"}
	]`

	items, err := jsonld.UnwrapAll[secret]([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, []secret{{ID: "s1", Value: "a"}, {ID: "s2", Value: "b"}}, items)

	items, err = jsonld.UnwrapAll[secret]([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestContextWith(t *testing.T) {
	base := jsonld.DefaultContext()
	extended := base.With("dcat", "http://www.w3.org/ns/dcat#")

	assert.Len(t, base, 1)
	assert.Equal(t, "http://www.w3.org/ns/dcat#", extended["dcat"])
	assert.Equal(t, base["@vocab"], extended["@vocab"])
}
