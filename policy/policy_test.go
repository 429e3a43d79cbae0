package policy_test

import (
	"encoding/json"
	"testing"

	"github.com/c360studio/edcclient/jsonld"
	"github.com/c360studio/edcclient/policy"
	"github.com/c360studio/edcclient/properties"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyMarshal(t *testing.T) {
	p := policy.New(policy.KindSet).
		Permit(policy.NewPermission(policy.Atomic("purpose", "eq", "research")))

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"@type": "Set",
		"permission": [{
			"action": {"@id": "http://www.w3.org/ns/odrl/2/use"},
			"constraint": [{"leftOperand": "purpose", "operator": "eq", "rightOperand": "research"}]
		}],
		"obligation": [],
		"prohibition": []
	}`, string(data))
}

func TestZeroKindEncodesAsSet(t *testing.T) {
	data, err := json.Marshal(policy.Policy{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"@type":"Set","permission":[],"obligation":[],"prohibition":[]}`, string(data))
}

func TestPolicyDecodeCatalogOffer(t *testing.T) {
	offer := `{
		"@id": "offer-1",
		"@type": "odrl:Offer",
		"odrl:permission": {
			"odrl:action": {"@id": "odrl:use"},
			"odrl:constraint": {
				"odrl:or": [
					{"odrl:leftOperand": {"@id": "region"}, "odrl:operator": {"@id": "odrl:eq"}, "odrl:rightOperand": "eu"},
					{"odrl:leftOperand": {"@id": "region"}, "odrl:operator": {"@id": "odrl:eq"}, "odrl:rightOperand": "us"}
				]
			}
		},
		"odrl:prohibition": [],
		"odrl:obligation": [],
		"odrl:assigner": "provider",
		"odrl:target": {"@id": "asset-1"}
	}`

	var p policy.Policy
	require.NoError(t, json.Unmarshal([]byte(offer), &p))

	assert.Equal(t, "offer-1", p.ID)
	assert.Equal(t, policy.KindOffer, p.Kind)
	assert.Equal(t, "provider", p.Assigner)
	require.NotNil(t, p.Target)
	assert.Equal(t, policy.IRI("asset-1"), *p.Target)
	assert.Empty(t, p.Obligations)
	assert.Empty(t, p.Prohibitions)

	require.Len(t, p.Permissions, 1)
	perm := p.Permissions[0]
	assert.Equal(t, policy.IRI("odrl:use"), perm.Action)
	require.Len(t, perm.Constraints, 1)

	or := perm.Constraints[0].Logical
	require.NotNil(t, or)
	assert.Equal(t, policy.LogicOr, or.Logic)
	require.Len(t, or.Constraints, 2)
	atomic := or.Constraints[1].Atomic
	require.NotNil(t, atomic)
	assert.Equal(t, policy.IRI("region"), atomic.LeftOperand)
	assert.True(t, atomic.RightOperand.Equal(properties.String("us")))
}

func TestPolicyRoundTrip(t *testing.T) {
	p := policy.New(policy.KindAgreement).
		WithParties("provider", "consumer").
		WithTarget(policy.Term("asset-7")).
		Permit(policy.NewPermission(policy.And(
			policy.Atomic("count", "lteq", 5),
			policy.AtomicWith(policy.IRI("spatial"), policy.IRI("odrl:isAnyOf"), []string{"de", "fr"}),
		))).
		Prohibit(policy.NewRule(policy.Term("distribute"))).
		Oblige(policy.NewRule(policy.Term("delete"), policy.Xone(policy.Atomic("elapsed", "gt", 30))))
	p.ID = "agreement-1"

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var back policy.Policy
	require.NoError(t, json.Unmarshal(data, &back))

	again, err := json.Marshal(back)
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(again))
	assert.Equal(t, "consumer", back.Assignee)
	assert.Equal(t, policy.Term("asset-7"), *back.Target)
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		input   string
		want    policy.Kind
		wantErr bool
	}{
		{"Set", policy.KindSet, false},
		{"odrl:Offer", policy.KindOffer, false},
		{"http://www.w3.org/ns/odrl/2/Agreement", policy.KindAgreement, false},
		{"Privacy", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := policy.ParseKind(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, policy.ErrUnknownKind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"rule without action", `{"permission":[{"constraint":[]}]}`, policy.ErrMissingAction},
		{"unknown type", `{"@type":"Ticket"}`, policy.ErrUnknownKind},
		{"bad constraint", `{"permission":{"action":"use","constraint":{"leftOperand":"a"}}}`, policy.ErrInvalidConstraint},
		{"bad ref", `{"permission":{"action":{"name":"use"}}}`, policy.ErrInvalidRef},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p policy.Policy
			err := json.Unmarshal([]byte(tt.input), &p)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRefForms(t *testing.T) {
	var refs []policy.Ref
	require.NoError(t, json.Unmarshal([]byte(`["use", {"@id": "odrl:use"}]`), &refs))
	assert.Equal(t, []policy.Ref{policy.Term("use"), policy.IRI("odrl:use")}, refs)

	data, err := json.Marshal(refs)
	require.NoError(t, err)
	assert.JSONEq(t, `["use", {"@id": "odrl:use"}]`, string(data))
}

func TestDefinitionUnderPolicyContext(t *testing.T) {
	def := policy.Define("policy-1", policy.New(policy.KindSet).Permit(policy.NewPermission())).
		WithPrivateProperty("owner", "team-a")

	data, err := json.Marshal(jsonld.WithPolicyContext(def))
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc["@context"], "odrl")
	assert.Equal(t, "policy-1", doc["@id"])
	assert.Equal(t, map[string]any{"owner": "team-a"}, doc["privateProperties"])

	stored, err := jsonld.Unwrap[policy.Definition](data)
	require.NoError(t, err)
	owner, ok, err := properties.Get[string](&stored.PrivateProperties, "owner")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "team-a", owner)
	assert.Equal(t, policy.DefaultAction(), stored.Policy.Permissions[0].Action)
}

func TestKindProperties(t *testing.T) {
	for _, raw := range []string{"Offer", "odrl:Offer", "http://www.w3.org/ns/odrl/2/Offer"} {
		props := properties.New().Set("kind", raw)
		kind, ok, err := properties.Get[policy.Kind](props, "kind")
		require.NoError(t, err, raw)
		require.True(t, ok)
		assert.Equal(t, policy.KindOffer, kind, raw)
	}

	props := properties.New().Set("kind", policy.KindAgreement).Set("empty", policy.Kind(""))
	stored, _ := props.Raw("kind")
	s, _ := stored.AsString()
	assert.Equal(t, "Agreement", s)
	empty, _, err := properties.Get[policy.Kind](props, "empty")
	require.NoError(t, err)
	assert.Equal(t, policy.KindSet, empty)

	props.Set("bad", "odrl:Duty").Set("number", 3)
	_, _, err = properties.Get[policy.Kind](props, "bad")
	require.Error(t, err)
	assert.True(t, properties.IsConversionError(err))
	assert.ErrorIs(t, err, policy.ErrUnknownKind)
	assert.Contains(t, err.Error(), `property "bad"`)

	_, _, err = properties.Get[policy.Kind](props, "number")
	assert.True(t, properties.IsConversionError(err))
}
