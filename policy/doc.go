// Package policy models ODRL policies and the policy definitions stored by a
// connector.
//
// Policies decode from both the plain vocabulary form a connector emits under
// the default context ("permission", "action") and the prefixed form used in
// catalogs ("odrl:permission", "odrl:action"). They always encode in the plain
// form, so outbound payloads that embed policies are sent under
// jsonld.PolicyContext.
//
//	p := policy.New(policy.KindSet).
//		Permit(policy.NewPermission(policy.Atomic("purpose", "eq", "research")))
package policy
