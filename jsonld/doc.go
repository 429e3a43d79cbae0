// Package jsonld wraps management API payloads in a JSON-LD context envelope.
//
// Every request body sent to a connector carries an "@context" member naming
// the vocabularies its terms belong to, and every response carries one back.
// Domain types never model that member themselves. An Envelope adds it on the
// way out and strips it on the way in:
//
//	body, err := json.Marshal(jsonld.WithDefaultContext(asset))
//
//	asset, err := jsonld.Unwrap[asset.Asset](resp)
//
// Two context tables exist. DefaultContext sets the connector vocabulary as
// @vocab; PolicyContext adds the "odrl" prefix for payloads that embed
// policies. Expand and Compact run the json-gold processor over enveloped
// documents for inspection.
package jsonld
