// Package dataspace provides namespace IRIs and vocabulary predicates for
// dataspace catalog entities.
//
// Catalogs published by a connector are DCAT documents with ODRL policies and
// Dublin Core metadata. The namespaces here are the ones the management API
// uses on the wire; the predicates map flattened catalog records onto their
// standard IRIs for RDF export.
//
// Import this package to auto-register predicates:
//
//	import _ "github.com/c360studio/edcclient/vocabulary/dataspace"
package dataspace
