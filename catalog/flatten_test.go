package catalog_test

import (
	"encoding/json"
	"testing"

	"github.com/c360studio/edcclient/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeNode(t *testing.T, doc string) catalog.Node {
	t.Helper()
	var n catalog.Node
	require.NoError(t, json.Unmarshal([]byte(doc), &n))
	return n
}

func datasetIDs(ds []catalog.Dataset) []string {
	ids := make([]string, 0, len(ds))
	for _, d := range ds {
		ids = append(ids, d.ID)
	}
	return ids
}

func serviceIDs(ss []catalog.Service) []string {
	ids := make([]string, 0, len(ss))
	for _, s := range ss {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestFlattenDatasetsKeepsDocumentOrder(t *testing.T) {
	root := decodeNode(t, `{
		"@id": "root",
		"@type": "Catalog",
		"dataset": [
			{"@id": "ds-1", "@type": "Dataset"},
			{"@id": "ds-2", "@type": "Dataset"}
		]
	}`)

	assert.Equal(t, []string{"ds-1", "ds-2"}, datasetIDs(root.FlattenDatasets()))
}

func TestFlattenServicesFiltersBelowCatalogBoundary(t *testing.T) {
	inner := `{
		"@id": "cat",
		"@type": "Catalog",
		"service": [
			{"@id": "svc-search", "@type": "DataService", "title": "Search"},
			{"@id": "svc-untitled", "@type": "DataService"}
		]
	}`
	wrapper := decodeNode(t, `{"@id": "wrapper", "@type": "Resource", "dataset": [`+inner+`]}`)
	cat := decodeNode(t, inner)

	fromWrapper := wrapper.FlattenServices()
	require.Len(t, fromWrapper, 1)
	assert.Equal(t, "Search", fromWrapper[0].TitleOr(""))

	assert.Equal(t, []string{"svc-search", "svc-untitled"}, serviceIDs(cat.FlattenServices()))
}

func TestFlattenCombinedNestedDataset(t *testing.T) {
	root := decodeNode(t, `{
		"@id": "outer",
		"@type": "dcat:Catalog",
		"dcat:dataset": {
			"@id": "middle",
			"@type": "dcat:Catalog",
			"dcat:dataset": {"@id": "deep", "@type": "dcat:Dataset"}
		}
	}`)

	entries := root.FlattenDatasetsAndServices()
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].Dataset)
	assert.Nil(t, entries[0].Service)
	assert.Equal(t, "deep", entries[0].ID())
}

func TestUnclassifiedNodePassesThrough(t *testing.T) {
	root := decodeNode(t, `{
		"@id": "group",
		"@type": ["Collection"],
		"dataset": [{"@id": "leaf", "@type": "Dataset"}]
	}`)

	assert.False(t, root.IsCatalog())
	assert.False(t, root.IsDataset())
	assert.Equal(t, []string{"leaf"}, datasetIDs(root.FlattenDatasets()))
}

func TestUnclassifiedLeafYieldsNothing(t *testing.T) {
	leaf := decodeNode(t, `{"@id": "x", "@type": "Thing"}`)

	assert.Empty(t, leaf.FlattenDatasets())
	assert.Empty(t, leaf.FlattenServices())
	assert.Empty(t, leaf.FlattenDatasetsAndServices())
}

func TestDatasetChildrenAreNotWalked(t *testing.T) {
	root := decodeNode(t, `{
		"@id": "parent",
		"@type": "dcat:Dataset",
		"dcat:dataset": [{"@id": "hidden", "@type": "dcat:Dataset"}]
	}`)

	assert.Equal(t, []string{"parent"}, datasetIDs(root.FlattenDatasets()))
	entries := root.FlattenDatasetsAndServices()
	require.Len(t, entries, 1)
	assert.Equal(t, "parent", entries[0].ID())
}

func TestCatalogAndDatasetTagsTogether(t *testing.T) {
	node := decodeNode(t, `{
		"@id": "both",
		"@type": ["dcat:Catalog", "dcat:Dataset"],
		"dcat:service": {"@id": "svc", "@type": "dcat:DataService"}
	}`)

	assert.True(t, node.IsCatalog())
	assert.True(t, node.IsDataset())
	assert.Equal(t, []string{"both"}, datasetIDs(node.FlattenDatasets()))
	assert.Equal(t, []string{"svc"}, serviceIDs(node.FlattenServices()))
	assert.Len(t, node.FlattenDatasetsAndServices(), 1)
}

func TestCombinedPutsServicesBeforeChildren(t *testing.T) {
	root := decodeNode(t, `{
		"@id": "root",
		"@type": "Catalog",
		"dataset": [
			{"@id": "ds-a", "@type": "Dataset"},
			{
				"@id": "sub",
				"@type": "Catalog",
				"service": [{"@id": "svc-sub", "@type": "DataService", "title": "Sub"}],
				"dataset": {"@id": "ds-b", "@type": "Dataset"}
			}
		],
		"service": [
			{"@id": "svc-titled", "@type": "DataService", "title": "Main"},
			{"@id": "svc-bare", "@type": "DataService"}
		]
	}`)

	var ids []string
	for _, e := range root.FlattenDatasetsAndServices() {
		ids = append(ids, e.ID())
	}
	assert.Equal(t, []string{"svc-titled", "ds-a", "svc-sub", "ds-b"}, ids)
}

func TestFullIRITypeTags(t *testing.T) {
	root := decodeNode(t, `{
		"@id": "root",
		"@type": "http://www.w3.org/ns/dcat#Catalog",
		"dataset": {"@id": "ds", "@type": "http://www.w3.org/ns/dcat#Dataset"}
	}`)

	assert.True(t, root.IsCatalog())
	assert.Equal(t, []string{"ds"}, datasetIDs(root.FlattenDatasets()))
}

func TestFlattenDoesNotAliasServices(t *testing.T) {
	root := decodeNode(t, `{
		"@id": "root",
		"@type": "Catalog",
		"service": {"@id": "svc", "@type": "DataService"}
	}`)

	services := root.FlattenServices()
	services[0].ID = "changed"
	assert.Equal(t, "svc", root.Services[0].ID)
}
