package dataspace

import "github.com/c360studio/semstreams/vocabulary"

// Descriptive predicates shared by catalogs, datasets and data services.
const (
	// ResourceTitle is the human readable title.
	ResourceTitle = "dataspace.resource.title"

	// ResourceComment is a free text description.
	ResourceComment = "dataspace.resource.comment"

	// ResourceKeyword is a search keyword. Resources may carry several.
	ResourceKeyword = "dataspace.resource.keyword"

	// ResourceVersion is the semantic version of the resource.
	ResourceVersion = "dataspace.resource.version"

	// ResourceCreator names the publisher of the resource.
	ResourceCreator = "dataspace.resource.creator"

	// ResourceThumbnail is an image IRI.
	ResourceThumbnail = "dataspace.resource.thumbnail"

	// ResourceType is a Dublin Core type tag.
	ResourceType = "dataspace.resource.dcterms_type"

	// ResourceClass asserts an RDF class of the resource.
	ResourceClass = "dataspace.resource.class"
)

// Dataset predicates.
const (
	// DatasetPolicy links a dataset to an offered policy.
	DatasetPolicy = "dataspace.dataset.policy"
)

// Catalog structure predicates.
const (
	CatalogDataset     = "dataspace.catalog.dataset"
	CatalogService     = "dataspace.catalog.service"
	CatalogParticipant = "dataspace.catalog.participant"
)

// Data service predicates.
const (
	ServiceEndpointURL         = "dataspace.service.endpoint_url"
	ServiceEndpointDescription = "dataspace.service.endpoint_description"
)

func init() {
	vocabulary.Register(ResourceTitle,
		vocabulary.WithDescription("Human readable title"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(DCT+"title"))

	vocabulary.Register(ResourceComment,
		vocabulary.WithDescription("Free text description"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(RDFS+"comment"))

	vocabulary.Register(ResourceKeyword,
		vocabulary.WithDescription("Search keywords"),
		vocabulary.WithDataType("array"),
		vocabulary.WithIRI(DCAT+"keyword"))

	vocabulary.Register(ResourceVersion,
		vocabulary.WithDescription("Semantic version of the resource"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(DCAT+"version"))

	vocabulary.Register(ResourceCreator,
		vocabulary.WithDescription("Name of the publisher"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(DCT+"creator"))

	vocabulary.Register(ResourceThumbnail,
		vocabulary.WithDescription("Thumbnail image IRI"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(FOAF+"thumbnail"))

	vocabulary.Register(ResourceType,
		vocabulary.WithDescription("Dublin Core type tags"),
		vocabulary.WithDataType("array"),
		vocabulary.WithIRI(DCT+"type"))

	vocabulary.Register(ResourceClass,
		vocabulary.WithDescription("RDF class of the resource"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(RDF+"type"))

	vocabulary.Register(DatasetPolicy,
		vocabulary.WithDescription("Policy offered for the dataset"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(ODRL+"hasPolicy"))

	vocabulary.Register(CatalogDataset,
		vocabulary.WithDescription("Dataset or nested catalog listed by a catalog"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(DCAT+"dataset"))

	vocabulary.Register(CatalogService,
		vocabulary.WithDescription("Data service offered by a catalog"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(DCAT+"service"))

	vocabulary.Register(CatalogParticipant,
		vocabulary.WithDescription("Participant identifier of the catalog owner"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(DSPACE+"participantId"))

	vocabulary.Register(ServiceEndpointURL,
		vocabulary.WithDescription("Endpoint URL of a data service"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(DCAT+"endpointURL"))

	vocabulary.Register(ServiceEndpointDescription,
		vocabulary.WithDescription("Description of a data service endpoint"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(DCAT+"endpointDescription"))
}
