package dataspace

// Namespace IRIs used by connector management payloads.
const (
	// EDC is the connector vocabulary, the default @vocab of every payload.
	EDC = "https://w3id.org/edc/v0.0.1/ns/"

	// ODRL is the policy vocabulary.
	ODRL = "http://www.w3.org/ns/odrl/2/"

	// DCAT is the data catalog vocabulary.
	DCAT = "http://www.w3.org/ns/dcat#"

	// DCT is Dublin Core terms.
	DCT = "http://purl.org/dc/terms/"

	// DSPACE is the dataspace protocol vocabulary.
	DSPACE = "https://w3id.org/dspace/v0.8/"

	// FOAF is the friend-of-a-friend vocabulary, used for thumbnails.
	FOAF = "http://xmlns.com/foaf/0.1/"

	RDF  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFS = "http://www.w3.org/2000/01/rdf-schema#"
)

// Prefixes maps the conventional compact prefix of each namespace to its IRI.
var Prefixes = map[string]string{
	"edc":    EDC,
	"odrl":   ODRL,
	"dcat":   DCAT,
	"dct":    DCT,
	"dspace": DSPACE,
	"foaf":   FOAF,
	"rdf":    RDF,
	"rdfs":   RDFS,
}

// Class IRIs for catalog entities.
const (
	ClassCatalog      = DCAT + "Catalog"
	ClassDataset      = DCAT + "Dataset"
	ClassDataService  = DCAT + "DataService"
	ClassDistribution = DCAT + "Distribution"

	// ClassPolicy is the ODRL policy class. Offers and agreements refine it.
	ClassPolicy    = ODRL + "Policy"
	ClassSet       = ODRL + "Set"
	ClassOffer     = ODRL + "Offer"
	ClassAgreement = ODRL + "Agreement"
)

// Compact type tags as they appear in catalog responses.
const (
	TagCatalog     = "dcat:Catalog"
	TagDataset     = "dcat:Dataset"
	TagDataService = "dcat:DataService"
)

// ActionUse is the ODRL "use" action, the default permission action.
const ActionUse = ODRL + "use"
