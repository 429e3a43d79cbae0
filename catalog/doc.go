// Package catalog decodes connector catalogs and flattens them into lists of
// datasets and data services.
//
// A catalog response is a tree. Its "dataset" members may be datasets or
// nested catalogs, each of which may list more datasets and data services. A
// Node classifies itself by its type tags and offers three projections:
//
//   - FlattenDatasets: every dataset in the tree. A dataset's own children are
//     not visited.
//   - FlattenServices: the services of the nearest catalogs. Services reached
//     through a non-catalog node are kept only when they have a title.
//   - FlattenDatasetsAndServices: datasets plus titled services, in document
//     order.
//
// All three walk the tree depth-first in document order and never fail.
// Malformed documents are rejected when they are decoded instead.
package catalog
