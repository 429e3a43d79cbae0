// Package query builds the query specs accepted by management API list endpoints.
package query

import "github.com/c360studio/edcclient/properties"

// SortOrder is the direction of a sorted query.
type SortOrder string

const (
	Ascending  SortOrder = "ASC"
	Descending SortOrder = "DESC"
)

// DefaultLimit matches the page size connectors apply when none is given.
const DefaultLimit = 50

// Query selects a page of resources. The zero Query asks for the first page
// with the connector's defaults.
type Query struct {
	Offset           int         `json:"offset"`
	Limit            int         `json:"limit,omitempty"`
	SortOrder        SortOrder   `json:"sortOrder,omitempty"`
	SortField        string      `json:"sortField,omitempty"`
	FilterExpression []Criterion `json:"filterExpression,omitempty"`
}

// All returns a query for the first DefaultLimit resources in ascending order.
func All() Query {
	return Query{Limit: DefaultLimit, SortOrder: Ascending}
}

// Where returns a copy of q with an additional filter criterion.
func (q Query) Where(left, operator string, right any) Query {
	filters := make([]Criterion, len(q.FilterExpression), len(q.FilterExpression)+1)
	copy(filters, q.FilterExpression)
	q.FilterExpression = append(filters, NewCriterion(left, operator, right))
	return q
}

// Page returns a copy of q restricted to limit results starting at offset.
func (q Query) Page(offset, limit int) Query {
	q.Offset = offset
	q.Limit = limit
	return q
}

// SortBy returns a copy of q sorted on field.
func (q Query) SortBy(field string, order SortOrder) Query {
	q.SortField = field
	q.SortOrder = order
	return q
}

// Criterion is a single filter. The right operand may be any JSON value; a
// list is used with the "in" operator.
type Criterion struct {
	OperandLeft  string           `json:"operandLeft"`
	Operator     string           `json:"operator"`
	OperandRight properties.Value `json:"operandRight"`
}

// NewCriterion returns the criterion "left operator right".
func NewCriterion(left, operator string, right any) Criterion {
	return Criterion{
		OperandLeft:  left,
		Operator:     operator,
		OperandRight: properties.ValueOf(right),
	}
}
