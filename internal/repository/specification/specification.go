package specification

import "go.mongodb.org/mongo-driver/v2/bson"

// Query is the accumulated shape a specification chain produces: a bson
// filter plus sort/skip/limit options applied by the repository.
type Query struct {
	Filter bson.M
	Sort   bson.D
	Limit  int64
	Skip   int64
}

func NewQuery() *Query {
	return &Query{Filter: bson.M{}}
}

// Specification mutates the query under construction.
type Specification interface {
	Apply(q *Query)
}

// Build folds specs into a single query.
func Build(specs ...Specification) *Query {
	q := NewQuery()
	for _, spec := range specs {
		spec.Apply(q)
	}
	return q
}
