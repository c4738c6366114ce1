package specification

import (
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// ByID filters by document id.
type ByID struct {
	ID uuid.UUID
}

func (s ByID) Apply(q *Query) {
	q.Filter["_id"] = s.ID.String()
}

// ByIDs filters by a list of ids.
type ByIDs struct {
	IDs []uuid.UUID
}

func (s ByIDs) Apply(q *Query) {
	ids := make([]string, len(s.IDs))
	for i, id := range s.IDs {
		ids[i] = id.String()
	}
	q.Filter["_id"] = bson.M{"$in": ids}
}

// OrderBy applies ordering
type OrderBy struct {
	Field string
	Desc  bool
}

func (s OrderBy) Apply(q *Query) {
	direction := 1
	if s.Desc {
		direction = -1
	}
	q.Sort = append(q.Sort, bson.E{Key: s.Field, Value: direction})
}

// NotDeleted filters out soft-deleted documents.
type NotDeleted struct{}

func (s NotDeleted) Apply(q *Query) {
	q.Filter["is_deleted"] = bson.M{"$ne": true}
}

// Pagination
type Pagination struct {
	Limit  int
	Offset int
}

func (s Pagination) Apply(q *Query) {
	q.Limit = int64(s.Limit)
	q.Skip = int64(s.Offset)
}

// FilterBy matches an arbitrary field.
type FilterBy struct {
	Field string
	Value interface{}
}

func (s FilterBy) Apply(q *Query) {
	q.Filter[s.Field] = s.Value
}

func Filter(field string, value interface{}) Specification {
	return FilterBy{Field: field, Value: value}
}
