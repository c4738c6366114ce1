package specification

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestBuildCombinesFilters(t *testing.T) {
	folderId := uuid.New()
	q := Build(
		ByFolderID{FolderID: folderId},
		NotDeleted{},
		OrderBy{Field: "created_at", Desc: true},
		Pagination{Limit: 10, Offset: 20},
	)

	assert.Equal(t, folderId.String(), q.Filter["folder_id"])
	assert.Equal(t, bson.M{"$ne": true}, q.Filter["is_deleted"])
	assert.Equal(t, bson.D{{Key: "created_at", Value: -1}}, q.Sort)
	assert.Equal(t, int64(10), q.Limit)
	assert.Equal(t, int64(20), q.Skip)
}

func TestBuildEmptyProducesOpenQuery(t *testing.T) {
	q := Build()

	assert.Empty(t, q.Filter)
	assert.Empty(t, q.Sort)
	assert.Zero(t, q.Limit)
	assert.Zero(t, q.Skip)
}

func TestOrderByAscending(t *testing.T) {
	q := Build(OrderBy{Field: "position"})

	assert.Equal(t, bson.D{{Key: "position", Value: 1}}, q.Sort)
}

func TestIdsRenderAsStrings(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	q := Build(ByIDs{IDs: []uuid.UUID{a, b}})
	assert.Equal(t, bson.M{"$in": []string{a.String(), b.String()}}, q.Filter["_id"])

	q = Build(ByID{ID: a})
	assert.Equal(t, a.String(), q.Filter["_id"])
}

func TestDomainFilters(t *testing.T) {
	userId := uuid.New()
	cutoff := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		spec  Specification
		field string
		want  interface{}
	}{
		{"discord id", ByDiscordID{DiscordID: "123"}, "discord_id", "123"},
		{"assignee containment", AssignedTo{UserID: userId}, "assignee_ids", userId.String()},
		{"unread flag", UnreadOnly{}, "read", false},
		{"status", ByStatus{Status: "open"}, "status", "open"},
		{"stale cutoff", UpdatedBefore{Cutoff: cutoff}, "updated_at", bson.M{"$lt": cutoff}},
		{"title substring", TitleSearch{Term: "incident"}, "title", bson.M{"$regex": "incident", "$options": "i"}},
		{"title with regex metacharacters", TitleSearch{Term: "a.*b"}, "title", bson.M{"$regex": `a\.\*b`, "$options": "i"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Build(tt.spec)
			assert.Equal(t, tt.want, q.Filter[tt.field])
		})
	}
}

func TestLaterSpecOverridesSameField(t *testing.T) {
	q := Build(
		Filter("status", "open"),
		Filter("status", "done"),
	)

	assert.Equal(t, "done", q.Filter["status"])
}
