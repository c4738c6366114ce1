package specification

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type ByDiscordID struct {
	DiscordID string
}

func (s ByDiscordID) Apply(q *Query) {
	q.Filter["discord_id"] = s.DiscordID
}

type ByFolderID struct {
	FolderID uuid.UUID
}

func (s ByFolderID) Apply(q *Query) {
	q.Filter["folder_id"] = s.FolderID.String()
}

type ByAuthorID struct {
	AuthorID uuid.UUID
}

func (s ByAuthorID) Apply(q *Query) {
	q.Filter["author_id"] = s.AuthorID.String()
}

type ByUserID struct {
	UserID uuid.UUID
}

func (s ByUserID) Apply(q *Query) {
	q.Filter["user_id"] = s.UserID.String()
}

type ByTag struct {
	Tag string
}

func (s ByTag) Apply(q *Query) {
	q.Filter["tags"] = s.Tag
}

type ByImportance struct {
	Importance string
}

func (s ByImportance) Apply(q *Query) {
	q.Filter["importance"] = s.Importance
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(q *Query) {
	q.Filter["status"] = s.Status
}

type AssignedTo struct {
	UserID uuid.UUID
}

func (s AssignedTo) Apply(q *Query) {
	q.Filter["assignee_ids"] = s.UserID.String()
}

type UnreadOnly struct{}

func (s UnreadOnly) Apply(q *Query) {
	q.Filter["read"] = false
}

// UpdatedBefore selects documents whose update stamp is older than the
// cutoff. The draft janitor uses it.
type UpdatedBefore struct {
	Cutoff time.Time
}

func (s UpdatedBefore) Apply(q *Query) {
	q.Filter["updated_at"] = bson.M{"$lt": s.Cutoff}
}

// TitleSearch does a case-insensitive substring match on the title.
type TitleSearch struct {
	Term string
}

func (s TitleSearch) Apply(q *Query) {
	// The term is user input, match it literally.
	q.Filter["title"] = bson.M{"$regex": regexp.QuoteMeta(s.Term), "$options": "i"}
}
