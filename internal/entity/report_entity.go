package entity

import (
	"time"

	"github.com/google/uuid"
)

type Importance string

const (
	ImportanceLow      Importance = "low"
	ImportanceNormal   Importance = "normal"
	ImportanceHigh     Importance = "high"
	ImportanceCritical Importance = "critical"
)

func (i Importance) Valid() bool {
	switch i {
	case ImportanceLow, ImportanceNormal, ImportanceHigh, ImportanceCritical:
		return true
	}
	return false
}

// Report is a published document. Content holds the encoded block document
// (see pkg/blockdoc); it is normalized through Decode/Encode on every write.
type Report struct {
	Id         uuid.UUID
	Title      string
	Content    string
	Importance Importance
	Tags       []string
	Color      string
	Icon       string
	FolderId   uuid.UUID
	AuthorId   uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	DeletedAt  *time.Time
	IsDeleted  bool
}

// Draft mirrors Report minus publication metadata. A draft either gets
// promoted into a report or swept by the janitor after 30 days idle.
type Draft struct {
	Id         uuid.UUID
	Title      string
	Content    string
	Importance Importance
	Tags       []string
	Color      string
	Icon       string
	FolderId   uuid.UUID
	AuthorId   uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
