package entity

import (
	"time"

	"github.com/google/uuid"
)

type Folder struct {
	Id            uuid.UUID
	Name          string
	Description   string
	CoverImageURL string
	Color         string
	Icon          string
	Position      int
	CreatedBy     uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
