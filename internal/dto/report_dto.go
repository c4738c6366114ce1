package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateReportRequest struct {
	Title      string    `json:"title" validate:"required,max=200"`
	Content    string    `json:"content"`
	Importance string    `json:"importance" validate:"omitempty,oneof=low normal high critical"`
	Tags       []string  `json:"tags" validate:"max=16,dive,max=40"`
	Color      string    `json:"color"`
	Icon       string    `json:"icon"`
	FolderId   uuid.UUID `json:"folder_id" validate:"required"`
}

type CreateReportResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateReportRequest struct {
	Id         uuid.UUID
	Title      string    `json:"title" validate:"required,max=200"`
	Content    string    `json:"content"`
	Importance string    `json:"importance" validate:"omitempty,oneof=low normal high critical"`
	Tags       []string  `json:"tags" validate:"max=16,dive,max=40"`
	Color      string    `json:"color"`
	Icon       string    `json:"icon"`
	FolderId   uuid.UUID `json:"folder_id" validate:"required"`
}

type ReportResponse struct {
	Id         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Importance string     `json:"importance"`
	Tags       []string   `json:"tags,omitempty"`
	Color      string     `json:"color,omitempty"`
	Icon       string     `json:"icon,omitempty"`
	FolderId   uuid.UUID  `json:"folder_id"`
	AuthorId   uuid.UUID  `json:"author_id"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

// ReportListItem omits the content body to keep folder listings light.
type ReportListItem struct {
	Id         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	Importance string     `json:"importance"`
	Tags       []string   `json:"tags,omitempty"`
	Color      string     `json:"color,omitempty"`
	Icon       string     `json:"icon,omitempty"`
	FolderId   uuid.UUID  `json:"folder_id"`
	AuthorId   uuid.UUID  `json:"author_id"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

type RenderedReportResponse struct {
	Id    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Html  string    `json:"html"`
}
