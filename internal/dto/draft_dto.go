package dto

import (
	"time"

	"github.com/google/uuid"
)

type SaveDraftRequest struct {
	Title      string    `json:"title" validate:"max=200"`
	Content    string    `json:"content"`
	Importance string    `json:"importance" validate:"omitempty,oneof=low normal high critical"`
	Tags       []string  `json:"tags" validate:"max=16,dive,max=40"`
	Color      string    `json:"color"`
	Icon       string    `json:"icon"`
	FolderId   uuid.UUID `json:"folder_id"`
}

type SaveDraftResponse struct {
	Id        uuid.UUID `json:"id"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UpdateDraftRequest struct {
	Id         uuid.UUID
	Title      string    `json:"title" validate:"max=200"`
	Content    string    `json:"content"`
	Importance string    `json:"importance" validate:"omitempty,oneof=low normal high critical"`
	Tags       []string  `json:"tags" validate:"max=16,dive,max=40"`
	Color      string    `json:"color"`
	Icon       string    `json:"icon"`
	FolderId   uuid.UUID `json:"folder_id"`
}

type DraftResponse struct {
	Id         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Importance string    `json:"importance"`
	Tags       []string  `json:"tags,omitempty"`
	Color      string    `json:"color,omitempty"`
	Icon       string    `json:"icon,omitempty"`
	FolderId   uuid.UUID `json:"folder_id,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type PromoteDraftRequest struct {
	Id       uuid.UUID
	FolderId uuid.UUID `json:"folder_id" validate:"required"`
}

type PromoteDraftResponse struct {
	ReportId uuid.UUID `json:"report_id"`
}
