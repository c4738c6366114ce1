package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateFolderRequest struct {
	Name          string `json:"name" validate:"required,max=120"`
	Description   string `json:"description" validate:"max=500"`
	CoverImageURL string `json:"cover_image_url"`
	Color         string `json:"color"`
	Icon          string `json:"icon"`
}

type CreateFolderResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateFolderRequest struct {
	Id            uuid.UUID
	Name          string `json:"name" validate:"required,max=120"`
	Description   string `json:"description" validate:"max=500"`
	CoverImageURL string `json:"cover_image_url"`
	Color         string `json:"color"`
	Icon          string `json:"icon"`
}

type ReorderFolderRequest struct {
	Id       uuid.UUID
	Position int `json:"position" validate:"min=0"`
}

type FolderResponse struct {
	Id            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	CoverImageURL string     `json:"cover_image_url,omitempty"`
	Color         string     `json:"color,omitempty"`
	Icon          string     `json:"icon,omitempty"`
	Position      int        `json:"position"`
	ReportCount   int64      `json:"report_count"`
	CreatedBy     uuid.UUID  `json:"created_by"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}
