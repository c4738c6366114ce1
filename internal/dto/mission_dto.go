package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateMissionRequest struct {
	Title       string      `json:"title" validate:"required,max=200"`
	Description string      `json:"description" validate:"max=2000"`
	AssigneeIds []uuid.UUID `json:"assignee_ids"`
	DueAt       *time.Time  `json:"due_at"`
}

type CreateMissionResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateMissionRequest struct {
	Id          uuid.UUID
	Title       string      `json:"title" validate:"required,max=200"`
	Description string      `json:"description" validate:"max=2000"`
	Status      string      `json:"status" validate:"omitempty,oneof=open active done archived"`
	AssigneeIds []uuid.UUID `json:"assignee_ids"`
	DueAt       *time.Time  `json:"due_at"`
}

type MissionResponse struct {
	Id          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Status      string      `json:"status"`
	AssigneeIds []uuid.UUID `json:"assignee_ids,omitempty"`
	DueAt       *time.Time  `json:"due_at,omitempty"`
	CreatedBy   uuid.UUID   `json:"created_by"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   *time.Time  `json:"updated_at,omitempty"`
}
