package entity

import (
	"time"

	"github.com/google/uuid"
)

type MissionStatus string

const (
	MissionStatusOpen     MissionStatus = "open"
	MissionStatusActive   MissionStatus = "active"
	MissionStatusDone     MissionStatus = "done"
	MissionStatusArchived MissionStatus = "archived"
)

func (s MissionStatus) Valid() bool {
	switch s {
	case MissionStatusOpen, MissionStatusActive, MissionStatusDone, MissionStatusArchived:
		return true
	}
	return false
}

type Mission struct {
	Id          uuid.UUID
	Title       string
	Description string
	Status      MissionStatus
	AssigneeIds []uuid.UUID
	DueAt       *time.Time
	CreatedBy   uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
