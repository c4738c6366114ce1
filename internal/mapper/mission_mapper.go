package mapper

import (
	"ops-collab-be/internal/entity"
	"ops-collab-be/internal/model"

	"github.com/google/uuid"
)

type MissionMapper struct{}

func NewMissionMapper() *MissionMapper {
	return &MissionMapper{}
}

func (m *MissionMapper) ToEntity(ms *model.Mission) *entity.Mission {
	if ms == nil {
		return nil
	}

	id, _ := uuid.Parse(ms.Id)
	createdBy, _ := uuid.Parse(ms.CreatedBy)

	assignees := make([]uuid.UUID, 0, len(ms.AssigneeIds))
	for _, raw := range ms.AssigneeIds {
		if uid, err := uuid.Parse(raw); err == nil {
			assignees = append(assignees, uid)
		}
	}

	return &entity.Mission{
		Id:          id,
		Title:       ms.Title,
		Description: ms.Description,
		Status:      entity.MissionStatus(ms.Status),
		AssigneeIds: assignees,
		DueAt:       ms.DueAt,
		CreatedBy:   createdBy,
		CreatedAt:   ms.CreatedAt,
		UpdatedAt:   ms.UpdatedAt,
	}
}

func (m *MissionMapper) ToModel(ms *entity.Mission) *model.Mission {
	if ms == nil {
		return nil
	}

	assignees := make([]string, len(ms.AssigneeIds))
	for i, uid := range ms.AssigneeIds {
		assignees[i] = uid.String()
	}

	return &model.Mission{
		Id:          ms.Id.String(),
		Title:       ms.Title,
		Description: ms.Description,
		Status:      string(ms.Status),
		AssigneeIds: assignees,
		DueAt:       ms.DueAt,
		CreatedBy:   ms.CreatedBy.String(),
		CreatedAt:   ms.CreatedAt,
		UpdatedAt:   ms.UpdatedAt,
	}
}

func (m *MissionMapper) ToEntities(missions []*model.Mission) []*entity.Mission {
	entities := make([]*entity.Mission, len(missions))
	for i, ms := range missions {
		entities[i] = m.ToEntity(ms)
	}
	return entities
}
