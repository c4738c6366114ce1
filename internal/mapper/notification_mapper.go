package mapper

import (
	"ops-collab-be/internal/entity"
	"ops-collab-be/internal/model"

	"github.com/google/uuid"
)

type NotificationMapper struct{}

func NewNotificationMapper() *NotificationMapper {
	return &NotificationMapper{}
}

func (m *NotificationMapper) ToEntity(n *model.Notification) *entity.Notification {
	if n == nil {
		return nil
	}

	id, _ := uuid.Parse(n.Id)
	userId, _ := uuid.Parse(n.UserId)

	return &entity.Notification{
		Id:        id,
		UserId:    userId,
		Title:     n.Title,
		Body:      n.Body,
		Color:     n.Color,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

func (m *NotificationMapper) ToModel(n *entity.Notification) *model.Notification {
	if n == nil {
		return nil
	}

	return &model.Notification{
		Id:        n.Id.String(),
		UserId:    n.UserId.String(),
		Title:     n.Title,
		Body:      n.Body,
		Color:     n.Color,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

func (m *NotificationMapper) ToEntities(notifications []*model.Notification) []*entity.Notification {
	entities := make([]*entity.Notification, len(notifications))
	for i, n := range notifications {
		entities[i] = m.ToEntity(n)
	}
	return entities
}
