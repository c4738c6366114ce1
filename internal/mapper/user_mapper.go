package mapper

import (
	"ops-collab-be/internal/entity"
	"ops-collab-be/internal/model"

	"github.com/google/uuid"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}

	id, _ := uuid.Parse(u.Id)

	return &entity.User{
		Id:         id,
		DiscordId:  u.DiscordId,
		Username:   u.Username,
		GlobalName: u.GlobalName,
		Email:      u.Email,
		AvatarURL:  u.AvatarURL,
		Role:       entity.Role(u.Role),
		Banned:     u.Banned,
		LastLogin:  u.LastLogin,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}

	return &model.User{
		Id:         u.Id.String(),
		DiscordId:  u.DiscordId,
		Username:   u.Username,
		GlobalName: u.GlobalName,
		Email:      u.Email,
		AvatarURL:  u.AvatarURL,
		Role:       string(u.Role),
		Banned:     u.Banned,
		LastLogin:  u.LastLogin,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func (m *UserMapper) ToEntities(users []*model.User) []*entity.User {
	entities := make([]*entity.User, len(users))
	for i, u := range users {
		entities[i] = m.ToEntity(u)
	}
	return entities
}
