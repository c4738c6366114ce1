package mapper

import (
	"ops-collab-be/internal/entity"
	"ops-collab-be/internal/model"

	"github.com/google/uuid"
)

type FolderMapper struct{}

func NewFolderMapper() *FolderMapper {
	return &FolderMapper{}
}

func (m *FolderMapper) ToEntity(f *model.Folder) *entity.Folder {
	if f == nil {
		return nil
	}

	id, _ := uuid.Parse(f.Id)
	createdBy, _ := uuid.Parse(f.CreatedBy)

	return &entity.Folder{
		Id:            id,
		Name:          f.Name,
		Description:   f.Description,
		CoverImageURL: f.CoverImageURL,
		Color:         f.Color,
		Icon:          f.Icon,
		Position:      f.Position,
		CreatedBy:     createdBy,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
}

func (m *FolderMapper) ToModel(f *entity.Folder) *model.Folder {
	if f == nil {
		return nil
	}

	return &model.Folder{
		Id:            f.Id.String(),
		Name:          f.Name,
		Description:   f.Description,
		CoverImageURL: f.CoverImageURL,
		Color:         f.Color,
		Icon:          f.Icon,
		Position:      f.Position,
		CreatedBy:     f.CreatedBy.String(),
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
}

func (m *FolderMapper) ToEntities(folders []*model.Folder) []*entity.Folder {
	entities := make([]*entity.Folder, len(folders))
	for i, f := range folders {
		entities[i] = m.ToEntity(f)
	}
	return entities
}
