package mapper

import (
	"ops-collab-be/internal/entity"
	"ops-collab-be/internal/model"

	"github.com/google/uuid"
)

type ReportMapper struct{}

func NewReportMapper() *ReportMapper {
	return &ReportMapper{}
}

func (m *ReportMapper) ToEntity(r *model.Report) *entity.Report {
	if r == nil {
		return nil
	}

	id, _ := uuid.Parse(r.Id)
	folderId, _ := uuid.Parse(r.FolderId)
	authorId, _ := uuid.Parse(r.AuthorId)

	return &entity.Report{
		Id:         id,
		Title:      r.Title,
		Content:    r.Content,
		Importance: entity.Importance(r.Importance),
		Tags:       r.Tags,
		Color:      r.Color,
		Icon:       r.Icon,
		FolderId:   folderId,
		AuthorId:   authorId,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
		DeletedAt:  r.DeletedAt,
		IsDeleted:  r.IsDeleted,
	}
}

func (m *ReportMapper) ToModel(r *entity.Report) *model.Report {
	if r == nil {
		return nil
	}

	return &model.Report{
		Id:         r.Id.String(),
		Title:      r.Title,
		Content:    r.Content,
		Importance: string(r.Importance),
		Tags:       r.Tags,
		Color:      r.Color,
		Icon:       r.Icon,
		FolderId:   r.FolderId.String(),
		AuthorId:   r.AuthorId.String(),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
		DeletedAt:  r.DeletedAt,
		IsDeleted:  r.IsDeleted,
	}
}

func (m *ReportMapper) ToEntities(reports []*model.Report) []*entity.Report {
	entities := make([]*entity.Report, len(reports))
	for i, r := range reports {
		entities[i] = m.ToEntity(r)
	}
	return entities
}

type DraftMapper struct{}

func NewDraftMapper() *DraftMapper {
	return &DraftMapper{}
}

func (m *DraftMapper) ToEntity(d *model.Draft) *entity.Draft {
	if d == nil {
		return nil
	}

	id, _ := uuid.Parse(d.Id)
	authorId, _ := uuid.Parse(d.AuthorId)

	var folderId uuid.UUID
	if d.FolderId != "" {
		folderId, _ = uuid.Parse(d.FolderId)
	}

	return &entity.Draft{
		Id:         id,
		Title:      d.Title,
		Content:    d.Content,
		Importance: entity.Importance(d.Importance),
		Tags:       d.Tags,
		Color:      d.Color,
		Icon:       d.Icon,
		FolderId:   folderId,
		AuthorId:   authorId,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

func (m *DraftMapper) ToModel(d *entity.Draft) *model.Draft {
	if d == nil {
		return nil
	}

	folderId := ""
	if d.FolderId != uuid.Nil {
		folderId = d.FolderId.String()
	}

	return &model.Draft{
		Id:         d.Id.String(),
		Title:      d.Title,
		Content:    d.Content,
		Importance: string(d.Importance),
		Tags:       d.Tags,
		Color:      d.Color,
		Icon:       d.Icon,
		FolderId:   folderId,
		AuthorId:   d.AuthorId.String(),
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

func (m *DraftMapper) ToEntities(drafts []*model.Draft) []*entity.Draft {
	entities := make([]*entity.Draft, len(drafts))
	for i, d := range drafts {
		entities[i] = m.ToEntity(d)
	}
	return entities
}
