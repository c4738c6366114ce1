package service

import (
	"context"
	"time"

	"ops-collab-be/internal/dto"
	"ops-collab-be/internal/entity"
	"ops-collab-be/internal/pkg/serverutils"
	"ops-collab-be/internal/repository/specification"
	"ops-collab-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IFolderService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateFolderRequest) (*dto.CreateFolderResponse, error)
	List(ctx context.Context) ([]*dto.FolderResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.FolderResponse, error)
	Update(ctx context.Context, req *dto.UpdateFolderRequest) error
	Reorder(ctx context.Context, req *dto.ReorderFolderRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type folderService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewFolderService(uowFactory unitofwork.RepositoryFactory) IFolderService {
	return &folderService{
		uowFactory: uowFactory,
	}
}

func (s *folderService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateFolderRequest) (*dto.CreateFolderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	maxPos, err := uow.FolderRepository().MaxPosition(ctx)
	if err != nil {
		return nil, err
	}

	folder := entity.Folder{
		Id:            uuid.New(),
		Name:          req.Name,
		Description:   req.Description,
		CoverImageURL: req.CoverImageURL,
		Color:         req.Color,
		Icon:          req.Icon,
		Position:      maxPos + 1,
		CreatedBy:     userId,
		CreatedAt:     time.Now(),
	}

	if err := uow.FolderRepository().Create(ctx, &folder); err != nil {
		return nil, err
	}

	return &dto.CreateFolderResponse{Id: folder.Id}, nil
}

func (s *folderService) List(ctx context.Context) ([]*dto.FolderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	folders, err := uow.FolderRepository().FindAll(ctx, specification.OrderBy{Field: "position"})
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.FolderResponse, len(folders))
	for i, f := range folders {
		count, err := uow.ReportRepository().Count(ctx,
			specification.ByFolderID{FolderID: f.Id},
			specification.NotDeleted{},
		)
		if err != nil {
			return nil, err
		}
		resp := toFolderResponse(f, count)
		responses[i] = &resp
	}

	return responses, nil
}

func (s *folderService) Show(ctx context.Context, id uuid.UUID) (*dto.FolderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	folder, err := uow.FolderRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return nil, serverutils.ErrNotFound
	}

	count, err := uow.ReportRepository().Count(ctx,
		specification.ByFolderID{FolderID: folder.Id},
		specification.NotDeleted{},
	)
	if err != nil {
		return nil, err
	}

	resp := toFolderResponse(folder, count)
	return &resp, nil
}

func (s *folderService) Update(ctx context.Context, req *dto.UpdateFolderRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	folder, err := uow.FolderRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return err
	}
	if folder == nil {
		return serverutils.ErrNotFound
	}

	now := time.Now()
	folder.Name = req.Name
	folder.Description = req.Description
	folder.CoverImageURL = req.CoverImageURL
	folder.Color = req.Color
	folder.Icon = req.Icon
	folder.UpdatedAt = &now

	return uow.FolderRepository().Update(ctx, folder)
}

// Reorder moves a folder to the requested position and shifts the others,
// all inside one transaction so concurrent reorders cannot interleave.
func (s *folderService) Reorder(ctx context.Context, req *dto.ReorderFolderRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}

	folders, err := uow.FolderRepository().FindAll(ctx, specification.OrderBy{Field: "position"})
	if err != nil {
		uow.Rollback(ctx)
		return err
	}

	var target *entity.Folder
	rest := make([]*entity.Folder, 0, len(folders))
	for _, f := range folders {
		if f.Id == req.Id {
			target = f
			continue
		}
		rest = append(rest, f)
	}
	if target == nil {
		uow.Rollback(ctx)
		return serverutils.ErrNotFound
	}

	pos := req.Position
	if pos > len(rest) {
		pos = len(rest)
	}
	reordered := make([]*entity.Folder, 0, len(folders))
	reordered = append(reordered, rest[:pos]...)
	reordered = append(reordered, target)
	reordered = append(reordered, rest[pos:]...)

	now := time.Now()
	for i, f := range reordered {
		if f.Position == i {
			continue
		}
		f.Position = i
		f.UpdatedAt = &now
		if err := uow.FolderRepository().Update(ctx, f); err != nil {
			uow.Rollback(ctx)
			return err
		}
	}

	return uow.Commit(ctx)
}

func (s *folderService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	folder, err := uow.FolderRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if folder == nil {
		return serverutils.ErrNotFound
	}

	count, err := uow.ReportRepository().Count(ctx,
		specification.ByFolderID{FolderID: id},
		specification.NotDeleted{},
	)
	if err != nil {
		return err
	}
	if count > 0 {
		return serverutils.NewAppError(409, "folder still contains reports")
	}

	return uow.FolderRepository().Delete(ctx, id)
}

func toFolderResponse(f *entity.Folder, reportCount int64) dto.FolderResponse {
	return dto.FolderResponse{
		Id:            f.Id,
		Name:          f.Name,
		Description:   f.Description,
		CoverImageURL: f.CoverImageURL,
		Color:         f.Color,
		Icon:          f.Icon,
		Position:      f.Position,
		ReportCount:   reportCount,
		CreatedBy:     f.CreatedBy,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
}
