package service

import (
	"context"
	"time"

	"ops-collab-be/internal/dto"
	"ops-collab-be/internal/entity"
	"ops-collab-be/internal/pkg/logger"
	"ops-collab-be/internal/pkg/serverutils"
	"ops-collab-be/internal/repository/specification"
	"ops-collab-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IDraftService interface {
	Save(ctx context.Context, userId uuid.UUID, req *dto.SaveDraftRequest) (*dto.SaveDraftResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateDraftRequest) (*dto.SaveDraftResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.DraftResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.DraftResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	// Promote turns a draft into a published report and deletes the draft.
	Promote(ctx context.Context, userId uuid.UUID, req *dto.PromoteDraftRequest) (*dto.PromoteDraftResponse, error)
	// PurgeStale removes drafts idle longer than the retention window.
	PurgeStale(ctx context.Context, retention time.Duration) (int64, error)
}

type draftService struct {
	uowFactory    unitofwork.RepositoryFactory
	reportService IReportService
	logger        logger.ILogger
}

func NewDraftService(uowFactory unitofwork.RepositoryFactory, reportService IReportService, log logger.ILogger) IDraftService {
	return &draftService{
		uowFactory:    uowFactory,
		reportService: reportService,
		logger:        log,
	}
}

func (s *draftService) Save(ctx context.Context, userId uuid.UUID, req *dto.SaveDraftRequest) (*dto.SaveDraftResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	now := time.Now()
	draft := entity.Draft{
		Id:         uuid.New(),
		Title:      req.Title,
		Content:    normalizeContent(req.Content),
		Importance: defaultImportance(req.Importance),
		Tags:       req.Tags,
		Color:      req.Color,
		Icon:       req.Icon,
		FolderId:   req.FolderId,
		AuthorId:   userId,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := uow.DraftRepository().Create(ctx, &draft); err != nil {
		return nil, err
	}

	return &dto.SaveDraftResponse{Id: draft.Id, UpdatedAt: draft.UpdatedAt}, nil
}

func (s *draftService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateDraftRequest) (*dto.SaveDraftResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	draft, err := s.findOwned(ctx, uow, userId, req.Id)
	if err != nil {
		return nil, err
	}

	draft.Title = req.Title
	draft.Content = normalizeContent(req.Content)
	draft.Importance = defaultImportance(req.Importance)
	draft.Tags = req.Tags
	draft.Color = req.Color
	draft.Icon = req.Icon
	draft.FolderId = req.FolderId
	draft.UpdatedAt = time.Now()

	if err := uow.DraftRepository().Update(ctx, draft); err != nil {
		return nil, err
	}

	return &dto.SaveDraftResponse{Id: draft.Id, UpdatedAt: draft.UpdatedAt}, nil
}

func (s *draftService) List(ctx context.Context, userId uuid.UUID) ([]*dto.DraftResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	drafts, err := uow.DraftRepository().FindAll(ctx,
		specification.ByAuthorID{AuthorID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.DraftResponse, len(drafts))
	for i, d := range drafts {
		responses[i] = toDraftResponse(d)
	}
	return responses, nil
}

func (s *draftService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.DraftResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	draft, err := s.findOwned(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}
	return toDraftResponse(draft), nil
}

func (s *draftService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	draft, err := s.findOwned(ctx, uow, userId, id)
	if err != nil {
		return err
	}
	return uow.DraftRepository().Delete(ctx, draft.Id)
}

func (s *draftService) Promote(ctx context.Context, userId uuid.UUID, req *dto.PromoteDraftRequest) (*dto.PromoteDraftResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	draft, err := s.findOwned(ctx, uow, userId, req.Id)
	if err != nil {
		return nil, err
	}

	created, err := s.reportService.Create(ctx, userId, &dto.CreateReportRequest{
		Title:      draft.Title,
		Content:    draft.Content,
		Importance: string(draft.Importance),
		Tags:       draft.Tags,
		Color:      draft.Color,
		Icon:       draft.Icon,
		FolderId:   req.FolderId,
	})
	if err != nil {
		return nil, err
	}

	// The report is committed; a failed draft cleanup is only logged.
	if err := uow.DraftRepository().Delete(ctx, draft.Id); err != nil {
		s.logger.Warn("DraftService", "Draft cleanup after promote failed", map[string]interface{}{
			"draft_id": draft.Id,
			"error":    err.Error(),
		})
	}

	return &dto.PromoteDraftResponse{ReportId: created.Id}, nil
}

func (s *draftService) PurgeStale(ctx context.Context, retention time.Duration) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	cutoff := time.Now().Add(-retention)
	return uow.DraftRepository().DeleteWhere(ctx, specification.UpdatedBefore{Cutoff: cutoff})
}

func (s *draftService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, userId, id uuid.UUID) (*entity.Draft, error) {
	draft, err := uow.DraftRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.ByAuthorID{AuthorID: userId},
	)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, serverutils.ErrNotFound
	}
	return draft, nil
}

func defaultImportance(raw string) entity.Importance {
	if raw == "" {
		return entity.ImportanceNormal
	}
	return entity.Importance(raw)
}

func toDraftResponse(d *entity.Draft) *dto.DraftResponse {
	return &dto.DraftResponse{
		Id:         d.Id,
		Title:      d.Title,
		Content:    d.Content,
		Importance: string(d.Importance),
		Tags:       d.Tags,
		Color:      d.Color,
		Icon:       d.Icon,
		FolderId:   d.FolderId,
		UpdatedAt:  d.UpdatedAt,
	}
}
