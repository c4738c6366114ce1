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
	"ops-collab-be/pkg/blockdoc"
	"ops-collab-be/pkg/events"
	pktNats "ops-collab-be/pkg/nats"

	"github.com/google/uuid"
)

type IReportService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateReportRequest) (*dto.CreateReportResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ReportResponse, error)
	Render(ctx context.Context, id uuid.UUID) (*dto.RenderedReportResponse, error)
	ListByFolder(ctx context.Context, folderId uuid.UUID) ([]*dto.ReportListItem, error)
	Search(ctx context.Context, term string) ([]*dto.ReportListItem, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateReportRequest) error
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type reportService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewReportService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher, log logger.ILogger) IReportService {
	return &reportService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

// normalizeContent runs the stored document through the codec so whatever
// the client sent is persisted in canonical encoded form. Legacy plain text
// comes back as a single text block.
func normalizeContent(content string) string {
	if content == "" {
		return ""
	}
	return blockdoc.Encode(blockdoc.Decode(content))
}

func (s *reportService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateReportRequest) (*dto.CreateReportResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	folder, err := uow.FolderRepository().FindOne(ctx, specification.ByID{ID: req.FolderId})
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return nil, serverutils.NewAppError(400, "folder does not exist")
	}

	importance := entity.Importance(req.Importance)
	if req.Importance == "" {
		importance = entity.ImportanceNormal
	}

	report := entity.Report{
		Id:         uuid.New(),
		Title:      req.Title,
		Content:    normalizeContent(req.Content),
		Importance: importance,
		Tags:       req.Tags,
		Color:      req.Color,
		Icon:       req.Icon,
		FolderId:   req.FolderId,
		AuthorId:   userId,
		CreatedAt:  time.Now(),
	}

	if err := uow.ReportRepository().Create(ctx, &report); err != nil {
		return nil, err
	}

	s.publish(ctx, events.ReportCreated, map[string]interface{}{
		"report_id":   report.Id.String(),
		"title":       report.Title,
		"importance":  string(report.Importance),
		"folder_id":   report.FolderId.String(),
		"folder_name": folder.Name,
		"actor_id":    userId.String(),
	})

	return &dto.CreateReportResponse{Id: report.Id}, nil
}

func (s *reportService) Show(ctx context.Context, id uuid.UUID) (*dto.ReportResponse, error) {
	report, err := s.findLive(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.ReportResponse{
		Id:         report.Id,
		Title:      report.Title,
		Content:    report.Content,
		Importance: string(report.Importance),
		Tags:       report.Tags,
		Color:      report.Color,
		Icon:       report.Icon,
		FolderId:   report.FolderId,
		AuthorId:   report.AuthorId,
		CreatedAt:  report.CreatedAt,
		UpdatedAt:  report.UpdatedAt,
	}, nil
}

// Render produces the read-only HTML view of the stored document.
func (s *reportService) Render(ctx context.Context, id uuid.UUID) (*dto.RenderedReportResponse, error) {
	report, err := s.findLive(ctx, id)
	if err != nil {
		return nil, err
	}

	blocks := blockdoc.Decode(report.Content)
	return &dto.RenderedReportResponse{
		Id:    report.Id,
		Title: report.Title,
		Html:  blockdoc.RenderDocument(blocks),
	}, nil
}

func (s *reportService) ListByFolder(ctx context.Context, folderId uuid.UUID) ([]*dto.ReportListItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	reports, err := uow.ReportRepository().FindAll(ctx,
		specification.ByFolderID{FolderID: folderId},
		specification.NotDeleted{},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	return toReportListItems(reports), nil
}

func (s *reportService) Search(ctx context.Context, term string) ([]*dto.ReportListItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	reports, err := uow.ReportRepository().FindAll(ctx,
		specification.TitleSearch{Term: term},
		specification.NotDeleted{},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: 50},
	)
	if err != nil {
		return nil, err
	}
	return toReportListItems(reports), nil
}

func (s *reportService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateReportRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	report, err := uow.ReportRepository().FindOne(ctx, specification.ByID{ID: req.Id}, specification.NotDeleted{})
	if err != nil {
		return err
	}
	if report == nil {
		return serverutils.ErrNotFound
	}

	now := time.Now()
	report.Title = req.Title
	report.Content = normalizeContent(req.Content)
	if req.Importance != "" {
		report.Importance = entity.Importance(req.Importance)
	}
	report.Tags = req.Tags
	report.Color = req.Color
	report.Icon = req.Icon
	report.FolderId = req.FolderId
	report.UpdatedAt = &now

	if err := uow.ReportRepository().Update(ctx, report); err != nil {
		return err
	}

	s.publish(ctx, events.ReportUpdated, map[string]interface{}{
		"report_id": report.Id.String(),
		"title":     report.Title,
		"actor_id":  userId.String(),
	})

	return nil
}

func (s *reportService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	report, err := uow.ReportRepository().FindOne(ctx, specification.ByID{ID: id}, specification.NotDeleted{})
	if err != nil {
		return err
	}
	if report == nil {
		return serverutils.ErrNotFound
	}

	if err := uow.ReportRepository().Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, events.ReportDeleted, map[string]interface{}{
		"report_id": id.String(),
		"title":     report.Title,
		"actor_id":  userId.String(),
	})

	return nil
}

func (s *reportService) findLive(ctx context.Context, id uuid.UUID) (*entity.Report, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	report, err := uow.ReportRepository().FindOne(ctx, specification.ByID{ID: id}, specification.NotDeleted{})
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, serverutils.ErrNotFound
	}
	return report, nil
}

// publish is fire-and-forget: notification delivery must never fail the
// request that caused it.
func (s *reportService) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events.New(eventType, data)); err != nil {
		s.logger.Warn("ReportService", "Failed to publish event", map[string]interface{}{"type": eventType, "error": err.Error()})
	}
}

func toReportListItems(reports []*entity.Report) []*dto.ReportListItem {
	items := make([]*dto.ReportListItem, len(reports))
	for i, r := range reports {
		items[i] = &dto.ReportListItem{
			Id:         r.Id,
			Title:      r.Title,
			Importance: string(r.Importance),
			Tags:       r.Tags,
			Color:      r.Color,
			Icon:       r.Icon,
			FolderId:   r.FolderId,
			AuthorId:   r.AuthorId,
			CreatedAt:  r.CreatedAt,
			UpdatedAt:  r.UpdatedAt,
		}
	}
	return items
}
