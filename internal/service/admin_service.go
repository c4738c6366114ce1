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
	"ops-collab-be/pkg/events"
	pktNats "ops-collab-be/pkg/nats"
)

type IAdminService interface {
	GetAllUsers(ctx context.Context, page, limit int) ([]dto.UserResponse, error)
	UpdateRole(ctx context.Context, req *dto.UpdateRoleRequest) error
	BanUser(ctx context.Context, req *dto.BanUserRequest) error
	GetDashboard(ctx context.Context) (*dto.DashboardResponse, error)
	GetSystemLogs(ctx context.Context, level string, page, limit int) ([]logger.LogEntry, error)
	GetLogDetail(ctx context.Context, logId string) (*logger.LogEntry, error)
}

type adminService struct {
	uowFactory        unitofwork.RepositoryFactory
	permissionService IPermissionService
	eventPublisher    *pktNats.Publisher
	logger            logger.ILogger
}

func NewAdminService(
	uowFactory unitofwork.RepositoryFactory,
	permissionService IPermissionService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IAdminService {
	return &adminService{
		uowFactory:        uowFactory,
		permissionService: permissionService,
		eventPublisher:    eventPublisher,
		logger:            log,
	}
}

func (s *adminService) GetAllUsers(ctx context.Context, page, limit int) ([]dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 25
	}

	users, err := uow.UserRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserResponse, len(users))
	for i, u := range users {
		responses[i] = toUserResponse(u)
	}
	return responses, nil
}

func (s *adminService) UpdateRole(ctx context.Context, req *dto.UpdateRoleRequest) error {
	role := entity.Role(req.Role)
	if !role.Valid() {
		return serverutils.NewAppError(400, "invalid role")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: req.UserId})
	if err != nil {
		return err
	}
	if user == nil {
		return serverutils.ErrNotFound
	}

	if user.Role == role {
		return nil
	}

	user.Role = role
	user.UpdatedAt = time.Now()
	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return err
	}

	s.permissionService.Invalidate(req.UserId)

	if s.eventPublisher != nil {
		err := s.eventPublisher.Publish(ctx, events.New(events.UserRoleChanged, map[string]interface{}{
			"user_id": req.UserId.String(),
			"role":    string(role),
		}))
		if err != nil {
			s.logger.Warn("AdminService", "Failed to publish role change", map[string]interface{}{"error": err.Error()})
		}
	}

	s.logger.Info("AdminService", "User role updated", map[string]interface{}{
		"user_id": req.UserId,
		"role":    role,
	})
	return nil
}

func (s *adminService) BanUser(ctx context.Context, req *dto.BanUserRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: req.UserId})
	if err != nil {
		return err
	}
	if user == nil {
		return serverutils.ErrNotFound
	}

	user.Banned = req.Banned
	user.UpdatedAt = time.Now()
	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return err
	}

	// Cached role must drop immediately so a banned user is cut off
	// before the cache TTL expires.
	s.permissionService.Invalidate(req.UserId)

	s.logger.Info("AdminService", "User ban state changed", map[string]interface{}{
		"user_id": req.UserId,
		"banned":  req.Banned,
	})
	return nil
}

func (s *adminService) GetDashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	users, err := uow.UserRepository().Count(ctx)
	if err != nil {
		return nil, err
	}
	folders, err := uow.FolderRepository().Count(ctx)
	if err != nil {
		return nil, err
	}
	reports, err := uow.ReportRepository().Count(ctx, specification.NotDeleted{})
	if err != nil {
		return nil, err
	}
	drafts, err := uow.DraftRepository().Count(ctx)
	if err != nil {
		return nil, err
	}
	missions, err := uow.MissionRepository().Count(ctx)
	if err != nil {
		return nil, err
	}
	openMissions, err := uow.MissionRepository().Count(ctx, specification.ByStatus{Status: string(entity.MissionStatusOpen)})
	if err != nil {
		return nil, err
	}
	notifications, err := uow.NotificationRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		Users:         users,
		Folders:       folders,
		Reports:       reports,
		Drafts:        drafts,
		Missions:      missions,
		OpenMissions:  openMissions,
		Notifications: notifications,
	}, nil
}

func (s *adminService) GetSystemLogs(ctx context.Context, level string, page, limit int) ([]logger.LogEntry, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.logger.GetLogs(level, limit, (page-1)*limit)
}

func (s *adminService) GetLogDetail(ctx context.Context, logId string) (*logger.LogEntry, error) {
	entry, err := s.logger.GetLogById(logId)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, serverutils.ErrNotFound
	}
	return entry, nil
}
