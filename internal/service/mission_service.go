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

	"github.com/google/uuid"
)

type IMissionService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateMissionRequest) (*dto.CreateMissionResponse, error)
	List(ctx context.Context, status string) ([]*dto.MissionResponse, error)
	ListAssigned(ctx context.Context, userId uuid.UUID) ([]*dto.MissionResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.MissionResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateMissionRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type missionService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewMissionService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher, log logger.ILogger) IMissionService {
	return &missionService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *missionService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateMissionRequest) (*dto.CreateMissionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	mission := entity.Mission{
		Id:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Status:      entity.MissionStatusOpen,
		AssigneeIds: req.AssigneeIds,
		DueAt:       req.DueAt,
		CreatedBy:   userId,
		CreatedAt:   time.Now(),
	}

	if err := uow.MissionRepository().Create(ctx, &mission); err != nil {
		return nil, err
	}

	s.publish(ctx, events.MissionCreated, map[string]interface{}{
		"mission_id": mission.Id.String(),
		"title":      mission.Title,
		"actor_id":   userId.String(),
	})
	s.publishAssignments(ctx, &mission, nil, userId)

	return &dto.CreateMissionResponse{Id: mission.Id}, nil
}

func (s *missionService) List(ctx context.Context, status string) ([]*dto.MissionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if status != "" {
		specs = append(specs, specification.ByStatus{Status: status})
	}

	missions, err := uow.MissionRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	return toMissionResponses(missions), nil
}

func (s *missionService) ListAssigned(ctx context.Context, userId uuid.UUID) ([]*dto.MissionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	missions, err := uow.MissionRepository().FindAll(ctx,
		specification.AssignedTo{UserID: userId},
		specification.OrderBy{Field: "due_at"},
	)
	if err != nil {
		return nil, err
	}
	return toMissionResponses(missions), nil
}

func (s *missionService) Show(ctx context.Context, id uuid.UUID) (*dto.MissionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	mission, err := uow.MissionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if mission == nil {
		return nil, serverutils.ErrNotFound
	}

	resp := toMissionResponse(mission)
	return &resp, nil
}

func (s *missionService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateMissionRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	mission, err := uow.MissionRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return err
	}
	if mission == nil {
		return serverutils.ErrNotFound
	}

	previousStatus := mission.Status
	previousAssignees := mission.AssigneeIds

	now := time.Now()
	mission.Title = req.Title
	mission.Description = req.Description
	if req.Status != "" {
		mission.Status = entity.MissionStatus(req.Status)
	}
	mission.AssigneeIds = req.AssigneeIds
	mission.DueAt = req.DueAt
	mission.UpdatedAt = &now

	if err := uow.MissionRepository().Update(ctx, mission); err != nil {
		return err
	}

	if mission.Status != previousStatus {
		s.publish(ctx, events.MissionStatusChanged, map[string]interface{}{
			"mission_id": mission.Id.String(),
			"title":      mission.Title,
			"from":       string(previousStatus),
			"to":         string(mission.Status),
			"actor_id":   userId.String(),
		})
	}
	s.publishAssignments(ctx, mission, previousAssignees, userId)

	return nil
}

func (s *missionService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	mission, err := uow.MissionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if mission == nil {
		return serverutils.ErrNotFound
	}

	return uow.MissionRepository().Delete(ctx, id)
}

// publishAssignments emits one event per newly assigned user so each gets a
// personal notification.
func (s *missionService) publishAssignments(ctx context.Context, mission *entity.Mission, previous []uuid.UUID, actorId uuid.UUID) {
	seen := make(map[uuid.UUID]struct{}, len(previous))
	for _, id := range previous {
		seen[id] = struct{}{}
	}
	for _, id := range mission.AssigneeIds {
		if _, ok := seen[id]; ok {
			continue
		}
		s.publish(ctx, events.MissionAssigned, map[string]interface{}{
			"mission_id": mission.Id.String(),
			"title":      mission.Title,
			"user_id":    id.String(),
			"actor_id":   actorId.String(),
		})
	}
}

func (s *missionService) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events.New(eventType, data)); err != nil {
		s.logger.Warn("MissionService", "Failed to publish event", map[string]interface{}{"type": eventType, "error": err.Error()})
	}
}

func toMissionResponse(m *entity.Mission) dto.MissionResponse {
	return dto.MissionResponse{
		Id:          m.Id,
		Title:       m.Title,
		Description: m.Description,
		Status:      string(m.Status),
		AssigneeIds: m.AssigneeIds,
		DueAt:       m.DueAt,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toMissionResponses(missions []*entity.Mission) []*dto.MissionResponse {
	responses := make([]*dto.MissionResponse, len(missions))
	for i, m := range missions {
		resp := toMissionResponse(m)
		responses[i] = &resp
	}
	return responses
}
