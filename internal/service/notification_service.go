package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"ops-collab-be/internal/dto"
	"ops-collab-be/internal/entity"
	"ops-collab-be/internal/pkg/logger"
	"ops-collab-be/internal/pkg/mailer"
	"ops-collab-be/internal/repository/specification"
	"ops-collab-be/internal/repository/unitofwork"
	"ops-collab-be/pkg/events"
	pktNats "ops-collab-be/pkg/nats"

	"github.com/google/uuid"
)

// NotificationDelivery defines how to push real-time updates. Implemented by
// the websocket hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification dto.NotificationResponse)
	Broadcast(notification dto.NotificationResponse)
}

// target decides which users an event reaches.
type target int

const (
	targetSelf target = iota // "user_id" from the payload
	targetLeaders
	targetAdmins
	targetBroadcast
)

// route maps an event type to recipients and rendering. Templates use
// {placeholder} substitution against the event payload.
type route struct {
	Target    target
	Title     string
	Template  string
	Color     string
	SendEmail bool
}

var routes = map[string]route{
	events.ReportCreated: {
		Target:   targetBroadcast,
		Title:    "New report",
		Template: "{title} was published in {folder_name}",
		Color:    "#57F287",
	},
	events.ReportDeleted: {
		Target:   targetLeaders,
		Title:    "Report removed",
		Template: "{title} was deleted",
		Color:    "#ED4245",
	},
	events.MissionCreated: {
		Target:   targetBroadcast,
		Title:    "New mission",
		Template: "{title} is open for assignment",
		Color:    "#5865F2",
	},
	events.MissionAssigned: {
		Target:    targetSelf,
		Title:     "Mission assigned",
		Template:  "You were assigned to {title}",
		Color:     "#5865F2",
		SendEmail: true,
	},
	events.MissionStatusChanged: {
		Target:   targetLeaders,
		Title:    "Mission status",
		Template: "{title} moved from {from} to {to}",
		Color:    "#FEE75C",
	},
	events.UserRoleChanged: {
		Target:   targetSelf,
		Title:    "Role updated",
		Template: "Your role is now {role}",
		Color:    "#EB459E",
	},
}

type INotificationService interface {
	Start()
	List(ctx context.Context, userId uuid.UUID, limit, offset int) (*dto.NotificationListResponse, error)
	MarkRead(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userId uuid.UUID) error
}

type notificationService struct {
	uowFactory   unitofwork.RepositoryFactory
	subscriber   *pktNats.Subscriber
	delivery     NotificationDelivery
	discordQueue IPublisherService
	emailService mailer.IEmailService
	clientURL    string
	logger       logger.ILogger
}

func NewNotificationService(
	uowFactory unitofwork.RepositoryFactory,
	sub *pktNats.Subscriber,
	delivery NotificationDelivery,
	discordQueue IPublisherService,
	emailService mailer.IEmailService,
	clientURL string,
	log logger.ILogger,
) INotificationService {
	return &notificationService{
		uowFactory:   uowFactory,
		subscriber:   sub,
		delivery:     delivery,
		discordQueue: discordQueue,
		emailService: emailService,
		clientURL:    clientURL,
		logger:       log,
	}
}

// Start begins listening to the event bus with a durable consumer.
func (s *notificationService) Start() {
	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *notificationService) handleEvent(ctx context.Context, event events.Event) error {
	typeCode := event.EventType()

	r, ok := routes[typeCode]
	if !ok {
		s.logger.Debug("NotificationService", fmt.Sprintf("No route for event '%s'", typeCode), nil)
		return nil
	}

	body := renderTemplate(r.Template, event.Payload())

	if r.Target == targetBroadcast {
		// Broadcasts are push-only; nothing lands in individual inboxes.
		if s.delivery != nil {
			s.delivery.Broadcast(dto.NotificationResponse{
				Id:        uuid.New(),
				Title:     r.Title,
				Body:      body,
				Color:     r.Color,
				CreatedAt: event.Timestamp(),
			})
		}
		s.enqueueDiscord(discordDelivery{Title: r.Title, Body: body, Color: r.Color})
		return nil
	}

	recipients, err := s.resolveRecipients(ctx, r, event)
	if err != nil {
		s.logger.Error("NotificationService", fmt.Sprintf("Error resolving recipients for %s", typeCode), map[string]interface{}{"error": err})
		return err // NATS redelivers on error
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	for _, user := range recipients {
		notif := entity.Notification{
			Id:        uuid.New(),
			UserId:    user.Id,
			Title:     r.Title,
			Body:      body,
			Color:     r.Color,
			CreatedAt: time.Now(),
		}

		if err := uow.NotificationRepository().Create(ctx, &notif); err != nil {
			s.logger.Error("NotificationService", fmt.Sprintf("Error saving notification for user %s", user.Id), map[string]interface{}{"error": err})
			continue
		}

		if s.delivery != nil {
			s.delivery.Send(user.Id, toNotificationResponse(&notif))
		}

		s.enqueueDiscord(discordDelivery{
			DiscordUserId: user.DiscordId,
			Title:         r.Title,
			Body:          body,
			Color:         r.Color,
		})

		if r.SendEmail && s.emailService != nil && user.Email != "" {
			title, _ := event.Payload()["title"].(string)
			if err := s.emailService.SendMissionAssigned(user.Email, title, s.clientURL); err != nil {
				s.logger.Warn("NotificationService", "Assignment mail failed", map[string]interface{}{"user_id": user.Id, "error": err.Error()})
			}
		}
	}

	return nil
}

func (s *notificationService) resolveRecipients(ctx context.Context, r route, event events.Event) ([]*entity.User, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	switch r.Target {
	case targetSelf:
		uidStr, ok := event.Payload()["user_id"].(string)
		if !ok {
			s.logger.Warn("NotificationService", fmt.Sprintf("Target self but no user_id in payload for event %s", event.EventType()), nil)
			return nil, nil
		}
		uid, err := uuid.Parse(uidStr)
		if err != nil {
			return nil, nil
		}
		user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: uid})
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, nil
		}
		return []*entity.User{user}, nil

	case targetLeaders:
		return uow.UserRepository().FindAll(ctx, specification.Filter("role", string(entity.RoleLeader)))

	case targetAdmins:
		return uow.UserRepository().FindAll(ctx, specification.Filter("role", string(entity.RoleAdmin)))
	}

	return nil, nil
}

// discordDelivery rides the in-process queue to the discord consumer. An
// empty DiscordUserId means channel webhook instead of DM.
type discordDelivery struct {
	DiscordUserId string `json:"discord_user_id,omitempty"`
	Title         string `json:"title"`
	Body          string `json:"body"`
	Color         string `json:"color"`
}

func (s *notificationService) enqueueDiscord(d discordDelivery) {
	if s.discordQueue == nil {
		return
	}
	payload, err := json.Marshal(d)
	if err != nil {
		return
	}
	if err := s.discordQueue.Publish(context.Background(), payload); err != nil {
		s.logger.Warn("NotificationService", "Failed to enqueue discord delivery", map[string]interface{}{"error": err.Error()})
	}
}

// renderTemplate substitutes {key} placeholders with payload values.
func renderTemplate(template string, payload map[string]interface{}) string {
	msg := template
	for k, v := range payload {
		placeholder := fmt.Sprintf("{%s}", k)
		msg = strings.ReplaceAll(msg, placeholder, fmt.Sprintf("%v", v))
	}
	return msg
}

func (s *notificationService) List(ctx context.Context, userId uuid.UUID, limit, offset int) (*dto.NotificationListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if limit <= 0 {
		limit = 20
	}
	items, err := uow.NotificationRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, err
	}

	unread, err := uow.NotificationRepository().Count(ctx,
		specification.ByUserID{UserID: userId},
		specification.UnreadOnly{},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.NotificationResponse, len(items))
	for i, n := range items {
		responses[i] = toNotificationResponse(n)
	}

	return &dto.NotificationListResponse{Items: responses, Unread: unread}, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	notif, err := uow.NotificationRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return err
	}
	if notif == nil {
		return nil
	}
	return uow.NotificationRepository().MarkRead(ctx, id)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	_, err := uow.NotificationRepository().MarkAllRead(ctx, userId)
	return err
}

func toNotificationResponse(n *entity.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		Id:        n.Id,
		Title:     n.Title,
		Body:      n.Body,
		Color:     n.Color,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}
