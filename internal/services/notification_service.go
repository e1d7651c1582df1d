package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jobbook/jobbook-backend/internal/platform/logger"
	"github.com/jobbook/jobbook-backend/internal/repos"
	"github.com/jobbook/jobbook-backend/internal/types"
)

// NotificationService writes outbox rows. It decides nothing: callers have
// already picked the event, the recipient and the rendered message.
type NotificationService interface {
	Enqueue(ctx context.Context, event types.NotificationEvent, recipientID uuid.UUID, msg EmailMessage, attachmentPath string) (*types.Notification, error)
}

type notificationService struct {
	log    *logger.Logger
	outbox repos.NotificationRepo
}

func NewNotificationService(baseLog *logger.Logger, outbox repos.NotificationRepo) NotificationService {
	return &notificationService{
		log:    baseLog.With("service", "NotificationService"),
		outbox: outbox,
	}
}

func (s *notificationService) Enqueue(ctx context.Context, event types.NotificationEvent, recipientID uuid.UUID, msg EmailMessage, attachmentPath string) (*types.Notification, error) {
	now := time.Now()
	n := &types.Notification{
		ID:             uuid.New(),
		Event:          event,
		RecipientID:    recipientID,
		Subject:        msg.Subject,
		Content:        msg.Content,
		AttachmentPath: attachmentPath,
		Status:         types.NotificationStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := s.outbox.Create(ctx, nil, []*types.Notification{n}); err != nil {
		return nil, err
	}
	s.log.Debug("Notification enqueued", "event", event, "notification_id", n.ID)
	return n, nil
}
