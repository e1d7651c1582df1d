package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jobbook/jobbook-backend/internal/platform/logger"
	"github.com/jobbook/jobbook-backend/internal/types"
)

type NotificationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, notifications []*types.Notification) ([]*types.Notification, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Notification, error)
	ClaimNextPending(ctx context.Context, tx *gorm.DB, maxAttempts int, retryDelay, staleSending time.Duration) (*types.Notification, error)
	MarkSent(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	MarkFailed(ctx context.Context, tx *gorm.DB, id uuid.UUID, deliveryErr error) error
}

type notificationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNotificationRepo(db *gorm.DB, baseLog *logger.Logger) NotificationRepo {
	return &notificationRepo{db: db, log: baseLog.With("repo", "NotificationRepo")}
}

func (r *notificationRepo) Create(ctx context.Context, tx *gorm.DB, notifications []*types.Notification) ([]*types.Notification, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(notifications) == 0 {
		return []*types.Notification{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Notification, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var n types.Notification
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// ClaimNextPending picks the oldest deliverable outbox row and flips it to
// "sending" with a compare-and-swap on the previous status, so two workers
// racing for the same row cannot both claim it. Failed rows become
// deliverable again after retryDelay until maxAttempts; "sending" rows older
// than staleSending are reclaimed (crashed worker).
func (r *notificationRepo) ClaimNextPending(ctx context.Context, tx *gorm.DB, maxAttempts int, retryDelay, staleSending time.Duration) (*types.Notification, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	now := time.Now()
	retryCutoff := now.Add(-retryDelay)
	staleCutoff := now.Add(-staleSending)

	for i := 0; i < 3; i++ {
		var n types.Notification
		qErr := transaction.WithContext(ctx).
			Where(`
				(
					status = ?
					OR (status = ? AND attempts < ? AND updated_at < ?)
					OR (status = ? AND updated_at < ?)
				)
			`,
				types.NotificationStatusPending,
				types.NotificationStatusFailed, maxAttempts, retryCutoff,
				types.NotificationStatusSending, staleCutoff,
			).
			Order("created_at ASC").
			First(&n).Error
		if errors.Is(qErr, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if qErr != nil {
			return nil, qErr
		}

		res := transaction.WithContext(ctx).
			Model(&types.Notification{}).
			Where("id = ? AND status = ?", n.ID, n.Status).
			Updates(map[string]interface{}{
				"status":     types.NotificationStatusSending,
				"attempts":   gorm.Expr("attempts + 1"),
				"updated_at": now,
			})
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			// Another worker won the row; try the next candidate.
			continue
		}
		n.Status = types.NotificationStatusSending
		n.Attempts++
		return &n, nil
	}
	return nil, nil
}

func (r *notificationRepo) MarkSent(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	now := time.Now()
	return transaction.WithContext(ctx).
		Model(&types.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     types.NotificationStatusSent,
			"last_error": "",
			"sent_at":    now,
			"updated_at": now,
		}).Error
}

func (r *notificationRepo) MarkFailed(ctx context.Context, tx *gorm.DB, id uuid.UUID, deliveryErr error) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	msg := ""
	if deliveryErr != nil {
		msg = deliveryErr.Error()
	}
	return transaction.WithContext(ctx).
		Model(&types.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     types.NotificationStatusFailed,
			"last_error": msg,
			"updated_at": time.Now(),
		}).Error
}
