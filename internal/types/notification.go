package types

import (
	"time"

	"github.com/google/uuid"
)

type NotificationEvent string

const (
	EventJobCreated            NotificationEvent = "job_created"
	EventJobStatusChanged      NotificationEvent = "job_status_changed"
	EventJobContractorChanged  NotificationEvent = "job_contractor_changed"
	EventJobUpcomingDeadline   NotificationEvent = "job_upcoming_deadline"
	EventJobOverdueDeadline    NotificationEvent = "job_overdue_deadline"
	EventMonthlyStatusReport   NotificationEvent = "monthly_status_report"
	EventRegistrationSubmitted NotificationEvent = "registration_submitted"
	EventRegistrationAccepted  NotificationEvent = "registration_accepted"
)

const (
	NotificationStatusPending = "pending"
	NotificationStatusSending = "sending"
	NotificationStatusSent    = "sent"
	NotificationStatusFailed  = "failed"
)

// Notification is one outbox row: the dispatch decision persisted at
// mutation time, delivered asynchronously by the worker pool. Content is the
// inner HTML fragment; the mailer wraps it in the shared frame per
// recipient.
type Notification struct {
	ID             uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	Event          NotificationEvent `gorm:"type:varchar(32);not null;column:event" json:"event"`
	RecipientID    uuid.UUID         `gorm:"type:uuid;not null;index;column:recipient_id" json:"recipient_id"`
	Subject        string            `gorm:"not null;column:subject" json:"subject"`
	Content        string            `gorm:"type:text;not null;column:content" json:"content"`
	AttachmentPath string            `gorm:"column:attachment_path" json:"attachment_path,omitempty"`
	Status         string            `gorm:"type:varchar(16);not null;default:'pending';index;column:status" json:"status"`
	Attempts       int               `gorm:"not null;default:0;column:attempts" json:"attempts"`
	LastError      string            `gorm:"type:text;column:last_error" json:"last_error,omitempty"`
	CreatedAt      time.Time         `gorm:"not null;column:created_at" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"not null;column:updated_at" json:"updated_at"`
	SentAt         *time.Time        `gorm:"column:sent_at" json:"sent_at,omitempty"`
}

func (Notification) TableName() string { return "notification" }
