package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jobbook/jobbook-backend/internal/platform/logger"
	"github.com/jobbook/jobbook-backend/internal/platform/sendgrid"
	"github.com/jobbook/jobbook-backend/internal/repos"
	"github.com/jobbook/jobbook-backend/internal/types"
)

// Mailer turns one outbox row into an actual e-mail. The delivery worker is
// its only caller.
type Mailer interface {
	Deliver(ctx context.Context, n *types.Notification) error
}

type mailer struct {
	log   *logger.Logger
	users repos.UserRepo
	email sendgrid.Client
}

func NewMailer(baseLog *logger.Logger, users repos.UserRepo, email sendgrid.Client) Mailer {
	return &mailer{
		log:   baseLog.With("service", "Mailer"),
		users: users,
		email: email,
	}
}

func (m *mailer) Deliver(ctx context.Context, n *types.Notification) error {
	user, err := m.users.GetByID(ctx, nil, n.RecipientID)
	if err != nil {
		return fmt.Errorf("resolve recipient %s: %w", n.RecipientID, err)
	}

	name := user.FullName()
	if name == "" {
		name = "User"
	}

	html, err := RenderHTML(name, n.Content)
	if err != nil {
		return fmt.Errorf("render email body: %w", err)
	}

	req := sendgrid.SendEmailRequest{
		To:      []sendgrid.EmailAddress{{Email: user.Email, Name: name}},
		Subject: n.Subject,
		HTML:    html,
		Text:    StripTags(html),
	}

	if n.AttachmentPath != "" {
		content, readErr := os.ReadFile(n.AttachmentPath)
		if readErr != nil {
			return fmt.Errorf("read attachment %s: %w", n.AttachmentPath, readErr)
		}
		req.Attachments = []sendgrid.Attachment{{
			Filename: filepath.Base(n.AttachmentPath),
			MIMEType: "text/csv",
			Content:  content,
		}}
	}

	if _, err := m.email.Send(ctx, req); err != nil {
		return err
	}
	m.log.Debug("Notification delivered", "notification_id", n.ID, "event", n.Event)
	return nil
}
