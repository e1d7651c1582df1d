package services

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/jobbook/jobbook-backend/internal/types"
)

// E-mail subjects and bodies. Content strings are the inner HTML fragments;
// the mailer wraps them in the shared frame per recipient.
const (
	emailJobCreateSubject = "A new job has been just created and assigned to you"
	emailJobCreateContent = "A new job has been just created by %s in the %s trade. Check the details and accept or reject this job."

	emailJobChangeStatusSubject = "The job number %s has changed status"
	emailJobChangeStatusContent = "The job number %s has changed status to <strong>%s</strong>. Check the details here <a href=%s>[CLICK]</a>"

	emailJobChangeContractorSubject = "The job number %s has been assigned to you"
	emailJobChangeContractorContent = "The job number %s in the %s trade has been assigned to you. Check the details here <a href=%s>[CLICK]</a>"

	emailJobUpcomingDeadlineSubject = "The job number %s deadline is tomorrow"
	emailJobUpcomingDeadlineContent = "The deadline of the job number %s is tomorrow. Check the details and update the job status."

	emailJobOverdueDeadlineSubject = "The job number %s is overdue"
	emailJobOverdueDeadlineContent = "The deadline of the job number %s passed yesterday and the job is still open. Check the details."

	emailMonthlyStatusSubject = "Jobs monthly status %d/%d"
	emailMonthlyStatusContent = "The jobs status summary for %s %d is attached to this message."

	emailRegistrationSubmittedSubject = "Your registration has been submitted"
	emailRegistrationSubmittedContent = "Your account has been created and is waiting for approval by the administrator. You will receive an e-mail once it is accepted."

	emailRegistrationPendingSubject = "A new registration is waiting for approval"
	emailRegistrationPendingContent = "%s (%s) has registered and is waiting for your approval."

	emailRegistrationAcceptedSubject = "Your registration has been accepted"
	emailRegistrationAcceptedContent = "Your account has been activated. You can log in and start working with the job book."
)

// EmailMessage is one rendered notification: a subject and the inner HTML
// content, before the per-recipient frame is applied.
type EmailMessage struct {
	Subject string
	Content string
}

type Formatter struct {
	baseURL string
}

func NewFormatter(baseURL string) *Formatter {
	return &Formatter{baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/")}
}

func (f *Formatter) JobURL(jobID uuid.UUID) string {
	return fmt.Sprintf("%s/jobs/%s", f.baseURL, jobID)
}

func (f *Formatter) JobCreated(principalName, tradeName string) EmailMessage {
	return EmailMessage{
		Subject: emailJobCreateSubject,
		Content: fmt.Sprintf(emailJobCreateContent, template.HTMLEscapeString(principalName), template.HTMLEscapeString(tradeName)),
	}
}

func (f *Formatter) StatusChanged(jobID uuid.UUID, status types.JobStatus) EmailMessage {
	return EmailMessage{
		Subject: fmt.Sprintf(emailJobChangeStatusSubject, jobID),
		Content: fmt.Sprintf(emailJobChangeStatusContent, jobID, capitalize(status.Label()), f.JobURL(jobID)),
	}
}

func (f *Formatter) ContractorChanged(jobID uuid.UUID, tradeName string) EmailMessage {
	return EmailMessage{
		Subject: fmt.Sprintf(emailJobChangeContractorSubject, jobID),
		Content: fmt.Sprintf(emailJobChangeContractorContent, jobID, template.HTMLEscapeString(tradeName), f.JobURL(jobID)),
	}
}

func (f *Formatter) UpcomingDeadline(jobID uuid.UUID) EmailMessage {
	return EmailMessage{
		Subject: fmt.Sprintf(emailJobUpcomingDeadlineSubject, jobID),
		Content: fmt.Sprintf(emailJobUpcomingDeadlineContent, jobID),
	}
}

func (f *Formatter) OverdueDeadline(jobID uuid.UUID) EmailMessage {
	return EmailMessage{
		Subject: fmt.Sprintf(emailJobOverdueDeadlineSubject, jobID),
		Content: fmt.Sprintf(emailJobOverdueDeadlineContent, jobID),
	}
}

func (f *Formatter) MonthlyStatusReport(year int, month time.Month) EmailMessage {
	return EmailMessage{
		Subject: fmt.Sprintf(emailMonthlyStatusSubject, year, int(month)),
		Content: fmt.Sprintf(emailMonthlyStatusContent, month.String(), year),
	}
}

func (f *Formatter) RegistrationSubmitted() EmailMessage {
	return EmailMessage{Subject: emailRegistrationSubmittedSubject, Content: emailRegistrationSubmittedContent}
}

// RegistrationPendingReview is the administrator-facing counterpart of
// RegistrationSubmitted.
func (f *Formatter) RegistrationPendingReview(applicantName, applicantEmail string) EmailMessage {
	return EmailMessage{
		Subject: emailRegistrationPendingSubject,
		Content: fmt.Sprintf(emailRegistrationPendingContent, template.HTMLEscapeString(applicantName), template.HTMLEscapeString(applicantEmail)),
	}
}

func (f *Formatter) RegistrationAccepted() EmailMessage {
	return EmailMessage{Subject: emailRegistrationAcceptedSubject, Content: emailRegistrationAcceptedContent}
}

// The shared e-mail frame. Content is pre-rendered HTML; the recipient name
// is escaped by the template engine.
var emailFrame = template.Must(template.New("email").Parse(`<html>
<body>
<p>Hello {{.UserName}},</p>
<p>{{.Content}}</p>
<p>Best regards,<br>The Job Book team</p>
</body>
</html>
`))

func RenderHTML(userName, content string) (string, error) {
	var buf bytes.Buffer
	err := emailFrame.Execute(&buf, struct {
		UserName string
		Content  template.HTML
	}{UserName: userName, Content: template.HTML(content)})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// StripTags produces the plain-text alternative of an HTML body.
func StripTags(html string) string {
	var b strings.Builder
	inTag := false
	for _, r := range html {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
