package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/jobbook/jobbook-backend/internal/platform/logger"
	"github.com/jobbook/jobbook-backend/internal/repos"
	"github.com/jobbook/jobbook-backend/internal/types"
)

var reportFieldNames = []string{"id", "date_formatted", "status", "kind", "has_attachments"}

// ReportService builds the monthly jobs statistics file and mails it to the
// general-contractor management staff. It reads job state and writes one
// file; it never mutates a job.
type ReportService interface {
	MonthlyStatusReport(ctx context.Context) (string, int, error)
}

type reportService struct {
	log        *logger.Logger
	jobs       repos.JobRepo
	files      repos.JobFileRepo
	users      repos.UserRepo
	notify     NotificationService
	format     *Formatter
	reportsDir string
	now        func() time.Time
}

func NewReportService(
	baseLog *logger.Logger,
	jobs repos.JobRepo,
	files repos.JobFileRepo,
	users repos.UserRepo,
	notify NotificationService,
	format *Formatter,
	reportsDir string,
	now func() time.Time,
) ReportService {
	return &reportService{
		log:        baseLog.With("service", "ReportService"),
		jobs:       jobs,
		files:      files,
		users:      users,
		notify:     notify,
		format:     format,
		reportsDir: reportsDir,
		now:        now,
	}
}

// MonthlyStatusReport covers the calendar month before the current one.
// Returns the written file path and the number of recipients notified.
func (s *reportService) MonthlyStatusReport(ctx context.Context) (string, int, error) {
	today := dateOnly(s.now())
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	prevStart := monthStart.AddDate(0, -1, 0)

	jobs, err := s.jobs.ListCreatedBetween(ctx, nil, prevStart, monthStart)
	if err != nil {
		return "", 0, err
	}

	jobIDs := make([]uuid.UUID, 0, len(jobs))
	for _, job := range jobs {
		jobIDs = append(jobIDs, job.ID)
	}
	hasFiles, err := s.files.JobIDsWithFiles(ctx, nil, jobIDs)
	if err != nil {
		return "", 0, err
	}

	rows := monthlyReportRows(jobs, hasFiles)

	fileName := fmt.Sprintf("%d_%d_jobs_monthly_status.csv", prevStart.Year(), int(prevStart.Month()))
	if err := os.MkdirAll(s.reportsDir, 0o755); err != nil {
		return "", 0, fmt.Errorf("create reports dir: %w", err)
	}
	filePath := filepath.Join(s.reportsDir, fileName)
	if err := writeCSV(filePath, rows); err != nil {
		return "", 0, err
	}

	recipients, err := s.users.ListActiveGeneralContractors(ctx, nil)
	if err != nil {
		return filePath, 0, err
	}

	msg := s.format.MonthlyStatusReport(prevStart.Year(), prevStart.Month())
	notified := 0
	for _, user := range recipients {
		if _, err := s.notify.Enqueue(ctx, types.EventMonthlyStatusReport, user.ID, msg, filePath); err != nil {
			s.log.Warn("Monthly report notification skipped", "recipient_id", user.ID, "error", err)
			continue
		}
		notified++
	}

	s.log.Info("Monthly status report finished",
		"period", fmt.Sprintf("%d-%02d", prevStart.Year(), int(prevStart.Month())),
		"jobs", len(jobs),
		"file", filePath,
		"recipients", notified,
	)
	return filePath, notified, nil
}

// monthlyReportRows lays out the report: header, one row per job, then the
// total count and the status/kind breakdowns as key rows followed by value
// rows, in the canonical enum order.
func monthlyReportRows(jobs []*types.Job, hasFiles map[uuid.UUID]bool) [][]string {
	rows := make([][]string, 0, len(jobs)+6)
	rows = append(rows, reportFieldNames)

	statusCounts := make(map[types.JobStatus]int, len(types.AllJobStatuses))
	kindCounts := make(map[types.JobKind]int, len(types.AllJobKinds))

	for _, job := range jobs {
		rows = append(rows, []string{
			job.ID.String(),
			job.Created.Format("02.01.2006"),
			string(job.Status),
			string(job.Kind),
			strconv.FormatBool(hasFiles[job.ID]),
		})
		statusCounts[job.Status]++
		kindCounts[job.Kind]++
	}

	rows = append(rows, []string{"Number of jobs:", strconv.Itoa(len(jobs))})

	statusKeys := make([]string, 0, len(types.AllJobStatuses))
	statusValues := make([]string, 0, len(types.AllJobStatuses))
	for _, status := range types.AllJobStatuses {
		statusKeys = append(statusKeys, string(status))
		statusValues = append(statusValues, strconv.Itoa(statusCounts[status]))
	}
	rows = append(rows, statusKeys, statusValues)

	kindKeys := make([]string, 0, len(types.AllJobKinds))
	kindValues := make([]string, 0, len(types.AllJobKinds))
	for _, kind := range types.AllJobKinds {
		kindKeys = append(kindKeys, string(kind))
		kindValues = append(kindValues, strconv.Itoa(kindCounts[kind]))
	}
	rows = append(rows, kindKeys, kindValues)

	return rows
}

func writeCSV(path string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("write report file: %w", err)
	}
	writer.Flush()
	return writer.Error()
}
