package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jobbook/jobbook-backend/internal/platform/logger"
	"github.com/jobbook/jobbook-backend/internal/repos"
	"github.com/jobbook/jobbook-backend/internal/types"
)

const JobsPerPage = 10

type JobFileUpload struct {
	Name string
	Data []byte
}

type JobCreateInput struct {
	PrincipalID  uuid.UUID
	ContractorID uuid.UUID
	TradeID      uuid.UUID
	Kind         types.JobKind
	Description  string
	KmFrom       float64
	KmTo         *float64
	Deadline     time.Time
	Comments     string
	File         *JobFileUpload
}

type JobUpdateInput struct {
	ContractorID uuid.UUID
	Kind         types.JobKind
	Description  string
	KmFrom       float64
	KmTo         *float64
	Deadline     time.Time
	Comments     string
	Status       types.JobStatus
}

type JobPage struct {
	Jobs    []*types.Job `json:"jobs"`
	Page    int          `json:"page"`
	PerPage int          `json:"per_page"`
	Total   int64        `json:"total"`
}

type JobService interface {
	Create(ctx context.Context, input JobCreateInput) (*types.Job, error)
	Update(ctx context.Context, jobID uuid.UUID, input JobUpdateInput) (*types.Job, error)
	GetByID(ctx context.Context, jobID uuid.UUID) (*types.Job, []*types.JobFile, error)
	GetFile(ctx context.Context, jobID, fileID uuid.UUID) (*types.JobFile, error)
	List(ctx context.Context, orderBy string, page int) (*JobPage, error)
	ListForUser(ctx context.Context, userID uuid.UUID, role string, statusFilter string) ([]*types.Job, error)
}

type jobService struct {
	db         *gorm.DB
	log        *logger.Logger
	jobs       repos.JobRepo
	files      repos.JobFileRepo
	users      repos.UserRepo
	trades     repos.TradeRepo
	notify     NotificationService
	format     *Formatter
	uploadsDir string
	now        func() time.Time
}

func NewJobService(
	db *gorm.DB,
	baseLog *logger.Logger,
	jobs repos.JobRepo,
	files repos.JobFileRepo,
	users repos.UserRepo,
	trades repos.TradeRepo,
	notify NotificationService,
	format *Formatter,
	uploadsDir string,
	now func() time.Time,
) JobService {
	return &jobService{
		db:         db,
		log:        baseLog.With("service", "JobService"),
		jobs:       jobs,
		files:      files,
		users:      users,
		trades:     trades,
		notify:     notify,
		format:     format,
		uploadsDir: uploadsDir,
		now:        now,
	}
}

func (s *jobService) Create(ctx context.Context, input JobCreateInput) (*types.Job, error) {
	if input.PrincipalID == uuid.Nil {
		return nil, NewValidationError("principal", "a principal is required")
	}
	if input.ContractorID == uuid.Nil {
		return nil, NewValidationError("contractor", "a contractor is required")
	}
	if input.TradeID == uuid.Nil {
		return nil, NewValidationError("trade", "a trade is required")
	}
	if !input.Kind.Valid() {
		return nil, NewValidationError("kind", fmt.Sprintf("unknown job kind %q", input.Kind))
	}
	if input.Description == "" {
		return nil, NewValidationError("description", "a description is required")
	}
	deadline := dateOnly(input.Deadline)
	// The past-date check applies at creation only; later edits may set any
	// date.
	if deadline.Before(dateOnly(s.now())) {
		return nil, NewValidationError("deadline", deadlineFormError)
	}

	principal, err := s.users.GetByID(ctx, nil, input.PrincipalID)
	if err != nil {
		return nil, fmt.Errorf("lookup principal: %w", err)
	}
	if _, err := s.users.GetByID(ctx, nil, input.ContractorID); err != nil {
		return nil, fmt.Errorf("lookup contractor: %w", err)
	}
	trade, err := s.trades.GetByID(ctx, nil, input.TradeID)
	if err != nil {
		return nil, fmt.Errorf("lookup trade: %w", err)
	}

	job := &types.Job{
		ID:           uuid.New(),
		PrincipalID:  input.PrincipalID,
		ContractorID: input.ContractorID,
		Kind:         input.Kind,
		TradeID:      input.TradeID,
		Description:  input.Description,
		KmFrom:       input.KmFrom,
		KmTo:         input.KmTo,
		Deadline:     deadline,
		Comments:     input.Comments,
		Status:       types.JobStatusWaiting,
		Created:      s.now(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, txErr := s.jobs.Create(ctx, tx, job); txErr != nil {
			return txErr
		}
		if input.File != nil {
			if txErr := s.storeFile(ctx, tx, job.ID, input.File); txErr != nil {
				return txErr
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Post-commit side effect: the assigned contractor learns about the new
	// job. Delivery itself happens on the worker.
	msg := s.format.JobCreated(principal.FullName(), trade.Name)
	if _, err := s.notify.Enqueue(ctx, types.EventJobCreated, job.ContractorID, msg, ""); err != nil {
		return job, fmt.Errorf("enqueue job-created notification: %w", err)
	}
	return job, nil
}

func (s *jobService) Update(ctx context.Context, jobID uuid.UUID, input JobUpdateInput) (*types.Job, error) {
	if !input.Kind.Valid() {
		return nil, NewValidationError("kind", fmt.Sprintf("unknown job kind %q", input.Kind))
	}
	if !input.Status.Valid() {
		return nil, NewValidationError("status", fmt.Sprintf("unknown job status %q", input.Status))
	}
	if input.Description == "" {
		return nil, NewValidationError("description", "a description is required")
	}
	if input.ContractorID == uuid.Nil {
		return nil, NewValidationError("contractor", "a contractor is required")
	}

	// The before snapshot is read inside the same transaction that persists
	// the update, so the diff matches what is overwritten. Two concurrent
	// updates still race last-write-wins; each computes its own diff.
	var before *types.Job
	var after *types.Job
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		before, txErr = s.jobs.GetByID(ctx, tx, jobID)
		if txErr != nil {
			return txErr
		}

		if before.ContractorID != input.ContractorID {
			if _, txErr = s.users.GetByID(ctx, tx, input.ContractorID); txErr != nil {
				return fmt.Errorf("lookup contractor: %w", txErr)
			}
		}

		updated := *before
		updated.ContractorID = input.ContractorID
		updated.Kind = input.Kind
		updated.Description = input.Description
		updated.KmFrom = input.KmFrom
		updated.KmTo = input.KmTo
		updated.Deadline = dateOnly(input.Deadline)
		updated.Comments = input.Comments
		updated.Status = input.Status
		if txErr = s.jobs.Save(ctx, tx, &updated); txErr != nil {
			return txErr
		}
		after = &updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Each significant field change produces its own notification; a save
	// with no changes produces none.
	if before.Status != after.Status {
		msg := s.format.StatusChanged(jobID, after.Status)
		if _, err := s.notify.Enqueue(ctx, types.EventJobStatusChanged, before.PrincipalID, msg, ""); err != nil {
			return after, fmt.Errorf("enqueue status-changed notification: %w", err)
		}
	}
	if before.ContractorID != after.ContractorID {
		tradeName := ""
		if before.Trade != nil {
			tradeName = before.Trade.Name
		}
		msg := s.format.ContractorChanged(jobID, tradeName)
		if _, err := s.notify.Enqueue(ctx, types.EventJobContractorChanged, after.ContractorID, msg, ""); err != nil {
			return after, fmt.Errorf("enqueue contractor-changed notification: %w", err)
		}
	}
	return after, nil
}

func (s *jobService) GetByID(ctx context.Context, jobID uuid.UUID) (*types.Job, []*types.JobFile, error) {
	job, err := s.jobs.GetByID(ctx, nil, jobID)
	if err != nil {
		return nil, nil, err
	}
	attachments, err := s.files.ListByJobID(ctx, nil, jobID)
	if err != nil {
		return nil, nil, err
	}
	return job, attachments, nil
}

func (s *jobService) GetFile(ctx context.Context, jobID, fileID uuid.UUID) (*types.JobFile, error) {
	file, err := s.files.GetByID(ctx, nil, fileID)
	if err != nil {
		return nil, err
	}
	if file.JobID != jobID {
		return nil, gorm.ErrRecordNotFound
	}
	return file, nil
}

func (s *jobService) List(ctx context.Context, orderBy string, page int) (*JobPage, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * JobsPerPage
	jobs, total, err := s.jobs.List(ctx, nil, orderBy, offset, JobsPerPage)
	if err != nil {
		return nil, err
	}
	return &JobPage{Jobs: jobs, Page: page, PerPage: JobsPerPage, Total: total}, nil
}

func (s *jobService) ListForUser(ctx context.Context, userID uuid.UUID, role string, statusFilter string) ([]*types.Job, error) {
	if role != repos.JobRolePrincipal && role != repos.JobRoleContractor {
		return nil, NewValidationError("role", fmt.Sprintf("unknown role %q", role))
	}

	filter := repos.JobListFilter{UserID: userID, Role: role}
	switch statusFilter {
	case "":
		// no status narrowing
	case "in_progress":
		filter.Statuses = types.InProgressStatuses
	default:
		status := types.JobStatus(statusFilter)
		if !status.Valid() {
			return nil, NewValidationError("status", fmt.Sprintf("unknown job status %q", statusFilter))
		}
		filter.Statuses = []types.JobStatus{status}
	}
	return s.jobs.ListForUser(ctx, nil, filter)
}

func (s *jobService) storeFile(ctx context.Context, tx *gorm.DB, jobID uuid.UUID, upload *JobFileUpload) error {
	if upload.Name == "" || len(upload.Data) == 0 {
		return NewValidationError("file", "an empty file was given")
	}
	storageKey := fmt.Sprintf("%s_%s", jobID, filepath.Base(upload.Name))
	if err := os.MkdirAll(s.uploadsDir, 0o755); err != nil {
		return fmt.Errorf("create uploads dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.uploadsDir, storageKey), upload.Data, 0o644); err != nil {
		return fmt.Errorf("store job file: %w", err)
	}
	file := &types.JobFile{
		ID:           uuid.New(),
		JobID:        jobID,
		OriginalName: filepath.Base(upload.Name),
		SizeBytes:    int64(len(upload.Data)),
		StorageKey:   storageKey,
		CreatedAt:    s.now(),
	}
	_, err := s.files.Create(ctx, tx, file)
	return err
}
