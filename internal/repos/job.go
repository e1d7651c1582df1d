package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jobbook/jobbook-backend/internal/platform/logger"
	"github.com/jobbook/jobbook-backend/internal/types"
)

// JobListFilter narrows the my-jobs listing. Role is explicit: the caller
// states whether the user is queried as principal or contractor.
type JobListFilter struct {
	UserID   uuid.UUID
	Role     string // "principal" or "contractor"
	Statuses []types.JobStatus
}

const (
	JobRolePrincipal  = "principal"
	JobRoleContractor = "contractor"
)

type JobRepo interface {
	Create(ctx context.Context, tx *gorm.DB, job *types.Job) (*types.Job, error)
	GetByID(ctx context.Context, tx *gorm.DB, jobID uuid.UUID) (*types.Job, error)
	Save(ctx context.Context, tx *gorm.DB, job *types.Job) error
	List(ctx context.Context, tx *gorm.DB, orderBy string, offset, limit int) ([]*types.Job, int64, error)
	ListForUser(ctx context.Context, tx *gorm.DB, filter JobListFilter) ([]*types.Job, error)
	ListByDeadline(ctx context.Context, tx *gorm.DB, deadline time.Time, excludeStatuses []types.JobStatus) ([]*types.Job, error)
	ListCreatedBetween(ctx context.Context, tx *gorm.DB, from, to time.Time) ([]*types.Job, error)
}

type jobRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewJobRepo(db *gorm.DB, baseLog *logger.Logger) JobRepo {
	return &jobRepo{db: db, log: baseLog.With("repo", "JobRepo")}
}

func (r *jobRepo) Create(ctx context.Context, tx *gorm.DB, job *types.Job) (*types.Job, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(job).Error; err != nil {
		return nil, err
	}
	return job, nil
}

func (r *jobRepo) GetByID(ctx context.Context, tx *gorm.DB, jobID uuid.UUID) (*types.Job, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var job types.Job
	if err := transaction.WithContext(ctx).
		Preload("Principal").
		Preload("Contractor").
		Preload("Trade").
		Where("id = ?", jobID).
		First(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepo) Save(ctx context.Context, tx *gorm.DB, job *types.Job) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Job{}).
		Where("id = ?", job.ID).
		Updates(map[string]interface{}{
			"contractor_id": job.ContractorID,
			"kind":          job.Kind,
			"description":   job.Description,
			"km_from":       job.KmFrom,
			"km_to":         job.KmTo,
			"deadline":      job.Deadline,
			"comments":      job.Comments,
			"status":        job.Status,
		}).Error
}

var allowedJobOrderings = map[string]string{
	"created":   "created ASC",
	"-created":  "created DESC",
	"deadline":  "deadline ASC",
	"-deadline": "deadline DESC",
	"status":    "status ASC",
	"-status":   "status DESC",
}

func (r *jobRepo) List(ctx context.Context, tx *gorm.DB, orderBy string, offset, limit int) ([]*types.Job, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	ordering, ok := allowedJobOrderings[orderBy]
	if !ok {
		ordering = allowedJobOrderings["-created"]
	}

	var total int64
	if err := transaction.WithContext(ctx).
		Model(&types.Job{}).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var results []*types.Job
	if err := transaction.WithContext(ctx).
		Preload("Principal").
		Preload("Contractor").
		Preload("Trade").
		Order(ordering).
		Offset(offset).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (r *jobRepo) ListForUser(ctx context.Context, tx *gorm.DB, filter JobListFilter) ([]*types.Job, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(ctx).
		Preload("Trade").
		Order("created DESC")

	switch filter.Role {
	case JobRoleContractor:
		q = q.Where("contractor_id = ?", filter.UserID)
	default:
		q = q.Where("principal_id = ?", filter.UserID)
	}
	if len(filter.Statuses) > 0 {
		q = q.Where("status IN ?", filter.Statuses)
	}

	var results []*types.Job
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *jobRepo) ListByDeadline(ctx context.Context, tx *gorm.DB, deadline time.Time, excludeStatuses []types.JobStatus) ([]*types.Job, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(ctx).
		Where("deadline = ?", deadline).
		Order("created ASC")
	if len(excludeStatuses) > 0 {
		q = q.Where("status NOT IN ?", excludeStatuses)
	}

	var results []*types.Job
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *jobRepo) ListCreatedBetween(ctx context.Context, tx *gorm.DB, from, to time.Time) ([]*types.Job, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Job
	if err := transaction.WithContext(ctx).
		Where("created >= ? AND created < ?", from, to).
		Order("created ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
