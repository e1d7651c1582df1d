package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jobbook/jobbook-backend/internal/platform/logger"
	"github.com/jobbook/jobbook-backend/internal/types"
)

type JobFileRepo interface {
	Create(ctx context.Context, tx *gorm.DB, file *types.JobFile) (*types.JobFile, error)
	GetByID(ctx context.Context, tx *gorm.DB, fileID uuid.UUID) (*types.JobFile, error)
	ListByJobID(ctx context.Context, tx *gorm.DB, jobID uuid.UUID) ([]*types.JobFile, error)
	JobIDsWithFiles(ctx context.Context, tx *gorm.DB, jobIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

type jobFileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewJobFileRepo(db *gorm.DB, baseLog *logger.Logger) JobFileRepo {
	return &jobFileRepo{db: db, log: baseLog.With("repo", "JobFileRepo")}
}

func (r *jobFileRepo) Create(ctx context.Context, tx *gorm.DB, file *types.JobFile) (*types.JobFile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(file).Error; err != nil {
		return nil, err
	}
	return file, nil
}

func (r *jobFileRepo) GetByID(ctx context.Context, tx *gorm.DB, fileID uuid.UUID) (*types.JobFile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var file types.JobFile
	if err := transaction.WithContext(ctx).
		Where("id = ?", fileID).
		First(&file).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *jobFileRepo) ListByJobID(ctx context.Context, tx *gorm.DB, jobID uuid.UUID) ([]*types.JobFile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.JobFile
	if err := transaction.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *jobFileRepo) JobIDsWithFiles(ctx context.Context, tx *gorm.DB, jobIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	out := make(map[uuid.UUID]bool, len(jobIDs))
	if len(jobIDs) == 0 {
		return out, nil
	}
	var rows []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.JobFile{}).
		Distinct("job_id").
		Where("job_id IN ?", jobIDs).
		Pluck("job_id", &rows).Error; err != nil {
		return nil, err
	}
	for _, id := range rows {
		out[id] = true
	}
	return out, nil
}
