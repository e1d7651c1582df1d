package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jobbook/jobbook-backend/internal/platform/logger"
	"github.com/jobbook/jobbook-backend/internal/types"
)

type TradeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, trades []*types.Trade) ([]*types.Trade, error)
	GetByID(ctx context.Context, tx *gorm.DB, tradeID uuid.UUID) (*types.Trade, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Trade, error)
}

type tradeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTradeRepo(db *gorm.DB, baseLog *logger.Logger) TradeRepo {
	return &tradeRepo{db: db, log: baseLog.With("repo", "TradeRepo")}
}

func (r *tradeRepo) Create(ctx context.Context, tx *gorm.DB, trades []*types.Trade) ([]*types.Trade, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(trades) == 0 {
		return []*types.Trade{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&trades).Error; err != nil {
		return nil, err
	}
	return trades, nil
}

func (r *tradeRepo) GetByID(ctx context.Context, tx *gorm.DB, tradeID uuid.UUID) (*types.Trade, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var trade types.Trade
	if err := transaction.WithContext(ctx).
		Where("id = ?", tradeID).
		First(&trade).Error; err != nil {
		return nil, err
	}
	return &trade, nil
}

func (r *tradeRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Trade, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Trade
	if err := transaction.WithContext(ctx).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
