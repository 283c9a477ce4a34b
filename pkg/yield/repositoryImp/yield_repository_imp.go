package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"fieldbook/entities"
	"fieldbook/pkg/apperr"
	"fieldbook/pkg/yield/repository"
)

type yieldRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.YieldRepository { return &yieldRepo{db} }

func (r *yieldRepo) Append(ctx context.Context, y *entities.YieldRecord) error {
	y.YieldID = 0
	y.CreatedAt = y.CreatedAt.UTC()
	return apperr.Persistence("append yield", r.db.WithContext(ctx).Create(y).Error)
}

func (r *yieldRepo) FindByKey(ctx context.Context, key string) (*entities.YieldRecord, error) {
	var y entities.YieldRecord
	if err := r.db.WithContext(ctx).Where("idempotency_key = ?", key).First(&y).Error; err != nil {
		return nil, apperr.Persistence("find yield by key", err)
	}
	return &y, nil
}

func (r *yieldRepo) ListByField(ctx context.Context, fieldID uint) ([]entities.YieldRecord, error) {
	var list []entities.YieldRecord
	err := r.db.WithContext(ctx).
		Where("field_id = ?", fieldID).
		Order("created_at ASC, yield_id ASC").
		Find(&list).Error
	return list, apperr.Persistence("list yields", err)
}

func (r *yieldRepo) ListAll(ctx context.Context) ([]entities.YieldRecord, error) {
	var list []entities.YieldRecord
	err := r.db.WithContext(ctx).Order("field_id ASC, created_at ASC, yield_id ASC").Find(&list).Error
	return list, apperr.Persistence("list all yields", err)
}
