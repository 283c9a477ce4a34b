package repositoryImp

import (
	"context"
	"time"

	"gorm.io/gorm"

	"fieldbook/entities"
	"fieldbook/pkg/apperr"
	"fieldbook/pkg/cost/repository"
)

type costRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.CostRepository { return &costRepo{db: db} }

func (r *costRepo) Append(ctx context.Context, c *entities.CostRecord) error {
	c.CostID = 0
	c.CreatedAt = c.CreatedAt.UTC()
	return apperr.Persistence("append cost", r.db.WithContext(ctx).Create(c).Error)
}

func (r *costRepo) ListByField(ctx context.Context, fieldID uint, from, to *time.Time) ([]entities.CostRecord, error) {
	q := r.db.WithContext(ctx).Model(&entities.CostRecord{}).Where("field_id = ?", fieldID)
	if from != nil {
		q = q.Where("created_at >= ?", from.UTC())
	}
	if to != nil {
		q = q.Where("created_at < ?", to.UTC())
	}
	var list []entities.CostRecord
	err := q.Order("created_at ASC, cost_id ASC").Find(&list).Error
	return list, apperr.Persistence("list costs", err)
}
