package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"fieldbook/entities"
	"fieldbook/pkg/apperr"
	"fieldbook/pkg/status/repository"
)

type statusRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.StatusRepository { return &statusRepo{db} }

func (r *statusRepo) Append(ctx context.Context, ev *entities.StatusEvent) error {
	ev.EventID = 0
	ev.CreatedAt = ev.CreatedAt.UTC()
	return apperr.Persistence("append status", r.db.WithContext(ctx).Create(ev).Error)
}

// Latest returns gorm.ErrRecordNotFound wrapped as apperr.ErrNotFound when the field has no events.
func (r *statusRepo) Latest(ctx context.Context, fieldID uint) (*entities.StatusEvent, error) {
	var ev entities.StatusEvent
	err := r.db.WithContext(ctx).
		Where("field_id = ?", fieldID).
		Order("created_at DESC, event_id DESC").
		First(&ev).Error
	if err != nil {
		return nil, apperr.Persistence("latest status", err)
	}
	return &ev, nil
}

func (r *statusRepo) ListByField(ctx context.Context, fieldID uint) ([]entities.StatusEvent, error) {
	var list []entities.StatusEvent
	err := r.db.WithContext(ctx).
		Where("field_id = ?", fieldID).
		Order("event_id ASC").
		Find(&list).Error
	return list, apperr.Persistence("list status", err)
}

func (r *statusRepo) ListAll(ctx context.Context) ([]entities.StatusEvent, error) {
	var list []entities.StatusEvent
	err := r.db.WithContext(ctx).Order("event_id ASC").Find(&list).Error
	return list, apperr.Persistence("list all status", err)
}

func (r *statusRepo) FindByHarvestKey(ctx context.Context, key string) (*entities.StatusEvent, error) {
	var ev entities.StatusEvent
	if err := r.db.WithContext(ctx).Where("harvest_key = ?", key).First(&ev).Error; err != nil {
		return nil, apperr.Persistence("find status by harvest key", err)
	}
	return &ev, nil
}
