package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"fieldbook/entities"
	"fieldbook/pkg/apperr"
	"fieldbook/pkg/field/repository"
)

type fieldRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.FieldRepository { return &fieldRepo{db} }

func (r *fieldRepo) Create(ctx context.Context, f *entities.Field) error {
	return apperr.Persistence("create field", r.db.WithContext(ctx).Create(f).Error)
}

func (r *fieldRepo) FindByID(ctx context.Context, id uint) (*entities.Field, error) {
	var f entities.Field
	if err := r.db.WithContext(ctx).Where("field_id = ?", id).First(&f).Error; err != nil {
		return nil, apperr.Persistence("find field", err)
	}
	return &f, nil
}

func (r *fieldRepo) List(ctx context.Context) ([]entities.Field, error) {
	var list []entities.Field
	err := r.db.WithContext(ctx).Order("field_id ASC").Find(&list).Error
	return list, apperr.Persistence("list fields", err)
}

// Update writes the editable columns only. The ring and centroid never change,
// and current_crop is written by UpdateCrop alone.
func (r *fieldRepo) Update(ctx context.Context, f *entities.Field) error {
	res := r.db.WithContext(ctx).Model(f).
		Select("name", "soil", "notes", "area_ha", "updated_at").
		Updates(f)
	if res.Error != nil {
		return apperr.Persistence("update field", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.Persistence("update field", gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *fieldRepo) UpdateCrop(ctx context.Context, id uint, crop string) error {
	res := r.db.WithContext(ctx).Model(&entities.Field{}).
		Where("field_id = ?", id).
		Update("current_crop", crop)
	if res.Error != nil {
		return apperr.Persistence("update field crop", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.Persistence("update field crop", gorm.ErrRecordNotFound)
	}
	return nil
}
