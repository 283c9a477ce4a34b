package repository

import (
	"context"

	"fieldbook/entities"
)

type FieldRepository interface {
	Create(ctx context.Context, f *entities.Field) error
	FindByID(ctx context.Context, id uint) (*entities.Field, error)
	List(ctx context.Context) ([]entities.Field, error)
	Update(ctx context.Context, f *entities.Field) error
	UpdateCrop(ctx context.Context, id uint, crop string) error
}
