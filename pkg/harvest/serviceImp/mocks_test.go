package serviceImp

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fieldbook/entities"
	fieldsvc "fieldbook/pkg/field/service"
	"fieldbook/pkg/geomath"
)

type mockYields struct{ mock.Mock }

func (m *mockYields) Append(ctx context.Context, y *entities.YieldRecord) error {
	args := m.Called(ctx, y)
	if args.Error(0) == nil {
		y.YieldID = 11
	}
	return args.Error(0)
}

func (m *mockYields) FindByKey(ctx context.Context, key string) (*entities.YieldRecord, error) {
	args := m.Called(ctx, key)
	y, _ := args.Get(0).(*entities.YieldRecord)
	return y, args.Error(1)
}

func (m *mockYields) ListByField(ctx context.Context, fieldID uint) ([]entities.YieldRecord, error) {
	args := m.Called(ctx, fieldID)
	l, _ := args.Get(0).([]entities.YieldRecord)
	return l, args.Error(1)
}

func (m *mockYields) ListAll(ctx context.Context) ([]entities.YieldRecord, error) {
	args := m.Called(ctx)
	l, _ := args.Get(0).([]entities.YieldRecord)
	return l, args.Error(1)
}

type mockStatus struct{ mock.Mock }

func (m *mockStatus) Append(ctx context.Context, ev *entities.StatusEvent) (uint, error) {
	args := m.Called(ctx, ev)
	return uint(args.Int(0)), args.Error(1)
}

func (m *mockStatus) CurrentStatus(ctx context.Context, fieldID uint) (entities.StatusEvent, bool, error) {
	args := m.Called(ctx, fieldID)
	return args.Get(0).(entities.StatusEvent), args.Bool(1), args.Error(2)
}

func (m *mockStatus) History(ctx context.Context, fieldID uint) ([]entities.StatusEvent, error) {
	args := m.Called(ctx, fieldID)
	l, _ := args.Get(0).([]entities.StatusEvent)
	return l, args.Error(1)
}

func (m *mockStatus) CurrentAll(ctx context.Context) (map[uint]entities.StatusEvent, error) {
	args := m.Called(ctx)
	l, _ := args.Get(0).(map[uint]entities.StatusEvent)
	return l, args.Error(1)
}

type mockEvents struct{ mock.Mock }

func (m *mockEvents) Append(ctx context.Context, ev *entities.StatusEvent) error {
	return m.Called(ctx, ev).Error(0)
}

func (m *mockEvents) Latest(ctx context.Context, fieldID uint) (*entities.StatusEvent, error) {
	args := m.Called(ctx, fieldID)
	ev, _ := args.Get(0).(*entities.StatusEvent)
	return ev, args.Error(1)
}

func (m *mockEvents) ListByField(ctx context.Context, fieldID uint) ([]entities.StatusEvent, error) {
	args := m.Called(ctx, fieldID)
	l, _ := args.Get(0).([]entities.StatusEvent)
	return l, args.Error(1)
}

func (m *mockEvents) ListAll(ctx context.Context) ([]entities.StatusEvent, error) {
	args := m.Called(ctx)
	l, _ := args.Get(0).([]entities.StatusEvent)
	return l, args.Error(1)
}

func (m *mockEvents) FindByHarvestKey(ctx context.Context, key string) (*entities.StatusEvent, error) {
	args := m.Called(ctx, key)
	ev, _ := args.Get(0).(*entities.StatusEvent)
	return ev, args.Error(1)
}

type mockFields struct{ mock.Mock }

func (m *mockFields) Preview(ring []geomath.Point) (fieldsvc.Geometry, error) {
	args := m.Called(ring)
	return args.Get(0).(fieldsvc.Geometry), args.Error(1)
}

func (m *mockFields) CreateFromRing(ctx context.Context, d fieldsvc.Draft) (*entities.Field, error) {
	args := m.Called(ctx, d)
	f, _ := args.Get(0).(*entities.Field)
	return f, args.Error(1)
}

func (m *mockFields) Get(ctx context.Context, id uint) (*entities.Field, error) {
	args := m.Called(ctx, id)
	f, _ := args.Get(0).(*entities.Field)
	return f, args.Error(1)
}

func (m *mockFields) List(ctx context.Context) ([]entities.Field, error) {
	args := m.Called(ctx)
	l, _ := args.Get(0).([]entities.Field)
	return l, args.Error(1)
}

func (m *mockFields) Patch(ctx context.Context, id uint, p fieldsvc.Patch) (*entities.Field, error) {
	args := m.Called(ctx, id, p)
	f, _ := args.Get(0).(*entities.Field)
	return f, args.Error(1)
}

func (m *mockFields) UpdateCrop(ctx context.Context, id uint, crop string) error {
	return m.Called(ctx, id, crop).Error(0)
}
