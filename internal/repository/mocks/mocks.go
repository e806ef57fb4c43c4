package mocks

import (
	"context"

	"github.com/jha-shubham/PRDs/internal/domain/activity"
	"github.com/jha-shubham/PRDs/internal/domain/prd"
	"github.com/stretchr/testify/mock"
)

// PRDRepository is a mock for prd.Repository.
type PRDRepository struct {
	mock.Mock
}

func (m *PRDRepository) Create(ctx context.Context, p *prd.PRD) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *PRDRepository) Get(ctx context.Context, id string) (*prd.PRD, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*prd.PRD); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PRDRepository) Update(ctx context.Context, p *prd.PRD) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *PRDRepository) List(ctx context.Context, opts prd.ListOptions) ([]prd.PRD, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]prd.PRD); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PRDRepository) Search(ctx context.Context, query string, opts prd.SearchOptions) ([]prd.PRD, error) {
	args := m.Called(ctx, query, opts)
	if list, ok := args.Get(0).([]prd.PRD); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
