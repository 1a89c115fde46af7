package session

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockManager is a mock implementation of the Manager interface
type MockManager struct {
	mock.Mock
}

func (m *MockManager) Create(ctx context.Context, seed *int64) (*Session, error) {
	args := m.Called(ctx, seed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Session), args.Error(1)
}

func (m *MockManager) Do(ctx context.Context, id uuid.UUID, fn func(ctx context.Context, s *Session) error) error {
	args := m.Called(ctx, id, fn)
	return args.Error(0)
}

func (m *MockManager) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockManager) IDs() []uuid.UUID {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]uuid.UUID)
}

func (m *MockManager) Len() int {
	args := m.Called()
	return args.Int(0)
}

func (m *MockManager) Close(ctx context.Context) {
	m.Called(ctx)
}
