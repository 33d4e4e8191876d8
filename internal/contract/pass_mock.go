package contract

import (
	"context"

	"github.com/huangsam/spans/schema"
	"github.com/stretchr/testify/mock"
)

// MockPassProvider is a mock implementation of PassProvider for testing.
type MockPassProvider struct {
	mock.Mock
}

var _ PassProvider = &MockPassProvider{} // Compile-time check

// Passes implements the PassProvider interface.
func (m *MockPassProvider) Passes(ctx context.Context, lat, lon float64, n int) (schema.TimeRange, error) {
	args := m.Called(ctx, lat, lon, n)
	tr, _ := args.Get(0).(schema.TimeRange)
	return tr, args.Error(1)
}
