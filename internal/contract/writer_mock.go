package contract

import (
	"time"

	"github.com/huangsam/spans/schema"
	"github.com/stretchr/testify/mock"
)

// MockResultWriter is a mock implementation of ResultWriter for testing.
type MockResultWriter struct {
	mock.Mock
}

var _ ResultWriter = &MockResultWriter{} // Compile-time check

// WriteIntervals implements the ResultWriter interface.
func (m *MockResultWriter) WriteIntervals(title string, tr schema.TimeRange, cfg *Config, duration time.Duration) error {
	args := m.Called(title, tr, cfg, duration)
	return args.Error(0)
}

// WriteSquares implements the ResultWriter interface.
func (m *MockResultWriter) WriteSquares(result schema.SquaresResult, cfg *Config, duration time.Duration) error {
	args := m.Called(result, cfg, duration)
	return args.Error(0)
}

// WriteCheck implements the ResultWriter interface.
func (m *MockResultWriter) WriteCheck(summary schema.CheckSummary, cfg *Config, duration time.Duration) error {
	args := m.Called(summary, cfg, duration)
	return args.Error(0)
}
