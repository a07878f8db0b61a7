package runstore

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/geoqa/geoqa/internal/contract"
	"github.com/geoqa/geoqa/schema"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetRunStore implements the StoreManager interface.
func (m *MockStoreManager) GetRunStore() contract.RunStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.RunStore)
	return store
}

// MockRunStore is a mock implementation of RunStore for testing.
type MockRunStore struct {
	mock.Mock
}

var _ contract.RunStore = &MockRunStore{} // Compile-time check

// BeginRun implements the RunStore interface.
func (m *MockRunStore) BeginRun(startTime time.Time, dataset, source, contentHash string) (string, error) {
	args := m.Called(startTime, dataset, source, contentHash)
	return args.String(0), args.Error(1)
}

// FinishRun implements the RunStore interface.
func (m *MockRunStore) FinishRun(runID string, endTime time.Time, result *schema.AssessmentResult) error {
	args := m.Called(runID, endTime, result)
	return args.Error(0)
}

// RecordChecks implements the RunStore interface.
func (m *MockRunStore) RecordChecks(runID string, checks []schema.CheckResult) error {
	args := m.Called(runID, checks)
	return args.Error(0)
}

// ListRuns implements the RunStore interface.
func (m *MockRunStore) ListRuns(dataset string, limit int) ([]schema.RunRecord, error) {
	args := m.Called(dataset, limit)
	records, _ := args.Get(0).([]schema.RunRecord)
	return records, args.Error(1)
}

// GetAllRuns implements the RunStore interface.
func (m *MockRunStore) GetAllRuns() ([]schema.RunRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.RunRecord)
	return records, args.Error(1)
}

// GetAllRunChecks implements the RunStore interface.
func (m *MockRunStore) GetAllRunChecks() ([]schema.RunCheckRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.RunCheckRecord)
	return records, args.Error(1)
}

// GetStatus implements the RunStore interface.
func (m *MockRunStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	status, _ := args.Get(0).(schema.StoreStatus)
	return status, args.Error(1)
}

// Close implements the RunStore interface.
func (m *MockRunStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
