package interfaces

import (
	"context"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/giygas/vaccines-api/catalog"
	"github.com/giygas/vaccines-api/dataset/entities"
)

// MockDataStore implements DataStore interface for testing
type MockDataStore struct {
	cat         *catalog.Catalog
	report      *DataQualityReport
	source      string
	lastUpdated time.Time
	updating    bool
}

func (m *MockDataStore) GetCatalog() *catalog.Catalog { return m.cat }
func (m *MockDataStore) GetReport() *DataQualityReport { return m.report }
func (m *MockDataStore) GetSource() string { return m.source }
func (m *MockDataStore) GetLastUpdated() time.Time { return m.lastUpdated }
func (m *MockDataStore) IsUpdating() bool { return m.updating }
func (m *MockDataStore) GetServerStartTime() time.Time { return time.Time{} }
func (m *MockDataStore) EndUpdate() { m.updating = false }
func (m *MockDataStore) BeginUpdate() bool {
	if m.updating {
		return false
	}
	m.updating = true
	return true
}

func (m *MockDataStore) UpdateData(cat *catalog.Catalog, report *DataQualityReport, source string) {
	m.cat = cat
	m.report = report
	m.source = source
	m.lastUpdated = time.Now()
}

// MockLoader implements DatasetLoader interface for testing
type MockLoader struct {
	dataset *entities.Dataset
	err     error
}

func (m *MockLoader) Load(ctx context.Context) (*entities.Dataset, error) {
	return m.dataset, m.err
}

func (m *MockLoader) Source() string { return "mock" }

// MockScheduler implements Scheduler interface for testing
type MockScheduler struct {
	started bool
}

func (m *MockScheduler) Start() error {
	m.started = true
	return nil
}

func (m *MockScheduler) Stop() { m.started = false }

// MockHealthChecker implements HealthChecker interface for testing
type MockHealthChecker struct {
	status  string
	details map[string]any
	code    int
}

func (m *MockHealthChecker) HealthCheck() (string, map[string]any, int) {
	return m.status, m.details, m.code
}

func (m *MockHealthChecker) CalculateNextUpdate() time.Time {
	return time.Now().Add(1 * time.Hour)
}

// MockDataValidator implements DataValidator interface for testing
type MockDataValidator struct {
	shouldFail bool
}

func (m *MockDataValidator) ValidateDataIntegrity(ds *entities.Dataset) error {
	if m.shouldFail {
		return fmt.Errorf("validation failed")
	}
	return nil
}

func (m *MockDataValidator) ReportDataQuality(ds *entities.Dataset) *DataQualityReport {
	return &DataQualityReport{}
}

func (m *MockDataValidator) ValidateKeyword(input string) error {
	if m.shouldFail {
		return fmt.Errorf("input validation failed")
	}
	return nil
}

func (m *MockDataValidator) ValidateLetter(input string) error {
	return m.ValidateKeyword(input)
}

func (m *MockDataValidator) ValidateID(input string) (int, error) {
	if m.shouldFail {
		return -1, fmt.Errorf("id validation failed")
	}
	val, err := strconv.Atoi(input)
	if err != nil {
		return -1, fmt.Errorf("input is not a number")
	}
	return val, nil
}

// Example of how the interfaces enable dependency injection
type Service struct {
	dataStore DataStore
	loader    DatasetLoader
}

func NewService(dataStore DataStore, loader DatasetLoader) *Service {
	return &Service{dataStore: dataStore, loader: loader}
}

func (s *Service) Reload(ctx context.Context) error {
	if !s.dataStore.BeginUpdate() {
		return fmt.Errorf("update already in progress")
	}
	defer s.dataStore.EndUpdate()

	ds, err := s.loader.Load(ctx)
	if err != nil {
		return err
	}
	s.dataStore.UpdateData(catalog.New(ds), &DataQualityReport{}, s.loader.Source())
	return nil
}

func TestServiceWithDependencyInjection(t *testing.T) {
	store := &MockDataStore{}
	loader := &MockLoader{dataset: &entities.Dataset{
		Pathogens: []entities.Pathogen{{PathogenID: 1, Name: "Influenza virus"}},
	}}

	service := NewService(store, loader)
	if err := service.Reload(context.Background()); err != nil {
		t.Fatalf("Reload returned error: %v", err)
	}

	if got := store.GetCatalog().Counts()["pathogens"]; got != 1 {
		t.Errorf("Expected 1 pathogen, got %d", got)
	}
	if store.GetSource() != "mock" {
		t.Errorf("Expected source mock, got %q", store.GetSource())
	}
	if store.IsUpdating() {
		t.Error("Reload should end the update")
	}

	loader.err = fmt.Errorf("broken file")
	if err := service.Reload(context.Background()); err == nil {
		t.Error("Expected loader error to be returned")
	}
}

func TestDataQualityReportHasIssues(t *testing.T) {
	tests := []struct {
		name     string
		report   *DataQualityReport
		expected bool
	}{
		{"nil report", nil, false},
		{"empty report", &DataQualityReport{}, false},
		{"duplicates", &DataQualityReport{DuplicateVaccineIDs: []int{3}}, true},
		{"dangling refs", &DataQualityReport{DanglingLicenserRefs: []int{1}}, true},
		{"unknown profile types", &DataQualityReport{UnknownProfileTypes: []string{"XYZ"}}, true},
		{"counts", &DataQualityReport{PipelineWithoutPathogen: 2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.report.HasIssues(); got != tt.expected {
				t.Errorf("HasIssues() = %v, want %v", got, tt.expected)
			}
		})
	}
}

// Compile-time checks to ensure our implementations implement the interfaces
func TestCompileTimeChecks(t *testing.T) {
	// These will fail to compile if the implementations don't match the interfaces
	var _ DataStore = (*MockDataStore)(nil)
	var _ DatasetLoader = (*MockLoader)(nil)
	var _ Scheduler = (*MockScheduler)(nil)
	var _ HealthChecker = (*MockHealthChecker)(nil)
	var _ DataValidator = (*MockDataValidator)(nil)
}
