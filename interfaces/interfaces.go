// Package interfaces defines core abstractions for the vaccines API
// to improve testability, maintainability, and separation of concerns.
package interfaces

import (
	"context"
	"net/http"
	"time"

	"github.com/giygas/vaccines-api/catalog"
	"github.com/giygas/vaccines-api/dataset/entities"
)

// DataQualityReport provides a summary of data quality issues
type DataQualityReport struct {
	DuplicatePathogenIDs     []int
	DuplicateVaccineIDs      []int
	DuplicateManufacturerIDs []int
	DuplicateLicenserIDs     []int
	DanglingPathogenRefs     []int    // Vaccine ids referencing a missing pathogen
	DanglingManufacturerRefs []int    // Vaccine ids referencing a missing manufacturer
	DanglingLicenserRefs     []int    // Vaccine ids referencing a missing licenser
	VaccineTypeMismatches    []int    // Vaccine ids whose type disagrees with their pathogen count
	UnknownProfileTypes      []string // Profile or licensing date names that are not a licenser acronym
	VaccinesWithoutProfiles  int
	PipelineWithoutPathogen  int // Candidates whose pathogen name matches no pathogen or disease
}

// HasIssues reports whether the report contains anything worth looking at.
func (r *DataQualityReport) HasIssues() bool {
	if r == nil {
		return false
	}
	return len(r.DuplicatePathogenIDs) > 0 || len(r.DuplicateVaccineIDs) > 0 ||
		len(r.DuplicateManufacturerIDs) > 0 || len(r.DuplicateLicenserIDs) > 0 ||
		len(r.DanglingPathogenRefs) > 0 || len(r.DanglingManufacturerRefs) > 0 ||
		len(r.DanglingLicenserRefs) > 0 || len(r.VaccineTypeMismatches) > 0 ||
		len(r.UnknownProfileTypes) > 0 || r.VaccinesWithoutProfiles > 0 ||
		r.PipelineWithoutPathogen > 0
}

// DataStore defines the contract for data storage operations.
// It provides thread-safe access to the indexed catalog
// with atomic operations for zero-downtime updates.
type DataStore interface {
	// Data retrieval methods
	GetCatalog() *catalog.Catalog
	GetReport() *DataQualityReport
	GetSource() string
	GetLastUpdated() time.Time
	IsUpdating() bool
	GetServerStartTime() time.Time

	// Data update methods
	UpdateData(cat *catalog.Catalog, report *DataQualityReport, source string)
	BeginUpdate() bool
	EndUpdate()
}

// DatasetLoader defines the contract for reading the static reference data.
type DatasetLoader interface {
	Load(ctx context.Context) (*entities.Dataset, error)
	Source() string
}

// Scheduler defines the contract for job scheduling and health monitoring.
// It manages data reloads, session cleanup and system health checks.
type Scheduler interface {
	// Lifecycle management
	Start() error
	Stop()
}

// HTTPHandler defines the contract for HTTP request handlers.
// It provides a consistent interface for all API endpoints.
type HTTPHandler interface {
	// Entity pages
	ServePathogen(w http.ResponseWriter, r *http.Request)
	ServePathogenVaccines(w http.ResponseWriter, r *http.Request)
	ServePathogenCandidates(w http.ResponseWriter, r *http.Request)
	ServeVaccine(w http.ResponseWriter, r *http.Request)
	ServeVaccineByName(w http.ResponseWriter, r *http.Request)
	ServeVaccinePathogens(w http.ResponseWriter, r *http.Request)
	ServeVaccineManufacturers(w http.ResponseWriter, r *http.Request)
	ServeVaccineLicensers(w http.ResponseWriter, r *http.Request)
	ServeManufacturer(w http.ResponseWriter, r *http.Request)
	ServeManufacturerByName(w http.ResponseWriter, r *http.Request)
	ServeManufacturerVaccines(w http.ResponseWriter, r *http.Request)
	ServeManufacturerPipeline(w http.ResponseWriter, r *http.Request)
	ServeLicenser(w http.ResponseWriter, r *http.Request)
	ServeLicenserVaccines(w http.ResponseWriter, r *http.Request)
	ServeLicenserByAcronym(w http.ResponseWriter, r *http.Request)
	ServeLicenserVaccinesByAcronym(w http.ResponseWriter, r *http.Request)

	// Browse tabs
	ServeTabs(w http.ResponseWriter, r *http.Request)
	Browse(w http.ResponseWriter, r *http.Request)

	// Comparison
	ServeCompareFields(w http.ResponseWriter, r *http.Request)
	BuildCompareTable(w http.ResponseWriter, r *http.Request)
	CreateCompareSession(w http.ResponseWriter, r *http.Request)
	GetCompareSession(w http.ResponseWriter, r *http.Request)
	DeleteCompareSession(w http.ResponseWriter, r *http.Request)
	ToggleSessionVaccine(w http.ResponseWriter, r *http.Request)
	ToggleSessionLicenser(w http.ResponseWriter, r *http.Request)
	AddSessionField(w http.ResponseWriter, r *http.Request)
	RemoveSessionField(w http.ResponseWriter, r *http.Request)
	SetSessionFields(w http.ResponseWriter, r *http.Request)
	ServeSessionTable(w http.ResponseWriter, r *http.Request)

	// This will stay in all versions
	HealthCheck(w http.ResponseWriter, r *http.Request)
}

// HealthChecker defines the contract for health check functionality.
// It provides system health monitoring and reporting.
type HealthChecker interface {
	// HealthCheck returns current system health status and the HTTP status code to answer with
	HealthCheck() (status string, details map[string]any, httpStatus int)

	// CalculateNextUpdate returns the next scheduled reload time
	CalculateNextUpdate() time.Time
}

// DataValidator defines the contract for data validation operations.
// It ensures data integrity and consistency.
type DataValidator interface {
	// ValidateDataIntegrity fails on problems that make lookups ambiguous
	ValidateDataIntegrity(ds *entities.Dataset) error

	// ReportDataQuality generates a data quality report with all issues found
	ReportDataQuality(ds *entities.Dataset) *DataQualityReport

	// ValidateKeyword validates a keyword filter
	ValidateKeyword(input string) error

	// ValidateLetter validates an alphabet filter
	ValidateLetter(input string) error

	// ValidateID validates a numeric entity id from a path parameter
	ValidateID(input string) (int, error)
}
