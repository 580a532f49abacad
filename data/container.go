// Package data provides thread-safe data storage for the vaccines API.
// It includes the DataContainer struct with atomic operations for zero-downtime
// reloads and thread-safe access to the indexed catalog.
package data

import (
	"sync/atomic"
	"time"

	"github.com/giygas/vaccines-api/catalog"
	"github.com/giygas/vaccines-api/interfaces"
	"github.com/giygas/vaccines-api/logging"
)

// Compile-time check to ensure DataContainer implements DataStore
var _ interfaces.DataStore = (*DataContainer)(nil)

// DataContainer holds the current snapshot with atomic pointers for zero-downtime updates
type DataContainer struct {
	catalog         atomic.Pointer[catalog.Catalog]
	report          atomic.Pointer[interfaces.DataQualityReport]
	source          atomic.Value // string
	lastUpdated     atomic.Value // time.Time
	updating        atomic.Bool
	serverStartTime atomic.Value // time.Time
}

// NewDataContainer creates a new DataContainer with an empty catalog
func NewDataContainer() *DataContainer {
	dc := &DataContainer{}
	dc.catalog.Store(catalog.New(nil))
	dc.report.Store(&interfaces.DataQualityReport{})
	dc.source.Store("")
	dc.lastUpdated.Store(time.Time{})
	dc.serverStartTime.Store(time.Time{})
	return dc
}

// GetCatalog returns the current catalog snapshot. Callers keep using the
// snapshot they got even if a reload swaps it meanwhile.
func (dc *DataContainer) GetCatalog() *catalog.Catalog {
	if c := dc.catalog.Load(); c != nil {
		return c
	}

	logging.Warn("Catalog is empty or invalid")
	return catalog.New(nil)
}

// GetReport returns the data quality report of the current snapshot
func (dc *DataContainer) GetReport() *interfaces.DataQualityReport {
	if r := dc.report.Load(); r != nil {
		return r
	}
	return &interfaces.DataQualityReport{}
}

// GetSource returns where the current snapshot was loaded from
func (dc *DataContainer) GetSource() string {
	if v, ok := dc.source.Load().(string); ok {
		return v
	}
	return ""
}

// GetLastUpdated returns the timestamp of the last data update
func (dc *DataContainer) GetLastUpdated() time.Time {
	if v := dc.lastUpdated.Load(); v != nil {
		if lastUpdated, ok := v.(time.Time); ok {
			return lastUpdated
		}
	}

	logging.Warn("Could not get the last updated value")
	return time.Time{}
}

// IsUpdating returns true if a data update is currently in progress
func (dc *DataContainer) IsUpdating() bool {
	return dc.updating.Load()
}

// SetServerStartTime sets the server start time
func (dc *DataContainer) SetServerStartTime(startTime time.Time) {
	dc.serverStartTime.Store(startTime)
}

// GetServerStartTime returns the server start time
func (dc *DataContainer) GetServerStartTime() time.Time {
	if v := dc.serverStartTime.Load(); v != nil {
		if startTime, ok := v.(time.Time); ok {
			return startTime
		}
	}

	logging.Warn("Could not get the server start time value")
	return time.Time{}
}

// UpdateData atomically replaces the snapshot
func (dc *DataContainer) UpdateData(cat *catalog.Catalog, report *interfaces.DataQualityReport, source string) {
	if cat == nil {
		cat = catalog.New(nil)
	}
	if report == nil {
		report = &interfaces.DataQualityReport{}
	}

	// Atomic swap (zero downtime replacement)
	dc.catalog.Store(cat)
	dc.report.Store(report)
	dc.source.Store(source)
	dc.lastUpdated.Store(time.Now())
}

// BeginUpdate marks the start of a data update operation
// Returns true if update can proceed, false if another update is in progress
func (dc *DataContainer) BeginUpdate() bool {
	return dc.updating.CompareAndSwap(false, true)
}

// EndUpdate marks the end of a data update operation
func (dc *DataContainer) EndUpdate() {
	dc.updating.Store(false)
}
