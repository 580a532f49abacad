// Package health derives the service health from the current dataset snapshot.
package health

import (
	"math"
	"net/http"
	"slices"
	"time"

	"github.com/giygas/vaccines-api/interfaces"
)

const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"

	// Grace period on top of the longest gap between two scheduled reloads
	staleGrace = time.Hour
)

var _ interfaces.HealthChecker = (*HealthCheckerImpl)(nil)

// HealthCheckerImpl implements the interfaces.HealthChecker interface
type HealthCheckerImpl struct {
	dataStore   interfaces.DataStore
	reloadTimes []time.Duration // offsets from midnight, sorted
	reloading   bool            // whether the dataset is reloaded from disk at all
	now         func() time.Time
}

// NewHealthChecker creates a health checker. reloadTimes are the daily HH:MM
// reload times; when reloading is false the bundled seed never goes stale.
func NewHealthChecker(dataStore interfaces.DataStore, reloadTimes []string, reloading bool) *HealthCheckerImpl {
	return &HealthCheckerImpl{
		dataStore:   dataStore,
		reloadTimes: parseReloadTimes(reloadTimes),
		reloading:   reloading,
		now:         time.Now,
	}
}

// parseReloadTimes converts HH:MM entries to offsets, ignoring malformed ones.
// config validates them before they reach here.
func parseReloadTimes(times []string) []time.Duration {
	offsets := make([]time.Duration, 0, len(times))
	for _, t := range times {
		parsed, err := time.Parse("15:04", t)
		if err != nil {
			continue
		}
		offsets = append(offsets, time.Duration(parsed.Hour())*time.Hour+time.Duration(parsed.Minute())*time.Minute)
	}
	slices.Sort(offsets)
	return slices.Compact(offsets)
}

// reloadWindow returns the longest gap between two consecutive reloads, wrapping over midnight
func (h *HealthCheckerImpl) reloadWindow() time.Duration {
	if len(h.reloadTimes) < 2 {
		return 24 * time.Hour
	}
	longest := h.reloadTimes[0] + 24*time.Hour - h.reloadTimes[len(h.reloadTimes)-1]
	for i := 1; i < len(h.reloadTimes); i++ {
		longest = max(longest, h.reloadTimes[i]-h.reloadTimes[i-1])
	}
	return longest
}

// HealthCheck reports unhealthy when no pathogens or vaccines are loaded and
// degraded when a disk backed dataset missed its reload window.
func (h *HealthCheckerImpl) HealthCheck() (status string, data map[string]any, httpStatus int) {
	counts := map[string]int{}
	if cat := h.dataStore.GetCatalog(); cat != nil {
		counts = cat.Counts()
	}
	lastUpdate := h.dataStore.GetLastUpdated()
	isUpdating := h.dataStore.IsUpdating()
	dataAge := h.now().Sub(lastUpdate)

	switch {
	case counts["pathogens"] == 0 || counts["vaccines"] == 0:
		status = StatusUnhealthy
		httpStatus = http.StatusServiceUnavailable

	case h.reloading && dataAge > h.reloadWindow()+staleGrace:
		status = StatusDegraded
		httpStatus = http.StatusOK

	default:
		status = StatusHealthy
		httpStatus = http.StatusOK
	}

	data = map[string]any{
		"last_update":         lastUpdate.Format(time.RFC3339),
		"data_age_hours":      math.Round(dataAge.Hours()*10) / 10,
		"source":              h.dataStore.GetSource(),
		"is_updating":         isUpdating,
		"data_quality_issues": h.dataStore.GetReport().HasIssues(),
	}
	for collection, n := range counts {
		data[collection] = n
	}
	if h.reloading {
		data["next_update"] = h.CalculateNextUpdate().Format(time.RFC3339)
	}

	return status, data, httpStatus
}

// CalculateNextUpdate returns the next scheduled reload after now
func (h *HealthCheckerImpl) CalculateNextUpdate() time.Time {
	now := h.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if len(h.reloadTimes) == 0 {
		return midnight.AddDate(0, 0, 1)
	}

	for _, offset := range h.reloadTimes {
		if next := midnight.Add(offset); next.After(now) {
			return next
		}
	}
	return midnight.AddDate(0, 0, 1).Add(h.reloadTimes[0])
}
