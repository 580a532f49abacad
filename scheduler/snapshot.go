package scheduler

import (
	"context"
	"fmt"

	"github.com/giygas/vaccines-api/catalog"
	"github.com/giygas/vaccines-api/interfaces"
	"github.com/giygas/vaccines-api/logging"
)

// LoadSnapshot reads the dataset, rejects it on integrity errors and indexes it.
// The quality report is logged and returned alongside the catalog.
func LoadSnapshot(ctx context.Context, loader interfaces.DatasetLoader, validator interfaces.DataValidator) (*catalog.Catalog, *interfaces.DataQualityReport, error) {
	ds, err := loader.Load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load dataset from %s: %w", loader.Source(), err)
	}

	if err := validator.ValidateDataIntegrity(ds); err != nil {
		return nil, nil, fmt.Errorf("dataset from %s failed integrity check: %w", loader.Source(), err)
	}

	report := validator.ReportDataQuality(ds)
	logReport(report)

	return catalog.New(ds), report, nil
}

func logReport(report *interfaces.DataQualityReport) {
	if !report.HasIssues() {
		return
	}

	refs := map[string][]int{
		"pathogen":     report.DanglingPathogenRefs,
		"manufacturer": report.DanglingManufacturerRefs,
		"licenser":     report.DanglingLicenserRefs,
	}
	for kind, ids := range refs {
		if len(ids) > 0 {
			logging.Warn("Vaccines reference missing entities", "kind", kind, "count", len(ids), "vaccine_ids", ids)
		}
	}

	if len(report.VaccineTypeMismatches) > 0 {
		logging.Warn("Vaccine type disagrees with pathogen count",
			"count", len(report.VaccineTypeMismatches),
			"vaccine_ids", report.VaccineTypeMismatches,
		)
	}
	if len(report.UnknownProfileTypes) > 0 {
		logging.Warn("Profiles published by unknown licensers", "types", report.UnknownProfileTypes)
	}
	if report.VaccinesWithoutProfiles > 0 {
		logging.Warn("Vaccines without product profiles", "count", report.VaccinesWithoutProfiles)
	}
	if report.PipelineWithoutPathogen > 0 {
		logging.Warn("Candidates matching no pathogen", "count", report.PipelineWithoutPathogen)
	}
}
