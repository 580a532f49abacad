package catalog

import (
	"strings"

	"github.com/giygas/vaccines-api/dataset/entities"
)

// Field identifies one attribute row of the comparison table.
type Field string

const (
	FieldType                 Field = "type"
	FieldComposition          Field = "composition"
	FieldStrainCoverage       Field = "strainCoverage"
	FieldIndication           Field = "indication"
	FieldDosing               Field = "dosing"
	FieldContraindication     Field = "contraindication"
	FieldImmunogenicity       Field = "immunogenicity"
	FieldEfficacy             Field = "efficacy"
	FieldDurationOfProtection Field = "durationOfProtection"
	FieldCoAdministration     Field = "coAdministration"
	FieldReactogenicity       Field = "reactogenicity"
	FieldSafety               Field = "safety"
	FieldVaccinationGoal      Field = "vaccinationGoal"
	FieldOthers               Field = "others"
	FieldApprovalDate         Field = "approvalDate"
	FieldLastUpdated          Field = "lastUpdated"
	FieldSource               Field = "source"
)

// MissingValue is rendered for any attribute that has no data.
const MissingValue = "-"

var fieldOrder = []Field{
	FieldType,
	FieldComposition,
	FieldStrainCoverage,
	FieldIndication,
	FieldDosing,
	FieldContraindication,
	FieldImmunogenicity,
	FieldEfficacy,
	FieldDurationOfProtection,
	FieldCoAdministration,
	FieldReactogenicity,
	FieldSafety,
	FieldVaccinationGoal,
	FieldOthers,
	FieldApprovalDate,
	FieldLastUpdated,
	FieldSource,
}

var fieldLabels = map[Field]string{
	FieldType:                 "Type",
	FieldComposition:          "Composition/Platform",
	FieldStrainCoverage:       "Strain coverage",
	FieldIndication:           "Indication",
	FieldDosing:               "Dosing",
	FieldContraindication:     "Contraindication",
	FieldImmunogenicity:       "Immunogenicity",
	FieldEfficacy:             "Efficacy",
	FieldDurationOfProtection: "Duration of protection",
	FieldCoAdministration:     "Co-Administration",
	FieldReactogenicity:       "Reactogenicity",
	FieldSafety:               "Safety",
	FieldVaccinationGoal:      "Vaccination Goal",
	FieldOthers:               "Others",
	FieldApprovalDate:         "Approval Date",
	FieldLastUpdated:          "Last Updated",
	FieldSource:               "Source",
}

// Fields returns the field catalog in display order.
func Fields() []Field {
	out := make([]Field, len(fieldOrder))
	copy(out, fieldOrder)
	return out
}

// Label returns the human readable column name of the field.
func (f Field) Label() string {
	if label, ok := fieldLabels[f]; ok {
		return label
	}
	return string(f)
}

// Valid reports whether f belongs to the field catalog.
func (f Field) Valid() bool {
	_, ok := fieldLabels[f]
	return ok
}

// ParseField accepts either the field key or its label, case-insensitively.
func ParseField(s string) (Field, bool) {
	s = strings.TrimSpace(s)
	for _, f := range fieldOrder {
		if strings.EqualFold(s, string(f)) || strings.EqualFold(s, fieldLabels[f]) {
			return f, true
		}
	}
	return "", false
}

// isLicensingDateField reports whether the field is read from LicensingDates
// instead of ProductProfiles.
func isLicensingDateField(f Field) bool {
	return f == FieldApprovalDate || f == FieldLastUpdated || f == FieldSource
}

func profileValue(p entities.ProductProfile, f Field) string {
	switch f {
	case FieldType:
		return p.Type
	case FieldComposition:
		return p.Composition
	case FieldStrainCoverage:
		return p.StrainCoverage
	case FieldIndication:
		return p.Indication
	case FieldDosing:
		return p.Dosing
	case FieldContraindication:
		return p.Contraindication
	case FieldImmunogenicity:
		return p.Immunogenicity
	case FieldEfficacy:
		return p.Efficacy
	case FieldDurationOfProtection:
		return p.DurationOfProtection
	case FieldCoAdministration:
		return p.CoAdministration
	case FieldReactogenicity:
		return p.Reactogenicity
	case FieldSafety:
		return p.Safety
	case FieldVaccinationGoal:
		return p.VaccinationGoal
	case FieldOthers:
		return p.Others
	}
	return ""
}

func licensingDateValue(d entities.LicensingDate, f Field) string {
	switch f {
	case FieldApprovalDate:
		return d.ApprovalDate
	case FieldLastUpdated:
		return d.LastUpdated
	case FieldSource:
		return d.Source
	}
	return ""
}
