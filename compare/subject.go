package compare

import (
	"fmt"
	"strings"

	"github.com/giygas/vaccines-api/catalog"
	"github.com/giygas/vaccines-api/dataset/entities"
)

// Variant distinguishes a comparison of licensed vaccines of one pathogen from
// a comparison of a disease group.
type Variant string

const (
	VariantLicensed  Variant = "licensed"
	VariantCandidate Variant = "candidate"
)

// Subject is what the comparison is about: a pathogen id, or a disease name
// for groups that have no pathogen id of their own.
type Subject struct {
	PathogenID int    `json:"pathogenId,omitempty"`
	Disease    string `json:"disease,omitempty"`
}

func (s Subject) Variant() Variant {
	if s.PathogenID > 0 {
		return VariantLicensed
	}
	return VariantCandidate
}

// resolve returns the display name of the subject and the vaccines that can be
// selected for it.
func (s Subject) resolve(cat *catalog.Catalog) (string, []entities.Vaccine, error) {
	if s.PathogenID > 0 {
		p, ok := cat.Pathogen(s.PathogenID)
		if !ok {
			return "", nil, fmt.Errorf("pathogen %d: %w", s.PathogenID, ErrUnknownSubject)
		}
		return p.Name, cat.VaccinesByPathogen(p.PathogenID, catalog.ModeAll), nil
	}

	disease := strings.TrimSpace(s.Disease)
	if disease == "" {
		return "", nil, fmt.Errorf("missing pathogen id or disease: %w", ErrUnknownSubject)
	}
	return disease, cat.VaccinesByDisease(disease), nil
}

var (
	licensedRequired  = []catalog.Field{catalog.FieldType, catalog.FieldComposition}
	candidateRequired = []catalog.Field{
		catalog.FieldType,
		catalog.FieldComposition,
		catalog.FieldApprovalDate,
		catalog.FieldLastUpdated,
		catalog.FieldSource,
	}
)

// RequiredFields lists the fields that can never be removed from a
// comparison of the given variant, in display order.
func RequiredFields(v Variant) []catalog.Field {
	if v == VariantCandidate {
		return append([]catalog.Field(nil), candidateRequired...)
	}
	return append([]catalog.Field(nil), licensedRequired...)
}

func isRequired(v Variant, f catalog.Field) bool {
	for _, r := range RequiredFields(v) {
		if r == f {
			return true
		}
	}
	return false
}

// ValidateFields checks a complete field list: every field must be known,
// appear once, and the required fields of the variant must all be present.
func ValidateFields(v Variant, fields []catalog.Field) error {
	seen := make(map[catalog.Field]bool, len(fields))
	for _, f := range fields {
		if !f.Valid() {
			return reject(string(f), ErrUnknownField, fmt.Sprintf("Unknown field %q", f))
		}
		if seen[f] {
			return reject(string(f), ErrDuplicateField, fmt.Sprintf("%s is already selected", f.Label()))
		}
		seen[f] = true
	}
	for _, r := range RequiredFields(v) {
		if !seen[r] {
			return reject(string(r), ErrRequiredField, fmt.Sprintf("%s is required and cannot be removed", r.Label()))
		}
	}
	return nil
}
