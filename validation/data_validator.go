// Package validation checks the integrity of a loaded dataset and the
// user supplied query parameters.
package validation

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/giygas/vaccines-api/dataset/entities"
	"github.com/giygas/vaccines-api/interfaces"
	"github.com/giygas/vaccines-api/logging"
)

const (
	maxKeywordLength = 50
	maxKeywordWords  = 6
	maxIDDigits      = 9
	maxRepetition    = 10
)

var (
	// Letters in any script, digits and the punctuation found in entity names
	keywordRegex = regexp.MustCompile(`^[\p{L}\p{N}\s\-\.\+'&(),/]+$`)

	// Substrings rejected before the character check, matched case-insensitively
	dangerousPatterns = []string{
		"<script", "</script>", "javascript:", "vbscript:", "onload=", "onerror=",
		"eval(", "expression(", "url(", "@import",
		"' or ", "\" or ", "union select", "drop table", "delete from", "insert into",
		"--", "/*", "*/", "exec(",
		"$(", "${", "`",
		"../", "..\\", "%2e%2e", "file://",
		"{$ne:", "{$gt:", "{$where:", "{$regex:",
	}
)

// DataValidatorImpl implements the interfaces.DataValidator interface
type DataValidatorImpl struct{}

// NewDataValidator creates a new data validator
func NewDataValidator() interfaces.DataValidator {
	return &DataValidatorImpl{}
}

// duplicates returns the keys seen more than once, each listed once, in first-repeat order
func duplicates[T any](items []T, key func(T) int) []int {
	seen := make(map[int]int, len(items))
	dups := []int{}
	for _, item := range items {
		k := key(item)
		seen[k]++
		if seen[k] == 2 {
			dups = append(dups, k)
		}
	}
	return dups
}

// ValidateDataIntegrity fails on duplicate ids and empty core collections.
// Softer problems only show up in ReportDataQuality.
func (v *DataValidatorImpl) ValidateDataIntegrity(ds *entities.Dataset) error {
	if ds == nil {
		return fmt.Errorf("dataset is nil")
	}
	if len(ds.Pathogens) == 0 {
		return fmt.Errorf("no pathogens found")
	}
	if len(ds.Vaccines) == 0 {
		return fmt.Errorf("no vaccines found")
	}

	checks := []struct {
		name string
		dups []int
	}{
		{"pathogen", duplicates(ds.Pathogens, func(p entities.Pathogen) int { return p.PathogenID })},
		{"vaccine", duplicates(ds.Vaccines, func(v entities.Vaccine) int { return v.VaccineID })},
		{"manufacturer", duplicates(ds.Manufacturers, func(m entities.Manufacturer) int { return m.ManufacturerID })},
		{"licenser", duplicates(ds.Licensers, func(l entities.Licenser) int { return l.LicenserID })},
	}
	for _, c := range checks {
		if len(c.dups) > 0 {
			logging.Error("Duplicate ids detected", "entity", c.name, "count", len(c.dups), "duplicates", c.dups)
			return fmt.Errorf("duplicate %s id found: %d", c.name, c.dups[0])
		}
	}

	for _, p := range ds.Pathogens {
		if p.PathogenID <= 0 {
			return fmt.Errorf("invalid pathogen id: %d", p.PathogenID)
		}
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("empty name for pathogen %d", p.PathogenID)
		}
	}
	for _, vac := range ds.Vaccines {
		if vac.VaccineID <= 0 {
			return fmt.Errorf("invalid vaccine id: %d", vac.VaccineID)
		}
		if strings.TrimSpace(vac.Name) == "" {
			return fmt.Errorf("empty name for vaccine %d", vac.VaccineID)
		}
	}

	return nil
}

// ReportDataQuality lists every issue found without failing
func (v *DataValidatorImpl) ReportDataQuality(ds *entities.Dataset) *interfaces.DataQualityReport {
	report := &interfaces.DataQualityReport{
		DuplicatePathogenIDs:     []int{},
		DuplicateVaccineIDs:      []int{},
		DuplicateManufacturerIDs: []int{},
		DuplicateLicenserIDs:     []int{},
		DanglingPathogenRefs:     []int{},
		DanglingManufacturerRefs: []int{},
		DanglingLicenserRefs:     []int{},
		VaccineTypeMismatches:    []int{},
		UnknownProfileTypes:      []string{},
	}
	if ds == nil {
		return report
	}

	report.DuplicatePathogenIDs = duplicates(ds.Pathogens, func(p entities.Pathogen) int { return p.PathogenID })
	report.DuplicateVaccineIDs = duplicates(ds.Vaccines, func(v entities.Vaccine) int { return v.VaccineID })
	report.DuplicateManufacturerIDs = duplicates(ds.Manufacturers, func(m entities.Manufacturer) int { return m.ManufacturerID })
	report.DuplicateLicenserIDs = duplicates(ds.Licensers, func(l entities.Licenser) int { return l.LicenserID })

	pathogenIDs := make(map[int]bool, len(ds.Pathogens))
	pathogenNames := make(map[string]bool, len(ds.Pathogens)*2)
	for _, p := range ds.Pathogens {
		pathogenIDs[p.PathogenID] = true
		pathogenNames[strings.ToLower(p.Name)] = true
		if p.Disease != "" {
			pathogenNames[strings.ToLower(p.Disease)] = true
		}
	}
	manufacturerIDs := make(map[int]bool, len(ds.Manufacturers))
	for _, m := range ds.Manufacturers {
		manufacturerIDs[m.ManufacturerID] = true
	}
	licenserIDs := make(map[int]bool, len(ds.Licensers))
	acronyms := make(map[string]bool, len(ds.Licensers))
	for _, l := range ds.Licensers {
		licenserIDs[l.LicenserID] = true
		acronyms[l.Acronym] = true
	}

	unknownTypes := make(map[string]bool)
	noteType := func(acronym string) {
		if acronym != "" && !acronyms[acronym] && !unknownTypes[acronym] {
			unknownTypes[acronym] = true
			report.UnknownProfileTypes = append(report.UnknownProfileTypes, acronym)
		}
	}

	for _, vac := range ds.Vaccines {
		if slices.ContainsFunc(vac.PathogenID, func(id int) bool { return !pathogenIDs[id] }) {
			report.DanglingPathogenRefs = append(report.DanglingPathogenRefs, vac.VaccineID)
		}
		if slices.ContainsFunc(vac.Manufacturers, func(m entities.ManufacturerID) bool { return !manufacturerIDs[m.ManufacturerID] }) {
			report.DanglingManufacturerRefs = append(report.DanglingManufacturerRefs, vac.VaccineID)
		}
		if slices.ContainsFunc(vac.Licensers, func(l entities.LicenserID) bool { return !licenserIDs[l.LicenserID] }) {
			report.DanglingLicenserRefs = append(report.DanglingLicenserRefs, vac.VaccineID)
		}

		switch vac.VaccineType {
		case entities.VaccineTypeSingle:
			if len(vac.PathogenID) != 1 {
				report.VaccineTypeMismatches = append(report.VaccineTypeMismatches, vac.VaccineID)
			}
		case entities.VaccineTypeCombination:
			if len(vac.PathogenID) < 2 {
				report.VaccineTypeMismatches = append(report.VaccineTypeMismatches, vac.VaccineID)
			}
		default:
			report.VaccineTypeMismatches = append(report.VaccineTypeMismatches, vac.VaccineID)
		}

		if len(vac.ProductProfiles) == 0 {
			report.VaccinesWithoutProfiles++
		}
		for _, p := range vac.ProductProfiles {
			noteType(p.Type)
		}
		for _, d := range vac.LicensingDates {
			noteType(d.Name)
		}
	}

	for _, pv := range ds.PipelineVaccines {
		if !pathogenNames[strings.ToLower(strings.TrimSpace(pv.PathogenName))] {
			report.PipelineWithoutPathogen++
		}
	}

	return report
}

// ValidateKeyword accepts an empty keyword, which disables the filter
func (v *DataValidatorImpl) ValidateKeyword(input string) error {
	if input == "" {
		return nil
	}
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("keyword cannot be blank")
	}
	if utf8.RuneCountInString(input) > maxKeywordLength {
		return fmt.Errorf("keyword too long: maximum %d characters", maxKeywordLength)
	}
	if len(strings.Fields(input)) > maxKeywordWords {
		return fmt.Errorf("search query too complex: maximum %d words allowed", maxKeywordWords)
	}

	lower := strings.ToLower(input)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lower, pattern) {
			return fmt.Errorf("keyword contains potentially dangerous content")
		}
	}

	if !keywordRegex.MatchString(input) {
		return fmt.Errorf("keyword contains invalid characters. Only letters, numbers, spaces and - . + ' & ( ) , / are allowed")
	}

	if hasExcessiveRepetition(input) {
		return fmt.Errorf("keyword contains excessive character repetition")
	}

	return nil
}

// ValidateLetter accepts an empty value or a single letter
func (v *DataValidatorImpl) ValidateLetter(input string) error {
	if input == "" {
		return nil
	}
	r, size := utf8.DecodeRuneInString(input)
	if size != len(input) {
		return fmt.Errorf("letter must be a single character, got %q", input)
	}
	if !unicode.IsLetter(r) {
		return fmt.Errorf("letter must be alphabetic, got %q", input)
	}
	return nil
}

// ValidateID parses a positive numeric id. Surrounding whitespace is rejected.
func (v *DataValidatorImpl) ValidateID(input string) (int, error) {
	if strings.TrimSpace(input) == "" {
		return -1, fmt.Errorf("id cannot be empty")
	}
	if len(input) > maxIDDigits {
		return -1, fmt.Errorf("id too long: maximum %d digits", maxIDDigits)
	}
	for _, r := range input {
		if r < '0' || r > '9' {
			return -1, fmt.Errorf("id contains invalid characters. Only numeric characters are allowed")
		}
	}

	id, err := strconv.Atoi(input)
	if err != nil {
		return -1, fmt.Errorf("invalid id: %w", err)
	}
	if id <= 0 {
		return -1, fmt.Errorf("id must be positive")
	}
	return id, nil
}

// hasExcessiveRepetition reports the same rune repeated more than maxRepetition times in a row
func hasExcessiveRepetition(input string) bool {
	var last rune
	run := 0
	for _, r := range input {
		if r == last {
			run++
			if run > maxRepetition {
				return true
			}
			continue
		}
		last, run = r, 1
	}
	return false
}
