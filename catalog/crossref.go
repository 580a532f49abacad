package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/giygas/vaccines-api/dataset/entities"
)

// VaccineMode narrows VaccinesByPathogen to single or combination vaccines.
type VaccineMode string

const (
	ModeAll         VaccineMode = "all"
	ModeSingle      VaccineMode = "single"
	ModeCombination VaccineMode = "combination"
)

// ParseVaccineMode parses a mode query value. An empty string means ModeAll.
func ParseVaccineMode(s string) (VaccineMode, error) {
	switch VaccineMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeAll:
		return ModeAll, nil
	case ModeSingle:
		return ModeSingle, nil
	case ModeCombination:
		return ModeCombination, nil
	}
	return "", fmt.Errorf("unknown vaccine mode %q, expected one of: all, single, combination", s)
}

func (m VaccineMode) accepts(v entities.Vaccine) bool {
	switch m {
	case ModeSingle:
		return v.VaccineType == entities.VaccineTypeSingle
	case ModeCombination:
		return v.VaccineType == entities.VaccineTypeCombination
	}
	return true
}

// VaccinesByPathogen returns the vaccines covering the pathogen, narrowed by
// mode. The vaccine type is trusted as recorded in the data.
func (c *Catalog) VaccinesByPathogen(pathogenID int, mode VaccineMode) []entities.Vaccine {
	results := []entities.Vaccine{}
	if pathogenID <= 0 {
		return results
	}

	for _, v := range c.vaccines {
		if slices.Contains(v.PathogenID, pathogenID) && mode.accepts(v) {
			results = append(results, v)
		}
	}
	return results
}

// VaccinesByDisease returns the vaccines of every pathogen whose name or
// disease equals the given name, case-insensitively. It backs comparisons of
// disease groups that are not keyed by a pathogen id.
func (c *Catalog) VaccinesByDisease(disease string) []entities.Vaccine {
	results := []entities.Vaccine{}
	disease = strings.TrimSpace(disease)
	if disease == "" {
		return results
	}

	var ids []int
	for _, p := range c.pathogens {
		if strings.EqualFold(p.Name, disease) || (p.Disease != "" && strings.EqualFold(p.Disease, disease)) {
			ids = append(ids, p.PathogenID)
		}
	}

	for _, v := range c.vaccines {
		for _, id := range v.PathogenID {
			if slices.Contains(ids, id) {
				results = append(results, v)
				break
			}
		}
	}
	return results
}

func hasManufacturer(v entities.Vaccine, manufacturerID int) bool {
	for _, m := range v.Manufacturers {
		if m.ManufacturerID == manufacturerID {
			return true
		}
	}
	return false
}

func hasEffectiveLicense(v entities.Vaccine) bool {
	for _, p := range v.ProductProfiles {
		if p.Licensed() {
			return true
		}
	}
	return false
}

// VaccinesByManufacturer returns the vaccines listing the manufacturer at any
// position of their manufacturers array.
func (c *Catalog) VaccinesByManufacturer(manufacturerID int) []entities.Vaccine {
	results := []entities.Vaccine{}
	if manufacturerID <= 0 {
		return results
	}

	for _, v := range c.vaccines {
		if hasManufacturer(v, manufacturerID) {
			results = append(results, v)
		}
	}
	return results
}

// LicensedVaccinesByManufacturer is VaccinesByManufacturer restricted to
// vaccines holding at least one actual license.
func (c *Catalog) LicensedVaccinesByManufacturer(manufacturerID int) []entities.Vaccine {
	results := []entities.Vaccine{}
	for _, v := range c.VaccinesByManufacturer(manufacturerID) {
		if hasEffectiveLicense(v) {
			results = append(results, v)
		}
	}
	return results
}

// VaccinesByLicenser returns the vaccines referencing the licenser. Vaccines
// without a licensers list are skipped, as are vaccines whose product profile
// for the licenser's acronym is marked as not licensed.
func (c *Catalog) VaccinesByLicenser(licenserID int) []entities.Vaccine {
	results := []entities.Vaccine{}
	licenser, ok := c.Licenser(licenserID)
	if !ok {
		return results
	}

	for _, v := range c.vaccines {
		if len(v.Licensers) == 0 {
			continue
		}
		referenced := false
		for _, l := range v.Licensers {
			if l.LicenserID == licenserID {
				referenced = true
				break
			}
		}
		if !referenced {
			continue
		}
		if p, found := ProductProfile(v, licenser.Acronym); found && !p.Licensed() {
			continue
		}
		results = append(results, v)
	}
	return results
}

// VaccinesByLicenserName returns the vaccines holding an actual license from
// the authority with the given acronym.
func (c *Catalog) VaccinesByLicenserName(acronym string) []entities.Vaccine {
	results := []entities.Vaccine{}
	if acronym == "" {
		return results
	}

	for _, v := range c.vaccines {
		if p, found := ProductProfile(v, acronym); found && p.Licensed() {
			results = append(results, v)
		}
	}
	return results
}

// PathogenByVaccine resolves the first pathogen of the vaccine.
func (c *Catalog) PathogenByVaccine(v entities.Vaccine) (entities.Pathogen, bool) {
	if len(v.PathogenID) == 0 {
		return entities.Pathogen{}, false
	}
	return c.Pathogen(v.PathogenID[0])
}

// PathogensByVaccine resolves every pathogen of the vaccine, skipping ids that
// do not exist.
func (c *Catalog) PathogensByVaccine(v entities.Vaccine) []entities.Pathogen {
	results := []entities.Pathogen{}
	for _, id := range v.PathogenID {
		if p, ok := c.Pathogen(id); ok {
			results = append(results, p)
		}
	}
	return results
}

// ManufacturersByVaccine resolves the manufacturers array of the vaccine.
func (c *Catalog) ManufacturersByVaccine(v entities.Vaccine) []entities.Manufacturer {
	results := []entities.Manufacturer{}
	for _, ref := range v.Manufacturers {
		if m, ok := c.Manufacturer(ref.ManufacturerID); ok {
			results = append(results, m)
		}
	}
	return results
}

// LicensersByVaccine resolves the licensers array of the vaccine.
func (c *Catalog) LicensersByVaccine(v entities.Vaccine) []entities.Licenser {
	results := []entities.Licenser{}
	for _, ref := range v.Licensers {
		if l, ok := c.Licenser(ref.LicenserID); ok {
			results = append(results, l)
		}
	}
	return results
}

// PipelineVaccinesByManufacturer returns the candidates developed by the
// manufacturer.
func (c *Catalog) PipelineVaccinesByManufacturer(manufacturerID int) []entities.PipelineVaccine {
	results := []entities.PipelineVaccine{}
	if manufacturerID <= 0 {
		return results
	}

	for _, pv := range c.pipeline {
		if pv.ManufacturerID == manufacturerID {
			results = append(results, pv)
		}
	}
	return results
}

// PipelineVaccinesByPathogenName returns the candidates whose pathogen name
// equals name, case-insensitively.
func (c *Catalog) PipelineVaccinesByPathogenName(name string) []entities.PipelineVaccine {
	results := []entities.PipelineVaccine{}
	name = strings.TrimSpace(name)
	if name == "" {
		return results
	}

	for _, pv := range c.pipeline {
		if strings.EqualFold(pv.PathogenName, name) {
			results = append(results, pv)
		}
	}
	return results
}

// PipelineVaccinesByPathogen returns the candidates targeting the pathogen,
// matched on its name or its disease.
func (c *Catalog) PipelineVaccinesByPathogen(p entities.Pathogen) []entities.PipelineVaccine {
	results := c.PipelineVaccinesByPathogenName(p.Name)
	if p.Disease != "" && !strings.EqualFold(p.Disease, p.Name) {
		results = append(results, c.PipelineVaccinesByPathogenName(p.Disease)...)
	}
	return results
}

// ProductProfile returns the vaccine's profile published by the authority.
func ProductProfile(v entities.Vaccine, acronym string) (entities.ProductProfile, bool) {
	for _, p := range v.ProductProfiles {
		if p.Type == acronym {
			return p, true
		}
	}
	return entities.ProductProfile{}, false
}

// LicensingDate returns the vaccine's licensing record for the authority.
func LicensingDate(v entities.Vaccine, acronym string) (entities.LicensingDate, bool) {
	for _, d := range v.LicensingDates {
		if d.Name == acronym {
			return d, true
		}
	}
	return entities.LicensingDate{}, false
}

// LicensedAuthorities lists the acronyms of the profiles that represent an
// actual license, in profile order.
func LicensedAuthorities(v entities.Vaccine) []string {
	acronyms := []string{}
	for _, p := range v.ProductProfiles {
		if p.Licensed() && p.Type != "" && !slices.Contains(acronyms, p.Type) {
			acronyms = append(acronyms, p.Type)
		}
	}
	return acronyms
}

// ProductProfileValue returns one comparison attribute of the named vaccine
// as published by the authority, or MissingValue.
func (c *Catalog) ProductProfileValue(acronym string, field Field, vaccineName string) string {
	v, ok := c.VaccineByName(vaccineName)
	if !ok {
		return MissingValue
	}

	var value string
	if isLicensingDateField(field) {
		if d, found := LicensingDate(v, acronym); found {
			value = licensingDateValue(d, field)
		}
	} else if p, found := ProductProfile(v, acronym); found {
		value = profileValue(p, field)
	}

	if strings.TrimSpace(value) == "" {
		return MissingValue
	}
	return value
}
