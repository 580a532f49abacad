package catalog

import "github.com/giygas/vaccines-api/dataset/entities"

// Pathogen returns the pathogen with the given id.
func (c *Catalog) Pathogen(id int) (entities.Pathogen, bool) {
	if i, ok := c.pathogenIndex[id]; ok {
		return c.pathogens[i], true
	}
	return entities.Pathogen{}, false
}

// Vaccine returns the vaccine with the given id.
func (c *Catalog) Vaccine(id int) (entities.Vaccine, bool) {
	if i, ok := c.vaccineIndex[id]; ok {
		return c.vaccines[i], true
	}
	return entities.Vaccine{}, false
}

// VaccineByName returns the vaccine whose name matches exactly.
func (c *Catalog) VaccineByName(name string) (entities.Vaccine, bool) {
	if i, ok := c.vaccineNameIndex[name]; ok {
		return c.vaccines[i], true
	}
	return entities.Vaccine{}, false
}

// Manufacturer returns the manufacturer with the given id.
func (c *Catalog) Manufacturer(id int) (entities.Manufacturer, bool) {
	if i, ok := c.manufacturerIndex[id]; ok {
		return c.manufacturers[i], true
	}
	return entities.Manufacturer{}, false
}

// ManufacturerByName returns the manufacturer whose name matches exactly.
func (c *Catalog) ManufacturerByName(name string) (entities.Manufacturer, bool) {
	if i, ok := c.manufacturerNameIndex[name]; ok {
		return c.manufacturers[i], true
	}
	return entities.Manufacturer{}, false
}

// Licenser returns the licensing authority with the given id.
func (c *Catalog) Licenser(id int) (entities.Licenser, bool) {
	if i, ok := c.licenserIndex[id]; ok {
		return c.licensers[i], true
	}
	return entities.Licenser{}, false
}

// LicenserByAcronym returns the licensing authority with the given acronym.
// Acronyms are case-sensitive, matching ProductProfile.Type.
func (c *Catalog) LicenserByAcronym(acronym string) (entities.Licenser, bool) {
	if i, ok := c.licenserAcronymIndex[acronym]; ok {
		return c.licensers[i], true
	}
	return entities.Licenser{}, false
}
