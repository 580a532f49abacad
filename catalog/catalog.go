// Package catalog is the lookup, cross-reference and search engine over one
// immutable snapshot of the vaccines dataset.
//
// A Catalog is built once per load and never mutated afterwards, so it can be
// shared by concurrent HTTP handlers without locking. Every query returns a
// freshly allocated slice; callers may sort or trim results freely.
package catalog

import (
	"slices"

	"github.com/giygas/vaccines-api/dataset/entities"
)

// Catalog holds the entity collections in input order plus id and name
// indexes. When the input contains duplicate keys the first occurrence wins.
type Catalog struct {
	pathogens     []entities.Pathogen
	vaccines      []entities.Vaccine
	manufacturers []entities.Manufacturer
	licensers     []entities.Licenser
	pipeline      []entities.PipelineVaccine
	nitags        []entities.CountryNitag

	pathogenIndex         map[int]int
	vaccineIndex          map[int]int
	vaccineNameIndex      map[string]int
	manufacturerIndex     map[int]int
	manufacturerNameIndex map[string]int
	licenserIndex         map[int]int
	licenserAcronymIndex  map[string]int
}

// New indexes a dataset. A nil dataset yields an empty catalog.
func New(ds *entities.Dataset) *Catalog {
	if ds == nil {
		ds = &entities.Dataset{}
	}

	c := &Catalog{
		pathogens:     slices.Clone(ds.Pathogens),
		vaccines:      slices.Clone(ds.Vaccines),
		manufacturers: slices.Clone(ds.Manufacturers),
		licensers:     slices.Clone(ds.Licensers),
		pipeline:      slices.Clone(ds.PipelineVaccines),
		nitags:        slices.Clone(ds.Nitags),

		pathogenIndex:         make(map[int]int, len(ds.Pathogens)),
		vaccineIndex:          make(map[int]int, len(ds.Vaccines)),
		vaccineNameIndex:      make(map[string]int, len(ds.Vaccines)),
		manufacturerIndex:     make(map[int]int, len(ds.Manufacturers)),
		manufacturerNameIndex: make(map[string]int, len(ds.Manufacturers)),
		licenserIndex:         make(map[int]int, len(ds.Licensers)),
		licenserAcronymIndex:  make(map[string]int, len(ds.Licensers)),
	}

	for i, p := range c.pathogens {
		indexFirst(c.pathogenIndex, p.PathogenID, i)
	}
	for i, v := range c.vaccines {
		indexFirst(c.vaccineIndex, v.VaccineID, i)
		indexFirst(c.vaccineNameIndex, v.Name, i)
	}
	for i, m := range c.manufacturers {
		indexFirst(c.manufacturerIndex, m.ManufacturerID, i)
		indexFirst(c.manufacturerNameIndex, m.Name, i)
	}
	for i, l := range c.licensers {
		indexFirst(c.licenserIndex, l.LicenserID, i)
		if l.Acronym != "" {
			indexFirst(c.licenserAcronymIndex, l.Acronym, i)
		}
	}

	return c
}

func indexFirst[K comparable](index map[K]int, key K, pos int) {
	if _, exists := index[key]; !exists {
		index[key] = pos
	}
}

// Pathogens returns every pathogen in input order.
func (c *Catalog) Pathogens() []entities.Pathogen { return slices.Clone(c.pathogens) }

// Vaccines returns every licensed vaccine in input order.
func (c *Catalog) Vaccines() []entities.Vaccine { return slices.Clone(c.vaccines) }

// Manufacturers returns every manufacturer in input order.
func (c *Catalog) Manufacturers() []entities.Manufacturer { return slices.Clone(c.manufacturers) }

// Licensers returns every licensing authority in input order.
func (c *Catalog) Licensers() []entities.Licenser { return slices.Clone(c.licensers) }

// PipelineVaccines returns every vaccine candidate in input order.
func (c *Catalog) PipelineVaccines() []entities.PipelineVaccine { return slices.Clone(c.pipeline) }

// Nitags returns the country NITAG table in input order.
func (c *Catalog) Nitags() []entities.CountryNitag { return slices.Clone(c.nitags) }

// Counts reports the size of each collection, keyed by collection name.
func (c *Catalog) Counts() map[string]int {
	return map[string]int{
		"pathogens":         len(c.pathogens),
		"vaccines":          len(c.vaccines),
		"manufacturers":     len(c.manufacturers),
		"licensers":         len(c.licensers),
		"pipeline_vaccines": len(c.pipeline),
		"nitags":            len(c.nitags),
	}
}
