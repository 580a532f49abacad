package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/giygas/vaccines-api/dataset/entities"
)

// Tab is the browse category that decides which collection is listed and
// which fields the letter and keyword filters look at.
type Tab string

const (
	TabLicensedVaccines  Tab = "licensed-vaccines"
	TabVaccineCandidates Tab = "vaccine-candidates"
	TabManufacturers     Tab = "manufacturers"
	TabLicensers         Tab = "licensers"
	TabNitag             Tab = "nitag"
	TabCompare           Tab = "compare"
)

var tabs = []Tab{
	TabLicensedVaccines,
	TabVaccineCandidates,
	TabManufacturers,
	TabLicensers,
	TabNitag,
	TabCompare,
}

// Tabs returns every browse tab.
func Tabs() []Tab {
	return slices.Clone(tabs)
}

// ParseTab parses a tab path parameter.
func ParseTab(s string) (Tab, error) {
	t := Tab(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(tabs, t) {
		return t, nil
	}
	return "", fmt.Errorf("unknown tab %q", s)
}

// CompareGroup is one row of the compare tab: a pathogen together with every
// vaccine covering it.
type CompareGroup struct {
	Name       string             `json:"name"`
	PathogenID int                `json:"pathogenId"`
	Disease    string             `json:"disease,omitempty"`
	Vaccines   []entities.Vaccine `json:"vaccines"`
}

// Result is the visible list of one tab after filtering and sorting. Only the
// collection belonging to Tab is set.
type Result struct {
	Tab           Tab                     `json:"tab"`
	Letter        string                  `json:"letter,omitempty"`
	Keyword       string                  `json:"keyword,omitempty"`
	Count         int                     `json:"count"`
	Pathogens     []entities.Pathogen     `json:"pathogens,omitempty"`
	Manufacturers []entities.Manufacturer `json:"manufacturers,omitempty"`
	Licensers     []entities.Licenser     `json:"licensers,omitempty"`
	Nitags        []entities.CountryNitag `json:"nitags,omitempty"`
	Groups        []CompareGroup          `json:"groups,omitempty"`
}

// Names lists the display key of every entry, in result order.
func (r Result) Names() []string {
	names := make([]string, 0, r.Count)
	for _, p := range r.Pathogens {
		names = append(names, p.Name)
	}
	for _, m := range r.Manufacturers {
		names = append(names, m.Name)
	}
	for _, l := range r.Licensers {
		names = append(names, l.Acronym)
	}
	for _, n := range r.Nitags {
		names = append(names, n.Country)
	}
	for _, g := range r.Groups {
		names = append(names, g.Name)
	}
	return names
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func hasPrefixFold(s, prefix string) bool {
	return strings.HasPrefix(strings.ToLower(s), strings.ToLower(prefix))
}

// keep filters list into a new slice.
func keep[T any](list []T, match func(T) bool) []T {
	out := make([]T, 0, len(list))
	for _, item := range list {
		if match(item) {
			out = append(out, item)
		}
	}
	return out
}

// FilterByStartingLetter keeps the entries whose key starts with letter,
// case-insensitively. An empty letter keeps everything.
func FilterByStartingLetter[T any](list []T, letter string, key func(T) string) []T {
	if letter == "" {
		return slices.Clone(list)
	}
	return keep(list, func(item T) bool { return hasPrefixFold(key(item), letter) })
}

// FilterByKeyword keeps the entries for which match reports a hit. An empty
// keyword keeps everything.
func FilterByKeyword[T any](list []T, keyword string, match func(T, string) bool) []T {
	if keyword == "" {
		return slices.Clone(list)
	}
	return keep(list, func(item T) bool { return match(item, keyword) })
}

func vaccineTextMatches(v entities.Vaccine, keyword string) bool {
	return containsFold(v.Name, keyword) || containsFold(v.Description, keyword)
}

func manufacturerTextMatches(m entities.Manufacturer, keyword string) bool {
	return containsFold(m.Name, keyword) || containsFold(m.Description, keyword)
}

// vaccinesMatch is the joined part of the pathogen cascade: any vaccine's own
// text, then any manufacturer of those vaccines.
func (c *Catalog) vaccinesMatch(vaccines []entities.Vaccine, keyword string) bool {
	for _, v := range vaccines {
		if vaccineTextMatches(v, keyword) {
			return true
		}
	}
	for _, v := range vaccines {
		for _, m := range c.ManufacturersByVaccine(v) {
			if manufacturerTextMatches(m, keyword) {
				return true
			}
		}
	}
	return false
}

func (c *Catalog) candidatesMatch(candidates []entities.PipelineVaccine, keyword string) bool {
	for _, pv := range candidates {
		if containsFold(pv.Name, keyword) || containsFold(pv.Platform, keyword) {
			return true
		}
	}
	for _, pv := range candidates {
		if m, ok := c.Manufacturer(pv.ManufacturerID); ok && manufacturerTextMatches(m, keyword) {
			return true
		}
	}
	return false
}

// pathogenMatches evaluates the keyword cascade of the pathogen driven tabs.
// The first matching clause wins.
func (c *Catalog) pathogenMatches(tab Tab, p entities.Pathogen, keyword string) bool {
	if containsFold(p.Name, keyword) || containsFold(p.Description, keyword) {
		return true
	}

	switch tab {
	case TabVaccineCandidates:
		return c.candidatesMatch(c.PipelineVaccinesByPathogen(p), keyword)
	case TabCompare:
		return c.vaccinesMatch(c.VaccinesByPathogen(p.PathogenID, ModeAll), keyword)
	default:
		return c.vaccinesMatch(c.VaccinesByPathogen(p.PathogenID, ModeSingle), keyword)
	}
}

// FilterPathogens returns the pathogens visible on a pathogen driven tab
// (licensed vaccines, vaccine candidates), sorted by name.
func (c *Catalog) FilterPathogens(tab Tab, letter, keyword string) []entities.Pathogen {
	list := FilterByStartingLetter(c.pathogens, letter, func(p entities.Pathogen) string { return p.Name })
	list = FilterByKeyword(list, keyword, func(p entities.Pathogen, kw string) bool {
		return c.pathogenMatches(tab, p, kw)
	})
	SortPathogens(list)
	return list
}

// FilterManufacturers returns the manufacturers visible on the manufacturers
// tab. The keyword is matched against the manufacturer's own text only.
func (c *Catalog) FilterManufacturers(letter, keyword string) []entities.Manufacturer {
	list := FilterByStartingLetter(c.manufacturers, letter, func(m entities.Manufacturer) string { return m.Name })
	list = FilterByKeyword(list, keyword, manufacturerTextMatches)
	SortManufacturers(list)
	return list
}

// FilterLicensers returns the licensers visible on the licensers tab, in
// priority order.
func (c *Catalog) FilterLicensers(letter, keyword string) []entities.Licenser {
	list := FilterByStartingLetter(c.licensers, letter, func(l entities.Licenser) string { return l.Acronym })
	list = FilterByKeyword(list, keyword, func(l entities.Licenser, kw string) bool {
		return containsFold(l.Acronym, kw) || containsFold(l.Description, kw)
	})
	SortLicensers(list)
	return list
}

// FilterNitags returns the NITAG rows whose country matches.
func (c *Catalog) FilterNitags(letter, keyword string) []entities.CountryNitag {
	country := func(n entities.CountryNitag) string { return n.Country }
	list := FilterByStartingLetter(c.nitags, letter, country)
	list = FilterByKeyword(list, keyword, func(n entities.CountryNitag, kw string) bool {
		return containsFold(n.Country, kw)
	})
	SortNitags(list)
	return list
}

// CompareGroups lists one group per pathogen that has at least one vaccine,
// in input order.
func (c *Catalog) CompareGroups() []CompareGroup {
	groups := []CompareGroup{}
	for _, p := range c.pathogens {
		vaccines := c.VaccinesByPathogen(p.PathogenID, ModeAll)
		if len(vaccines) == 0 {
			continue
		}
		groups = append(groups, CompareGroup{
			Name:       p.Name,
			PathogenID: p.PathogenID,
			Disease:    p.Disease,
			Vaccines:   vaccines,
		})
	}
	return groups
}

// FilterCompareGroups returns the groups visible on the compare tab.
func (c *Catalog) FilterCompareGroups(letter, keyword string) []CompareGroup {
	list := FilterByStartingLetter(c.CompareGroups(), letter, func(g CompareGroup) string { return g.Name })
	list = FilterByKeyword(list, keyword, func(g CompareGroup, kw string) bool {
		if p, ok := c.Pathogen(g.PathogenID); ok && (containsFold(p.Name, kw) || containsFold(p.Description, kw)) {
			return true
		}
		return c.vaccinesMatch(g.Vaccines, kw)
	})
	SortCompareGroups(list)
	return list
}

// FilterEntities recomputes the visible list of a tab from the full snapshot:
// alphabet filter first, then keyword filter, then the tab's sort order.
func (c *Catalog) FilterEntities(tab Tab, letter, keyword string) (Result, error) {
	result := Result{Tab: tab, Letter: letter, Keyword: keyword}

	switch tab {
	case TabLicensedVaccines, TabVaccineCandidates:
		result.Pathogens = c.FilterPathogens(tab, letter, keyword)
		result.Count = len(result.Pathogens)
	case TabManufacturers:
		result.Manufacturers = c.FilterManufacturers(letter, keyword)
		result.Count = len(result.Manufacturers)
	case TabLicensers:
		result.Licensers = c.FilterLicensers(letter, keyword)
		result.Count = len(result.Licensers)
	case TabNitag:
		result.Nitags = c.FilterNitags(letter, keyword)
		result.Count = len(result.Nitags)
	case TabCompare:
		result.Groups = c.FilterCompareGroups(letter, keyword)
		result.Count = len(result.Groups)
	default:
		return Result{}, fmt.Errorf("unknown tab %q", tab)
	}

	return result, nil
}
