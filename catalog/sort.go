package catalog

import (
	"slices"

	"github.com/giygas/vaccines-api/dataset/entities"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// licenserPriority pins the three reference authorities to the front of the
// licenser list, in this order.
var licenserPriority = map[string]int{
	"FDA": 0,
	"EMA": 1,
	"WHO": 2,
}

// A collate.Collator is not safe for concurrent use, so each sort builds its
// own.
func newCollator() *collate.Collator {
	return collate.New(language.English)
}

// sortByKey sorts items in place by a locale-aware comparison of key. The sort
// is stable so equal keys keep their input order.
func sortByKey[T any](items []T, key func(T) string) {
	col := newCollator()
	slices.SortStableFunc(items, func(a, b T) int {
		return col.CompareString(key(a), key(b))
	})
}

// SortPathogens sorts pathogens by name.
func SortPathogens(items []entities.Pathogen) {
	sortByKey(items, func(p entities.Pathogen) string { return p.Name })
}

// SortManufacturers sorts manufacturers by name.
func SortManufacturers(items []entities.Manufacturer) {
	sortByKey(items, func(m entities.Manufacturer) string { return m.Name })
}

// SortVaccines sorts vaccines by name.
func SortVaccines(items []entities.Vaccine) {
	sortByKey(items, func(v entities.Vaccine) string { return v.Name })
}

// SortNitags sorts the NITAG table by country.
func SortNitags(items []entities.CountryNitag) {
	sortByKey(items, func(n entities.CountryNitag) string { return n.Country })
}

// SortCompareGroups sorts comparison groups by name.
func SortCompareGroups(items []CompareGroup) {
	sortByKey(items, func(g CompareGroup) string { return g.Name })
}

// SortLicensers applies the licenser priority order: entries without an
// acronym first (input order kept), then FDA, EMA and WHO, then every other
// acronym alphabetically.
func SortLicensers(items []entities.Licenser) {
	col := newCollator()
	slices.SortStableFunc(items, func(a, b entities.Licenser) int {
		aMissing, bMissing := a.Acronym == "", b.Acronym == ""
		switch {
		case aMissing && bMissing:
			return 0
		case aMissing:
			return -1
		case bMissing:
			return 1
		}

		aRank, aPinned := licenserPriority[a.Acronym]
		bRank, bPinned := licenserPriority[b.Acronym]
		switch {
		case aPinned && bPinned:
			return aRank - bRank
		case aPinned:
			return -1
		case bPinned:
			return 1
		}

		return col.CompareString(a.Acronym, b.Acronym)
	})
}
