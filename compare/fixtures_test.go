package compare

import (
	"fmt"

	"github.com/giygas/vaccines-api/catalog"
	"github.com/giygas/vaccines-api/dataset/entities"
)

func profile(acronym, vaccine string) entities.ProductProfile {
	return entities.ProductProfile{
		Type:        acronym,
		Composition: vaccine + " (" + acronym + ")",
		Dosing:      "1 dose",
	}
}

// newTestCatalog returns pneumococcal vaccines 1-8 under pathogen 1 and a
// tuberculosis vaccine 9 under pathogen 2. Vaccine 1 is licensed by FDA and
// EMA, vaccine 8 by nobody.
func newTestCatalog() *catalog.Catalog {
	ds := &entities.Dataset{
		Pathogens: []entities.Pathogen{
			{PathogenID: 1, Name: "Streptococcus pneumoniae", Disease: "Pneumococcal disease"},
			{PathogenID: 2, Name: "Mycobacterium tuberculosis", Disease: "Tuberculosis"},
			{PathogenID: 3, Name: "Variola virus", Disease: "Smallpox"},
		},
		Licensers: []entities.Licenser{
			{LicenserID: 1, Acronym: "FDA"},
			{LicenserID: 2, Acronym: "EMA"},
		},
		Vaccines: []entities.Vaccine{
			{
				VaccineID: 1, Name: "PCV-1", VaccineType: entities.VaccineTypeSingle, PathogenID: []int{1},
				Licensers:       []entities.LicenserID{{LicenserID: 1}, {LicenserID: 2}},
				ProductProfiles: []entities.ProductProfile{profile("FDA", "PCV-1"), profile("EMA", "PCV-1")},
				LicensingDates:  []entities.LicensingDate{{Name: "FDA", ApprovalDate: "2020-01-01"}},
			},
			{
				VaccineID: 2, Name: "PCV-2", VaccineType: entities.VaccineTypeSingle, PathogenID: []int{1},
				ProductProfiles: []entities.ProductProfile{
					profile("FDA", "PCV-2"),
					{Type: "EMA", Composition: entities.NotLicensedComposition},
				},
			},
		},
	}
	for id := 3; id <= 7; id++ {
		name := fmt.Sprintf("PCV-%d", id)
		ds.Vaccines = append(ds.Vaccines, entities.Vaccine{
			VaccineID: id, Name: name, VaccineType: entities.VaccineTypeSingle, PathogenID: []int{1},
			ProductProfiles: []entities.ProductProfile{profile("FDA", name)},
		})
	}
	ds.Vaccines = append(ds.Vaccines,
		entities.Vaccine{
			VaccineID: 8, Name: "PCV-8", VaccineType: entities.VaccineTypeSingle, PathogenID: []int{1},
			ProductProfiles: []entities.ProductProfile{{Type: "FDA", Composition: entities.NotLicensedComposition}},
		},
		entities.Vaccine{
			VaccineID: 9, Name: "TBVax", VaccineType: entities.VaccineTypeSingle, PathogenID: []int{2},
			ProductProfiles: []entities.ProductProfile{profile("FDA", "TBVax")},
			LicensingDates: []entities.LicensingDate{
				{Name: "FDA", ApprovalDate: "2019-05-01", LastUpdated: "2024-01-15", Source: "https://example.org/tbvax"},
			},
		},
	)
	return catalog.New(ds)
}

func mustState(cat *catalog.Catalog, subject Subject, opts Options) *State {
	s, err := NewState(cat, subject, opts)
	if err != nil {
		panic(err)
	}
	return s
}
