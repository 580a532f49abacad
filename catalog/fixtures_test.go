package catalog

import "github.com/giygas/vaccines-api/dataset/entities"

func licensedProfile(acronym, composition string) entities.ProductProfile {
	return entities.ProductProfile{
		Type:        acronym,
		Composition: composition,
		Indication:  "Active immunization (" + acronym + ")",
		Dosing:      "1 dose",
	}
}

func notLicensedProfile(acronym string) entities.ProductProfile {
	return entities.ProductProfile{Type: acronym, Composition: entities.NotLicensedComposition}
}

func newTestDataset() *entities.Dataset {
	return &entities.Dataset{
		Pathogens: []entities.Pathogen{
			{PathogenID: 1, Name: "Influenza virus", Description: "Causes seasonal flu epidemics.", Disease: "Influenza"},
			{PathogenID: 2, Name: "Streptococcus pneumoniae", Description: "Bacterium causing pneumonia.", Disease: "Pneumococcal disease"},
			{PathogenID: 3, Name: "Bordetella pertussis", Description: "Bacterium causing whooping cough.", Disease: "Pertussis"},
			{PathogenID: 4, Name: "Clostridium tetani", Description: "Bacterium producing tetanus toxin.", Disease: "Tetanus"},
			{PathogenID: 5, Name: "Mycobacterium tuberculosis", Description: "Bacterium causing TB.", Disease: "Tuberculosis"},
			{PathogenID: 6, Name: "Respiratory syncytial virus", Description: "Common respiratory virus.", Disease: "RSV disease"},
		},
		Manufacturers: []entities.Manufacturer{
			{ManufacturerID: 1, Name: "Sanofi", Description: "French pharmaceutical company."},
			{ManufacturerID: 2, Name: "Seqirus", Description: "Influenza vaccine specialist."},
			{ManufacturerID: 3, Name: "Pfizer", Description: "American pharmaceutical company."},
			{ManufacturerID: 4, Name: "GSK", Description: "British pharmaceutical company."},
		},
		Licensers: []entities.Licenser{
			{LicenserID: 1, Acronym: "FDA", FullName: "Food and Drug Administration", Country: "United States"},
			{LicenserID: 2, Acronym: "EMA", FullName: "European Medicines Agency"},
			{LicenserID: 3, Acronym: "WHO", FullName: "World Health Organization", Description: "Prequalification programme."},
			{LicenserID: 4, Acronym: "MHRA", FullName: "Medicines and Healthcare products Regulatory Agency", Country: "United Kingdom"},
		},
		Vaccines: []entities.Vaccine{
			{
				VaccineID: 1, Name: "Fluzone High-Dose", Description: "High-dose inactivated influenza vaccine.",
				VaccineType: entities.VaccineTypeSingle, PathogenID: []int{1},
				Manufacturers:   []entities.ManufacturerID{{ManufacturerID: 1}},
				Licensers:       []entities.LicenserID{{LicenserID: 1}},
				ProductProfiles: []entities.ProductProfile{licensedProfile("FDA", "60 µg HA per strain"), notLicensedProfile("EMA")},
				LicensingDates:  []entities.LicensingDate{{Name: "FDA", ApprovalDate: "2009-12-23", LastUpdated: "2024-07-01", Source: "https://www.fda.gov/fluzone"}},
			},
			{
				VaccineID: 2, Name: "Prevnar 20", Description: "20-valent pneumococcal conjugate vaccine.",
				VaccineType: entities.VaccineTypeSingle, PathogenID: []int{2},
				Manufacturers:   []entities.ManufacturerID{{ManufacturerID: 3}},
				Licensers:       []entities.LicenserID{{LicenserID: 1}, {LicenserID: 2}},
				ProductProfiles: []entities.ProductProfile{licensedProfile("FDA", "PCV20"), licensedProfile("EMA", "PCV20 (Apexxnar)")},
				LicensingDates: []entities.LicensingDate{
					{Name: "FDA", ApprovalDate: "2021-06-08", LastUpdated: "2023-04-27", Source: "https://www.fda.gov/prevnar20"},
					{Name: "EMA", ApprovalDate: "2022-02-14", LastUpdated: "2024-03-01", Source: "https://www.ema.europa.eu/apexxnar"},
				},
			},
			{
				VaccineID: 3, Name: "Boostrix", Description: "Tdap booster.",
				VaccineType: entities.VaccineTypeCombination, PathogenID: []int{3, 4},
				Manufacturers:   []entities.ManufacturerID{{ManufacturerID: 4}},
				Licensers:       []entities.LicenserID{{LicenserID: 1}, {LicenserID: 2}},
				ProductProfiles: []entities.ProductProfile{licensedProfile("FDA", "Tdap"), notLicensedProfile("EMA")},
			},
			{
				VaccineID: 4, Name: "Arexvy", Description: "RSV prefusion F vaccine.",
				VaccineType: entities.VaccineTypeSingle, PathogenID: []int{6},
				Manufacturers:   []entities.ManufacturerID{{ManufacturerID: 4}},
				ProductProfiles: []entities.ProductProfile{licensedProfile("FDA", "RSVPreF3 + AS01E")},
			},
			{
				VaccineID: 5, Name: "Nuvapneumo", Description: "Pneumococcal vaccine.",
				VaccineType: entities.VaccineTypeSingle, PathogenID: []int{2},
				Manufacturers:   []entities.ManufacturerID{{ManufacturerID: 2}, {ManufacturerID: 1}},
				Licensers:       []entities.LicenserID{{LicenserID: 1}},
				ProductProfiles: []entities.ProductProfile{licensedProfile("FDA", "PPSV")},
			},
		},
		PipelineVaccines: []entities.PipelineVaccine{
			{ManufacturerID: 3, Name: "modRNA-flu", PathogenName: "Influenza virus", Platform: "mRNA", ClinicalPhase: "Phase 2"},
			{ManufacturerID: 4, Name: "M72/AS01E", PathogenName: "Tuberculosis", Platform: "Adjuvanted protein", ClinicalPhase: "Phase 3"},
		},
		Nitags: []entities.CountryNitag{
			{Country: "Germany", Committee: "STIKO"},
			{Country: "France", Committee: "CTV"},
			{Country: "United Kingdom", Committee: "JCVI"},
		},
	}
}

func vaccineIDs(vaccines []entities.Vaccine) []int {
	ids := []int{}
	for _, v := range vaccines {
		ids = append(ids, v.VaccineID)
	}
	return ids
}

func pathogenNames(pathogens []entities.Pathogen) []string {
	names := []string{}
	for _, p := range pathogens {
		names = append(names, p.Name)
	}
	return names
}
