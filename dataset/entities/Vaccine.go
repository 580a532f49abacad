package entities

// NotLicensedComposition marks a product profile for an authority that has not
// licensed the vaccine.
const NotLicensedComposition = "- not licensed yet -"

type VaccineType string

const (
	VaccineTypeSingle      VaccineType = "single"
	VaccineTypeCombination VaccineType = "combination"
)

// Vaccine is a licensed vaccine product. PathogenID holds one id for single
// vaccines and two or more for combinations.
type Vaccine struct {
	VaccineID       int              `json:"vaccineId" yaml:"vaccineId"`
	Name            string           `json:"name" yaml:"name"`
	Description     string           `json:"description" yaml:"description"`
	VaccineType     VaccineType      `json:"vaccineType" yaml:"vaccineType"`
	PathogenID      []int            `json:"pathogenId" yaml:"pathogenId"`
	Manufacturers   []ManufacturerID `json:"manufacturers" yaml:"manufacturers"`
	Licensers       []LicenserID     `json:"licensers,omitempty" yaml:"licensers,omitempty"`
	ProductProfiles []ProductProfile `json:"productProfiles" yaml:"productProfiles"`
	LicensingDates  []LicensingDate  `json:"licensingDates" yaml:"licensingDates"`
}

type ManufacturerID struct {
	ManufacturerID int `json:"manufacturerId" yaml:"manufacturerId"`
}

type LicenserID struct {
	LicenserID int `json:"licenserId" yaml:"licenserId"`
}

// ProductProfile holds the label attributes published by one licensing
// authority. Type is the authority acronym (FDA, EMA, WHO).
type ProductProfile struct {
	Type                 string `json:"type" yaml:"type"`
	Composition          string `json:"composition" yaml:"composition"`
	StrainCoverage       string `json:"strainCoverage" yaml:"strainCoverage"`
	Indication           string `json:"indication" yaml:"indication"`
	Dosing               string `json:"dosing" yaml:"dosing"`
	Contraindication     string `json:"contraindication" yaml:"contraindication"`
	Immunogenicity       string `json:"immunogenicity" yaml:"immunogenicity"`
	Efficacy             string `json:"efficacy" yaml:"efficacy"`
	DurationOfProtection string `json:"durationOfProtection" yaml:"durationOfProtection"`
	CoAdministration     string `json:"coAdministration" yaml:"coAdministration"`
	Reactogenicity       string `json:"reactogenicity" yaml:"reactogenicity"`
	Safety               string `json:"safety" yaml:"safety"`
	VaccinationGoal      string `json:"vaccinationGoal" yaml:"vaccinationGoal"`
	Others               string `json:"others" yaml:"others"`
}

// Licensed reports whether the profile represents an actual license.
func (p ProductProfile) Licensed() bool {
	return p.Composition != NotLicensedComposition
}

type LicensingDate struct {
	Name         string `json:"name" yaml:"name"`
	ApprovalDate string `json:"approvalDate" yaml:"approvalDate"`
	LastUpdated  string `json:"lastUpdated" yaml:"lastUpdated"`
	Source       string `json:"source" yaml:"source"`
}
