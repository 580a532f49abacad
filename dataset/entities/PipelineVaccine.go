package entities

// PipelineVaccine is a vaccine candidate still in clinical development. It is
// tied to its pathogen by name only.
type PipelineVaccine struct {
	ManufacturerID int    `json:"manufacturerId" yaml:"manufacturerId"`
	Name           string `json:"name" yaml:"name"`
	PathogenName   string `json:"pathogenName" yaml:"pathogenName"`
	Platform       string `json:"platform" yaml:"platform"`
	ClinicalPhase  string `json:"clinicalPhase" yaml:"clinicalPhase"`
}
