package entities

// Dataset is the raw content of one load, in input order.
type Dataset struct {
	Pathogens        []Pathogen
	Vaccines         []Vaccine
	Manufacturers    []Manufacturer
	Licensers        []Licenser
	PipelineVaccines []PipelineVaccine
	Nitags           []CountryNitag
}
