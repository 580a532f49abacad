package entities

// CountryNitag summarises a country's National Immunization Technical Advisory
// Group. Summary is the pre-rendered HTML shown in the NITAG tab.
type CountryNitag struct {
	Country         string `json:"country"`
	Committee       string `json:"committee,omitempty"`
	YearEstablished string `json:"yearEstablished,omitempty"`
	YearEvaluated   string `json:"yearEvaluated,omitempty"`
	Website         string `json:"website,omitempty"`
	Summary         string `json:"summary"`
}
