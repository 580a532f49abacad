package entities

type Manufacturer struct {
	ManufacturerID int                  `json:"manufacturerId" yaml:"manufacturerId"`
	Name           string               `json:"name" yaml:"name"`
	Description    string               `json:"description" yaml:"description"`
	Details        *ManufacturerDetails `json:"details,omitempty" yaml:"details,omitempty"`
}

// ManufacturerDetails keeps the free-form attributes shown on the manufacturer
// page next to the sources they were taken from.
type ManufacturerDetails struct {
	Website      string   `json:"website,omitempty" yaml:"website,omitempty"`
	Founded      string   `json:"founded,omitempty" yaml:"founded,omitempty"`
	Headquarters string   `json:"headquarters,omitempty" yaml:"headquarters,omitempty"`
	CEO          string   `json:"ceo,omitempty" yaml:"ceo,omitempty"`
	Revenue      string   `json:"revenue,omitempty" yaml:"revenue,omitempty"`
	Employees    string   `json:"employees,omitempty" yaml:"employees,omitempty"`
	Sources      []Source `json:"sources" yaml:"sources"`
}

type Source struct {
	Title       string `json:"title" yaml:"title"`
	Link        string `json:"link" yaml:"link"`
	LastUpdated string `json:"lastUpdated" yaml:"lastUpdated"`
}
