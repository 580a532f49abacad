package entities

type Pathogen struct {
	PathogenID   int    `json:"pathogenId" yaml:"pathogenId"`
	Name         string `json:"name" yaml:"name"`
	Description  string `json:"description" yaml:"description"`
	Image        string `json:"image,omitempty" yaml:"image,omitempty"`
	Bulletpoints string `json:"bulletpoints,omitempty" yaml:"bulletpoints,omitempty"`
	Link         string `json:"link,omitempty" yaml:"link,omitempty"`
	Disease      string `json:"disease,omitempty" yaml:"disease,omitempty"`
}
