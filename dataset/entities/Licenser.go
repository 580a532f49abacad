package entities

type Licenser struct {
	LicenserID  int    `json:"licenserId" yaml:"licenserId"`
	Acronym     string `json:"acronym" yaml:"acronym"`
	FullName    string `json:"fullName" yaml:"fullName"`
	Country     string `json:"country,omitempty" yaml:"country,omitempty"`
	Website     string `json:"website,omitempty" yaml:"website,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}
