package compare

import (
	"fmt"
	"slices"

	"github.com/giygas/vaccines-api/catalog"
)

// LicenserOption is one licenser checkbox under a vaccine.
type LicenserOption struct {
	Acronym string `json:"acronym"`
	Checked bool   `json:"checked"`
}

// VaccineOption is one vaccine checkbox of the comparison checklist. Checked
// is true exactly when at least one of its licensers is checked.
type VaccineOption struct {
	VaccineID int              `json:"vaccineId"`
	Name      string           `json:"name"`
	Checked   bool             `json:"checked"`
	Licensers []LicenserOption `json:"licensers"`
}

func (o *VaccineOption) checkedLicensers() int {
	n := 0
	for _, l := range o.Licensers {
		if l.Checked {
			n++
		}
	}
	return n
}

func (o *VaccineOption) sync() {
	o.Checked = o.checkedLicensers() > 0
}

// State is the comparison application state: the subject, its vaccine
// checklist and the ordered list of displayed fields. Every edit either
// applies completely or returns an error and leaves the state untouched.
type State struct {
	Subject     Subject         `json:"subject"`
	SubjectName string          `json:"subjectName"`
	Variant     Variant         `json:"variant"`
	Vaccines    []VaccineOption `json:"vaccines"`
	Fields      []catalog.Field `json:"fields"`

	opts Options
}

// NewState builds an unchecked checklist of every vaccine of the subject.
// Licensers per vaccine are the authorities it holds a license from.
func NewState(cat *catalog.Catalog, subject Subject, opts Options) (*State, error) {
	name, vaccines, err := subject.resolve(cat)
	if err != nil {
		return nil, err
	}

	s := &State{
		Subject:     subject,
		SubjectName: name,
		Variant:     subject.Variant(),
		Vaccines:    make([]VaccineOption, 0, len(vaccines)),
		Fields:      RequiredFields(subject.Variant()),
		opts:        opts.normalized(),
	}
	for _, v := range vaccines {
		opt := VaccineOption{VaccineID: v.VaccineID, Name: v.Name, Licensers: []LicenserOption{}}
		for _, acronym := range catalog.LicensedAuthorities(v) {
			opt.Licensers = append(opt.Licensers, LicenserOption{Acronym: acronym})
		}
		s.Vaccines = append(s.Vaccines, opt)
	}
	return s, nil
}

// Options returns the cap settings the state was created with.
func (s *State) Options() Options {
	return s.opts
}

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	c := *s
	c.Vaccines = make([]VaccineOption, len(s.Vaccines))
	for i, v := range s.Vaccines {
		v.Licensers = slices.Clone(v.Licensers)
		c.Vaccines[i] = v
	}
	c.Fields = slices.Clone(s.Fields)
	return &c
}

// CheckedCount returns the number of checked vaccines.
func (s *State) CheckedCount() int {
	n := 0
	for _, v := range s.Vaccines {
		if v.Checked {
			n++
		}
	}
	return n
}

func (s *State) option(vaccineID int) (*VaccineOption, error) {
	for i := range s.Vaccines {
		if s.Vaccines[i].VaccineID == vaccineID {
			return &s.Vaccines[i], nil
		}
	}
	return nil, reject("vaccineId", ErrUnknownVaccine,
		fmt.Sprintf("Vaccine %d is not available for %s", vaccineID, s.SubjectName))
}

// capFor checks the cap for a selection that is about to check one more
// vaccine.
func (s *State) capFor(opt *VaccineOption) (string, error) {
	if opt.Checked {
		return "", nil
	}
	return s.opts.checkCap(s.CheckedCount() + 1)
}

// ToggleVaccine checks every licenser of an unchecked vaccine, or unchecks
// every licenser of a checked one. The returned warning is set when the
// advisory cap policy lets the selection go over the limit.
func (s *State) ToggleVaccine(vaccineID int) (string, error) {
	opt, err := s.option(vaccineID)
	if err != nil {
		return "", err
	}

	if opt.Checked {
		for i := range opt.Licensers {
			opt.Licensers[i].Checked = false
		}
		opt.sync()
		return "", nil
	}

	if len(opt.Licensers) == 0 {
		return "", reject("vaccineId", ErrNoLicensers,
			fmt.Sprintf("%s has no license to compare", opt.Name))
	}
	warning, err := s.capFor(opt)
	if err != nil {
		return "", err
	}
	for i := range opt.Licensers {
		opt.Licensers[i].Checked = true
	}
	opt.sync()
	return warning, nil
}

// ToggleLicenser flips one licenser checkbox. Checking the first licenser of
// a vaccine checks the vaccine, unchecking the last one unchecks it.
func (s *State) ToggleLicenser(vaccineID int, acronym string) (string, error) {
	opt, err := s.option(vaccineID)
	if err != nil {
		return "", err
	}

	idx := -1
	for i, l := range opt.Licensers {
		if l.Acronym == acronym {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", reject("licenser", ErrUnknownLicenser,
			fmt.Sprintf("%s holds no %s license", opt.Name, acronym))
	}

	var warning string
	if !opt.Licensers[idx].Checked {
		warning, err = s.capFor(opt)
		if err != nil {
			return "", err
		}
	}
	opt.Licensers[idx].Checked = !opt.Licensers[idx].Checked
	opt.sync()
	return warning, nil
}

// AddField appends a field to the displayed list.
func (s *State) AddField(f catalog.Field) error {
	if !f.Valid() {
		return reject(string(f), ErrUnknownField, fmt.Sprintf("Unknown field %q", f))
	}
	if slices.Contains(s.Fields, f) {
		return reject(string(f), ErrDuplicateField, fmt.Sprintf("%s is already selected", f.Label()))
	}
	s.Fields = append(s.Fields, f)
	return nil
}

// RemoveField removes a field from the displayed list. Required fields cannot
// be removed.
func (s *State) RemoveField(f catalog.Field) error {
	if !f.Valid() {
		return reject(string(f), ErrUnknownField, fmt.Sprintf("Unknown field %q", f))
	}
	if isRequired(s.Variant, f) {
		return reject(string(f), ErrRequiredField, fmt.Sprintf("%s is required and cannot be removed", f.Label()))
	}
	idx := slices.Index(s.Fields, f)
	if idx < 0 {
		return reject(string(f), ErrUnknownField, fmt.Sprintf("%s is not selected", f.Label()))
	}
	s.Fields = slices.Delete(s.Fields, idx, idx+1)
	return nil
}

// SetFields replaces the displayed list, keeping the given order.
func (s *State) SetFields(fields []catalog.Field) error {
	if err := ValidateFields(s.Variant, fields); err != nil {
		return err
	}
	s.Fields = slices.Clone(fields)
	return nil
}

// Selections returns the checked vaccines with their checked licensers, in
// checklist order.
func (s *State) Selections() []Selection {
	out := []Selection{}
	for _, v := range s.Vaccines {
		if !v.Checked {
			continue
		}
		sel := Selection{VaccineID: v.VaccineID}
		for _, l := range v.Licensers {
			if l.Checked {
				sel.Licensers = append(sel.Licensers, l.Acronym)
			}
		}
		out = append(out, sel)
	}
	return out
}

// Table renders the current selection against cat.
func (s *State) Table(cat *catalog.Catalog) (Table, error) {
	return BuildComparisonTable(cat, Request{
		Subject:    s.Subject,
		Selections: s.Selections(),
		Fields:     s.Fields,
	}, s.opts)
}
