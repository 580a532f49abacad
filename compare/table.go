package compare

import (
	"fmt"

	"github.com/giygas/vaccines-api/catalog"
	"github.com/giygas/vaccines-api/dataset/entities"
)

// Selection is one vaccine of the comparison together with the licensing
// authorities whose profiles should be shown for it.
type Selection struct {
	VaccineID int      `json:"vaccineId"`
	Licensers []string `json:"licensers"`
}

// Request is the input of BuildComparisonTable. An empty Fields list selects
// the required fields of the subject's variant.
type Request struct {
	Subject    Subject         `json:"subject"`
	Selections []Selection     `json:"selections"`
	Fields     []catalog.Field `json:"fields"`
}

type Column struct {
	VaccineID   int    `json:"vaccineId"`
	VaccineName string `json:"vaccineName"`
	Licenser    string `json:"licenser"`
}

type Row struct {
	Field catalog.Field `json:"field"`
	Label string        `json:"label"`
	Cells []string      `json:"cells"`
}

// Chunk holds up to ChunkSize vaccines laid out side by side. Every row has
// one cell per column.
type Chunk struct {
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Table is the row-major comparison pivot.
type Table struct {
	Subject     Subject         `json:"subject"`
	SubjectName string          `json:"subjectName"`
	Variant     Variant         `json:"variant"`
	Fields      []catalog.Field `json:"fields"`
	Chunks      []Chunk         `json:"chunks"`
	Warnings    []string        `json:"warnings,omitempty"`
}

// Columns returns the columns of every chunk in order.
func (t Table) Columns() []Column {
	var cols []Column
	for _, c := range t.Chunks {
		cols = append(cols, c.Columns...)
	}
	return cols
}

type resolvedSelection struct {
	vaccine   entities.Vaccine
	licensers []string
}

// BuildComparisonTable validates a set of selections against the subject
// and renders the pivot. Selections without licensers contribute nothing.
func BuildComparisonTable(cat *catalog.Catalog, req Request, opts Options) (Table, error) {
	opts = opts.normalized()

	name, candidates, err := req.Subject.resolve(cat)
	if err != nil {
		return Table{}, err
	}
	variant := req.Subject.Variant()

	fields := req.Fields
	if len(fields) == 0 {
		fields = RequiredFields(variant)
	}
	if err := ValidateFields(variant, fields); err != nil {
		return Table{}, err
	}

	byID := make(map[int]entities.Vaccine, len(candidates))
	for _, v := range candidates {
		byID[v.VaccineID] = v
	}

	seen := make(map[int]bool, len(req.Selections))
	resolved := make([]resolvedSelection, 0, len(req.Selections))
	for _, sel := range req.Selections {
		v, ok := byID[sel.VaccineID]
		if !ok {
			return Table{}, reject("vaccineId", ErrUnknownVaccine,
				fmt.Sprintf("Vaccine %d is not available for %s", sel.VaccineID, name))
		}
		if seen[sel.VaccineID] {
			return Table{}, reject("vaccineId", ErrDuplicateVaccine,
				fmt.Sprintf("%s is already selected", v.Name))
		}
		seen[sel.VaccineID] = true

		licensers, err := checkedLicensers(v, sel.Licensers)
		if err != nil {
			return Table{}, err
		}
		if len(licensers) == 0 {
			continue
		}
		resolved = append(resolved, resolvedSelection{vaccine: v, licensers: licensers})
	}

	warning, err := opts.checkCap(len(resolved))
	if err != nil {
		return Table{}, err
	}

	table := render(cat, resolved, fields)
	table.Subject = req.Subject
	table.SubjectName = name
	table.Variant = variant
	if warning != "" {
		table.Warnings = append(table.Warnings, warning)
	}
	return table, nil
}

// checkedLicensers keeps the requested acronyms in the vaccine's profile
// order and rejects the ones the vaccine holds no license from.
func checkedLicensers(v entities.Vaccine, requested []string) ([]string, error) {
	available := catalog.LicensedAuthorities(v)
	want := make(map[string]bool, len(requested))
	for _, acronym := range requested {
		found := false
		for _, a := range available {
			if a == acronym {
				found = true
				break
			}
		}
		if !found {
			return nil, reject("licensers", ErrUnknownLicenser,
				fmt.Sprintf("%s holds no %s license", v.Name, acronym))
		}
		want[acronym] = true
	}

	out := make([]string, 0, len(want))
	for _, a := range available {
		if want[a] {
			out = append(out, a)
		}
	}
	return out, nil
}

func render(cat *catalog.Catalog, selections []resolvedSelection, fields []catalog.Field) Table {
	table := Table{
		Fields: append([]catalog.Field(nil), fields...),
		Chunks: []Chunk{},
	}

	for start := 0; start < len(selections); start += ChunkSize {
		end := min(start+ChunkSize, len(selections))

		var chunk Chunk
		for _, sel := range selections[start:end] {
			for _, acronym := range sel.licensers {
				chunk.Columns = append(chunk.Columns, Column{
					VaccineID:   sel.vaccine.VaccineID,
					VaccineName: sel.vaccine.Name,
					Licenser:    acronym,
				})
			}
		}

		for _, f := range fields {
			row := Row{Field: f, Label: f.Label(), Cells: make([]string, 0, len(chunk.Columns))}
			for _, col := range chunk.Columns {
				row.Cells = append(row.Cells, cellValue(cat, f, col))
			}
			chunk.Rows = append(chunk.Rows, row)
		}
		table.Chunks = append(table.Chunks, chunk)
	}
	return table
}

func cellValue(cat *catalog.Catalog, f catalog.Field, col Column) string {
	if f == catalog.FieldType {
		return col.Licenser + " - " + col.VaccineName
	}
	return cat.ProductProfileValue(col.Licenser, f, col.VaccineName)
}
