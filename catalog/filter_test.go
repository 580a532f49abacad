package catalog

import (
	"testing"

	"github.com/giygas/vaccines-api/dataset/entities"
	"github.com/google/go-cmp/cmp"
)

func TestFilterEntities(t *testing.T) {
	c := New(newTestDataset())

	tests := []struct {
		name     string
		tab      Tab
		letter   string
		keyword  string
		expected []string
	}{
		{
			name:     "licensed tab lists every pathogen sorted",
			tab:      TabLicensedVaccines,
			expected: []string{"Bordetella pertussis", "Clostridium tetani", "Influenza virus", "Mycobacterium tuberculosis", "Respiratory syncytial virus", "Streptococcus pneumoniae"},
		},
		{
			name:     "letter filter is case-insensitive",
			tab:      TabLicensedVaccines,
			letter:   "s",
			expected: []string{"Streptococcus pneumoniae"},
		},
		{
			name:     "keyword reaches manufacturers of single vaccines",
			tab:      TabLicensedVaccines,
			keyword:  "flu",
			expected: []string{"Influenza virus", "Streptococcus pneumoniae"},
		},
		{
			name:     "combination vaccines do not count on the licensed tab",
			tab:      TabLicensedVaccines,
			keyword:  "gsk",
			expected: []string{"Respiratory syncytial virus"},
		},
		{
			name:     "vaccine name on the licensed tab",
			tab:      TabLicensedVaccines,
			keyword:  "prevnar",
			expected: []string{"Streptococcus pneumoniae"},
		},
		{
			name:     "letter then keyword",
			tab:      TabLicensedVaccines,
			letter:   "I",
			keyword:  "flu",
			expected: []string{"Influenza virus"},
		},
		{
			name:     "candidates tab matches pipeline platform",
			tab:      TabVaccineCandidates,
			keyword:  "mRNA",
			expected: []string{"Influenza virus"},
		},
		{
			name:     "candidates tab matches pipeline manufacturer through the disease",
			tab:      TabVaccineCandidates,
			keyword:  "GSK",
			expected: []string{"Mycobacterium tuberculosis"},
		},
		{
			name:     "compare tab includes combination vaccines",
			tab:      TabCompare,
			keyword:  "gsk",
			expected: []string{"Bordetella pertussis", "Clostridium tetani", "Respiratory syncytial virus"},
		},
		{
			name:     "compare tab skips pathogens without vaccines",
			tab:      TabCompare,
			expected: []string{"Bordetella pertussis", "Clostridium tetani", "Influenza virus", "Respiratory syncytial virus", "Streptococcus pneumoniae"},
		},
		{
			name:     "manufacturers sorted",
			tab:      TabManufacturers,
			expected: []string{"GSK", "Pfizer", "Sanofi", "Seqirus"},
		},
		{
			name:     "manufacturer keyword on own text only",
			tab:      TabManufacturers,
			keyword:  "pharma",
			expected: []string{"GSK", "Pfizer", "Sanofi"},
		},
		{
			name:     "manufacturer keyword ignores vaccines",
			tab:      TabManufacturers,
			keyword:  "prevnar",
			expected: []string{},
		},
		{
			name:     "licensers in priority order",
			tab:      TabLicensers,
			expected: []string{"FDA", "EMA", "WHO", "MHRA"},
		},
		{
			name:     "licenser keyword on description",
			tab:      TabLicensers,
			keyword:  "prequalification",
			expected: []string{"WHO"},
		},
		{
			name:     "licenser letter on acronym",
			tab:      TabLicensers,
			letter:   "m",
			expected: []string{"MHRA"},
		},
		{
			name:     "nitags sorted by country",
			tab:      TabNitag,
			expected: []string{"France", "Germany", "United Kingdom"},
		},
		{
			name:     "nitag keyword on country",
			tab:      TabNitag,
			keyword:  "king",
			expected: []string{"United Kingdom"},
		},
		{
			name:     "nitag keyword ignores committee",
			tab:      TabNitag,
			keyword:  "stiko",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := c.FilterEntities(tt.tab, tt.letter, tt.keyword)
			if err != nil {
				t.Fatalf("FilterEntities returned error: %v", err)
			}
			got := result.Names()
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("FilterEntities(%s, %q, %q) mismatch (-want +got):\n%s", tt.tab, tt.letter, tt.keyword, diff)
			}
			if result.Count != len(got) {
				t.Errorf("Count = %d, want %d", result.Count, len(got))
			}
		})
	}
}

func TestFilterEntitiesUnknownTab(t *testing.T) {
	c := New(newTestDataset())
	if _, err := c.FilterEntities(Tab("settings"), "", ""); err == nil {
		t.Error("expected an error for an unknown tab")
	}
}

func TestFilterByStartingLetterEmptyIsIdentity(t *testing.T) {
	list := []string{"beta", "Alpha", "gamma"}
	got := FilterByStartingLetter(list, "", func(s string) string { return s })
	if diff := cmp.Diff(list, got); diff != "" {
		t.Errorf("empty letter should keep the list (-want +got):\n%s", diff)
	}

	got[0] = "changed"
	if list[0] != "beta" {
		t.Error("result must not share the input backing array")
	}
}

func TestFilterByKeywordIsIdempotent(t *testing.T) {
	c := New(newTestDataset())
	match := func(p entities.Pathogen, kw string) bool { return c.pathogenMatches(TabLicensedVaccines, p, kw) }

	for _, keyword := range []string{"flu", "virus", "gsk", "zzz", ""} {
		once := FilterByKeyword(c.Pathogens(), keyword, match)
		twice := FilterByKeyword(once, keyword, match)
		if diff := cmp.Diff(pathogenNames(once), pathogenNames(twice)); diff != "" {
			t.Errorf("keyword %q is not idempotent (-once +twice):\n%s", keyword, diff)
		}
	}
}

func TestFilterDoesNotMutateCatalog(t *testing.T) {
	c := New(newTestDataset())
	before := pathogenNames(c.Pathogens())

	if _, err := c.FilterEntities(TabLicensedVaccines, "", ""); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(before, pathogenNames(c.Pathogens())); diff != "" {
		t.Errorf("sorting a result reordered the catalog (-before +after):\n%s", diff)
	}
}

func TestCompareGroups(t *testing.T) {
	c := New(newTestDataset())

	groups := c.CompareGroups()
	if len(groups) != 5 {
		t.Fatalf("expected 5 groups, got %d", len(groups))
	}
	if groups[1].Name != "Streptococcus pneumoniae" {
		t.Errorf("groups should keep input order, got %q second", groups[1].Name)
	}
	if diff := cmp.Diff([]int{2, 5}, vaccineIDs(groups[1].Vaccines)); diff != "" {
		t.Errorf("group vaccines mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTab(t *testing.T) {
	for _, tab := range Tabs() {
		got, err := ParseTab(string(tab))
		if err != nil || got != tab {
			t.Errorf("ParseTab(%q) = %q, %v", tab, got, err)
		}
	}
	if got, err := ParseTab(" NITAG "); err != nil || got != TabNitag {
		t.Errorf("ParseTab should normalize case and space, got %q, %v", got, err)
	}
	if _, err := ParseTab("pathogens"); err == nil {
		t.Error("expected error for unknown tab")
	}
}
