package handlers

import (
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/giygas/vaccines-api/catalog"
	"github.com/giygas/vaccines-api/compare"
	"github.com/giygas/vaccines-api/metrics"
)

func TestServeTabs(t *testing.T) {
	router := newTestRouter(newTestHandler(t, compare.DefaultOptions()))

	rr := doRequest(t, router, http.MethodGet, "/browse", "")
	assertStatus(t, rr, http.StatusOK)

	got := decodeJSON[[]tabInfo](t, rr)
	want := []tabInfo{
		{Tab: catalog.TabLicensedVaccines, Count: 2},
		{Tab: catalog.TabVaccineCandidates, Count: 2},
		{Tab: catalog.TabManufacturers, Count: 2},
		{Tab: catalog.TabLicensers, Count: 2},
		{Tab: catalog.TabNitag, Count: 1},
		{Tab: catalog.TabCompare, Count: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Tabs mismatch (-want +got):\n%s", diff)
	}
}

func TestBrowse(t *testing.T) {
	router := newTestRouter(newTestHandler(t, compare.DefaultOptions()))

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expectedField  string
		expected       []string
	}{
		{"manufacturers sorted", "/browse/manufacturers", http.StatusOK, "", []string{"Merck & Co.", "Pfizer"}},
		{"keyword with ampersand", "/browse/manufacturers?keyword=merck%20%26", http.StatusOK, "", []string{"Merck & Co."}},
		{"letter filter", "/browse/manufacturers?letter=p", http.StatusOK, "", []string{"Pfizer"}},
		{"licenser priority", "/browse/licensers", http.StatusOK, "", []string{"FDA", "EMA"}},
		{"keyword through manufacturer", "/browse/licensed-vaccines?keyword=pfizer", http.StatusOK, "", []string{"Streptococcus pneumoniae"}},
		{"candidate cascade", "/browse/vaccine-candidates?keyword=conjugate", http.StatusOK, "", []string{"Streptococcus pneumoniae"}},
		{"nitag country", "/browse/nitag?keyword=fra", http.StatusOK, "", []string{"France"}},
		{"no match", "/browse/nitag?letter=z", http.StatusOK, "", []string{}},
		{"tab is case insensitive", "/browse/Licensers", http.StatusOK, "", []string{"FDA", "EMA"}},
		{"unknown tab", "/browse/unknown", http.StatusNotFound, "", nil},
		{"two letter filter", "/browse/manufacturers?letter=ab", http.StatusBadRequest, "letter", nil},
		{"dangerous keyword", "/browse/manufacturers?keyword=%3Cscript%3E", http.StatusBadRequest, "keyword", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, router, http.MethodGet, tt.path, "")
			assertStatus(t, rr, tt.expectedStatus)

			if tt.expectedField != "" {
				if body := decodeJSON[ErrorResponse](t, rr); body.Field != tt.expectedField {
					t.Errorf("Expected field %q, got %q", tt.expectedField, body.Field)
				}
			}
			if tt.expected == nil {
				return
			}
			result := decodeJSON[catalog.Result](t, rr)
			if diff := cmp.Diff(tt.expected, result.Names()); diff != "" {
				t.Errorf("Names mismatch (-want +got):\n%s", diff)
			}
			if result.Count != len(tt.expected) {
				t.Errorf("Expected count %d, got %d", len(tt.expected), result.Count)
			}
		})
	}
}

func TestBrowseRecordsSearches(t *testing.T) {
	router := newTestRouter(newTestHandler(t, compare.DefaultOptions()))
	counter := metrics.BrowseSearchesTotal.WithLabelValues(string(catalog.TabNitag))
	before := testutil.ToFloat64(counter)

	assertStatus(t, doRequest(t, router, http.MethodGet, "/browse/nitag", ""), http.StatusOK)
	assertStatus(t, doRequest(t, router, http.MethodGet, "/browse/nitag?letter=12", ""), http.StatusBadRequest)

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("Expected 1 recorded search, got %v", got)
	}
}
