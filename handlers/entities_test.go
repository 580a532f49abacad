package handlers

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"

	"github.com/giygas/vaccines-api/compare"
	"github.com/giygas/vaccines-api/dataset/entities"
)

func vaccineNames(list []entities.Vaccine) []string {
	names := make([]string, 0, len(list))
	for _, v := range list {
		names = append(names, v.Name)
	}
	return names
}

func TestNewHTTPHandlerDefaultsSessions(t *testing.T) {
	h := NewHTTPHandler(nil, nil, nil, nil, compare.DefaultOptions())
	if h == nil {
		t.Fatal("Handler should not be nil")
	}
	if h.sessions == nil {
		t.Error("Expected a default session store")
	}
}

func TestServePathogen(t *testing.T) {
	router := newTestRouter(newTestHandler(t, compare.DefaultOptions()))

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expectedName   string
	}{
		{"existing pathogen", "/pathogens/1", http.StatusOK, "Streptococcus pneumoniae"},
		{"missing pathogen", "/pathogens/99", http.StatusNotFound, ""},
		{"non numeric id", "/pathogens/abc", http.StatusBadRequest, ""},
		{"zero id", "/pathogens/0", http.StatusBadRequest, ""},
		{"too many digits", "/pathogens/1234567890", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, router, http.MethodGet, tt.path, "")
			assertStatus(t, rr, tt.expectedStatus)

			if tt.expectedStatus != http.StatusOK {
				body := decodeJSON[ErrorResponse](t, rr)
				if body.Code != tt.expectedStatus || body.Error != http.StatusText(tt.expectedStatus) {
					t.Errorf("Unexpected error body: %+v", body)
				}
				return
			}
			if got := decodeJSON[entities.Pathogen](t, rr); got.Name != tt.expectedName {
				t.Errorf("Expected %q, got %q", tt.expectedName, got.Name)
			}
		})
	}
}

func TestServePathogenVaccines(t *testing.T) {
	router := newTestRouter(newTestHandler(t, compare.DefaultOptions()))

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expected       []string
	}{
		{"all vaccines sorted", "/pathogens/1/vaccines", http.StatusOK, []string{"Combo TB-PCV", "Prevnar 20", "Vaxneuvance"}},
		{"single only", "/pathogens/1/vaccines?mode=single", http.StatusOK, []string{"Prevnar 20", "Vaxneuvance"}},
		{"combination only", "/pathogens/1/vaccines?mode=combination", http.StatusOK, []string{"Combo TB-PCV"}},
		{"combination of second pathogen", "/pathogens/2/vaccines?mode=COMBINATION", http.StatusOK, []string{"Combo TB-PCV"}},
		{"unknown mode", "/pathogens/1/vaccines?mode=bogus", http.StatusBadRequest, nil},
		{"missing pathogen", "/pathogens/42/vaccines", http.StatusNotFound, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, router, http.MethodGet, tt.path, "")
			assertStatus(t, rr, tt.expectedStatus)
			if tt.expected == nil {
				return
			}
			got := vaccineNames(decodeJSON[[]entities.Vaccine](t, rr))
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("Vaccines mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestServePathogenCandidates(t *testing.T) {
	router := newTestRouter(newTestHandler(t, compare.DefaultOptions()))

	rr := doRequest(t, router, http.MethodGet, "/pathogens/1/candidates", "")
	assertStatus(t, rr, http.StatusOK)
	got := decodeJSON[[]entities.PipelineVaccine](t, rr)
	if len(got) != 1 || got[0].Name != "PCV-25" {
		t.Errorf("Expected PCV-25, got %+v", got)
	}

	rr = doRequest(t, router, http.MethodGet, "/pathogens/2/candidates", "")
	assertStatus(t, rr, http.StatusOK)
	if rr.Body.String() != "[]" {
		t.Errorf("Expected an empty array, got %s", rr.Body.String())
	}
}

func TestServeVaccineEndpoints(t *testing.T) {
	router := newTestRouter(newTestHandler(t, compare.DefaultOptions()))

	t.Run("by id", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodGet, "/vaccines/2", "")
		assertStatus(t, rr, http.StatusOK)
		if got := decodeJSON[entities.Vaccine](t, rr); got.Name != "Vaxneuvance" {
			t.Errorf("Expected Vaxneuvance, got %q", got.Name)
		}
	})

	t.Run("by escaped name", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodGet, "/vaccines/name/Prevnar%2020", "")
		assertStatus(t, rr, http.StatusOK)
		if got := decodeJSON[entities.Vaccine](t, rr); got.VaccineID != 1 {
			t.Errorf("Expected vaccine 1, got %d", got.VaccineID)
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		assertStatus(t, doRequest(t, router, http.MethodGet, "/vaccines/name/Unknown", ""), http.StatusNotFound)
	})

	t.Run("pathogens of a combination", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodGet, "/vaccines/3/pathogens", "")
		assertStatus(t, rr, http.StatusOK)
		if got := decodeJSON[[]entities.Pathogen](t, rr); len(got) != 2 {
			t.Errorf("Expected 2 pathogens, got %d", len(got))
		}
	})

	t.Run("manufacturers", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodGet, "/vaccines/1/manufacturers", "")
		assertStatus(t, rr, http.StatusOK)
		got := decodeJSON[[]entities.Manufacturer](t, rr)
		if len(got) != 1 || got[0].Name != "Pfizer" {
			t.Errorf("Expected Pfizer, got %+v", got)
		}
	})

	t.Run("licensers in priority order", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodGet, "/vaccines/1/licensers", "")
		assertStatus(t, rr, http.StatusOK)
		var acronyms []string
		for _, l := range decodeJSON[[]entities.Licenser](t, rr) {
			acronyms = append(acronyms, l.Acronym)
		}
		if diff := cmp.Diff([]string{"FDA", "EMA"}, acronyms); diff != "" {
			t.Errorf("Licensers mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("missing vaccine", func(t *testing.T) {
		assertStatus(t, doRequest(t, router, http.MethodGet, "/vaccines/77/licensers", ""), http.StatusNotFound)
	})
}

func TestServeManufacturerEndpoints(t *testing.T) {
	router := newTestRouter(newTestHandler(t, compare.DefaultOptions()))

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expected       []string
	}{
		{"all vaccines", "/manufacturers/2/vaccines", http.StatusOK, []string{"Combo TB-PCV", "Vaxneuvance"}},
		{"licensed only", "/manufacturers/2/vaccines?licensed=true", http.StatusOK, []string{"Vaxneuvance"}},
		{"licensed false", "/manufacturers/2/vaccines?licensed=false", http.StatusOK, []string{"Combo TB-PCV", "Vaxneuvance"}},
		{"invalid licensed flag", "/manufacturers/2/vaccines?licensed=maybe", http.StatusBadRequest, nil},
		{"missing manufacturer", "/manufacturers/9/vaccines", http.StatusNotFound, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, router, http.MethodGet, tt.path, "")
			assertStatus(t, rr, tt.expectedStatus)
			if tt.expected == nil {
				return
			}
			if diff := cmp.Diff(tt.expected, vaccineNames(decodeJSON[[]entities.Vaccine](t, rr))); diff != "" {
				t.Errorf("Vaccines mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("by name with ampersand", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodGet, "/manufacturers/name/Merck%20%26%20Co.", "")
		assertStatus(t, rr, http.StatusOK)
		if got := decodeJSON[entities.Manufacturer](t, rr); got.ManufacturerID != 2 {
			t.Errorf("Expected manufacturer 2, got %d", got.ManufacturerID)
		}
	})

	t.Run("pipeline", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodGet, "/manufacturers/1/pipeline", "")
		assertStatus(t, rr, http.StatusOK)
		if got := decodeJSON[[]entities.PipelineVaccine](t, rr); len(got) != 1 {
			t.Errorf("Expected 1 candidate, got %d", len(got))
		}
	})

	t.Run("by id", func(t *testing.T) {
		assertStatus(t, doRequest(t, router, http.MethodGet, "/manufacturers/1", ""), http.StatusOK)
	})
}

func TestServeLicenserEndpoints(t *testing.T) {
	router := newTestRouter(newTestHandler(t, compare.DefaultOptions()))

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expected       []string
	}{
		{"vaccines referencing licenser", "/licensers/1/vaccines", http.StatusOK, []string{"Prevnar 20"}},
		{"vaccines licensed by acronym", "/licensers/acronym/FDA/vaccines", http.StatusOK, []string{"Prevnar 20", "Vaxneuvance"}},
		{"not licensed profile skipped", "/licensers/acronym/EMA/vaccines", http.StatusOK, []string{"Prevnar 20"}},
		{"unknown acronym", "/licensers/acronym/TGA/vaccines", http.StatusNotFound, nil},
		{"acronym is case sensitive", "/licensers/acronym/fda", http.StatusNotFound, nil},
		{"missing licenser", "/licensers/3", http.StatusNotFound, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, router, http.MethodGet, tt.path, "")
			assertStatus(t, rr, tt.expectedStatus)
			if tt.expected == nil {
				return
			}
			if diff := cmp.Diff(tt.expected, vaccineNames(decodeJSON[[]entities.Vaccine](t, rr))); diff != "" {
				t.Errorf("Vaccines mismatch (-want +got):\n%s", diff)
			}
		})
	}

	rr := doRequest(t, router, http.MethodGet, "/licensers/acronym/EMA", "")
	assertStatus(t, rr, http.StatusOK)
	if got := decodeJSON[entities.Licenser](t, rr); got.LicenserID != 2 {
		t.Errorf("Expected licenser 2, got %d", got.LicenserID)
	}
}

func TestPathTextDecodesOnce(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/echo/{name}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(pathText(r, "name")))
	})

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"plain", "/echo/FDA", "FDA"},
		{"escaped space", "/echo/Prevnar%2020", "Prevnar 20"},
		{"escaped percent stays literal", "/echo/Lab%2541", "Lab%41"},
		{"escaped slash", "/echo/a%2Fb", "a/b"},
		{"surrounding spaces trimmed", "/echo/%20EMA%20", "EMA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, router, http.MethodGet, tt.path, "")
			assertStatus(t, rr, http.StatusOK)
			if got := rr.Body.String(); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}

	handlerRouter := newTestRouter(newTestHandler(t, compare.DefaultOptions()))
	assertStatus(t, doRequest(t, handlerRouter, http.MethodGet, "/vaccines/name/Prevnar%2020", ""), http.StatusOK)
	assertStatus(t, doRequest(t, handlerRouter, http.MethodGet, "/licensers/acronym/F%2544A", ""), http.StatusNotFound)
}
