package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/giygas/vaccines-api/catalog"
	"github.com/giygas/vaccines-api/compare"
	"github.com/giygas/vaccines-api/data"
	"github.com/giygas/vaccines-api/dataset/entities"
	"github.com/giygas/vaccines-api/interfaces"
	"github.com/giygas/vaccines-api/validation"
)

// ============================================================================
// TEST DATA
// ============================================================================

func testProfile(acronym, vaccine string) entities.ProductProfile {
	return entities.ProductProfile{
		Type:        acronym,
		Composition: vaccine + " conjugate",
		Dosing:      "1 dose",
	}
}

// testDataset holds two pathogens, two manufacturers and three vaccines.
// Prevnar 20 is licensed by FDA and EMA, Vaxneuvance by FDA only and the
// combination vaccine by nobody.
func testDataset() *entities.Dataset {
	return &entities.Dataset{
		Pathogens: []entities.Pathogen{
			{PathogenID: 1, Name: "Streptococcus pneumoniae", Disease: "Pneumococcal disease"},
			{PathogenID: 2, Name: "Mycobacterium tuberculosis", Disease: "Tuberculosis"},
		},
		Manufacturers: []entities.Manufacturer{
			{ManufacturerID: 1, Name: "Pfizer"},
			{ManufacturerID: 2, Name: "Merck & Co."},
		},
		Licensers: []entities.Licenser{
			{LicenserID: 1, Acronym: "FDA", FullName: "Food and Drug Administration"},
			{LicenserID: 2, Acronym: "EMA", FullName: "European Medicines Agency"},
		},
		Vaccines: []entities.Vaccine{
			{
				VaccineID: 1, Name: "Prevnar 20", VaccineType: entities.VaccineTypeSingle, PathogenID: []int{1},
				Manufacturers:   []entities.ManufacturerID{{ManufacturerID: 1}},
				Licensers:       []entities.LicenserID{{LicenserID: 1}, {LicenserID: 2}},
				ProductProfiles: []entities.ProductProfile{testProfile("FDA", "Prevnar 20"), testProfile("EMA", "Prevnar 20")},
				LicensingDates:  []entities.LicensingDate{{Name: "FDA", ApprovalDate: "2021-06-08"}},
			},
			{
				VaccineID: 2, Name: "Vaxneuvance", VaccineType: entities.VaccineTypeSingle, PathogenID: []int{1},
				Manufacturers: []entities.ManufacturerID{{ManufacturerID: 2}},
				ProductProfiles: []entities.ProductProfile{
					testProfile("FDA", "Vaxneuvance"),
					{Type: "EMA", Composition: entities.NotLicensedComposition},
				},
			},
			{
				VaccineID: 3, Name: "Combo TB-PCV", VaccineType: entities.VaccineTypeCombination, PathogenID: []int{1, 2},
				Manufacturers:   []entities.ManufacturerID{{ManufacturerID: 2}},
				ProductProfiles: []entities.ProductProfile{{Type: "FDA", Composition: entities.NotLicensedComposition}},
			},
		},
		PipelineVaccines: []entities.PipelineVaccine{
			{ManufacturerID: 1, Name: "PCV-25", PathogenName: "Streptococcus pneumoniae", Platform: "Conjugate", ClinicalPhase: "Phase II"},
		},
		Nitags: []entities.CountryNitag{
			{Country: "France", Committee: "CTV", Summary: "<p>France</p>"},
		},
	}
}

type mockHealthChecker struct {
	status     string
	details    map[string]any
	httpStatus int
}

func (m *mockHealthChecker) HealthCheck() (string, map[string]any, int) {
	return m.status, m.details, m.httpStatus
}

func (m *mockHealthChecker) CalculateNextUpdate() time.Time { return time.Time{} }

var _ interfaces.HealthChecker = (*mockHealthChecker)(nil)

func newTestHandler(t *testing.T, opts compare.Options) *HTTPHandlerImpl {
	t.Helper()

	store := data.NewDataContainer()
	store.UpdateData(catalog.New(testDataset()), &interfaces.DataQualityReport{}, "test")
	store.SetServerStartTime(time.Now().Add(-time.Minute))

	health := &mockHealthChecker{
		status:     "healthy",
		details:    map[string]any{"pathogens": 2},
		httpStatus: http.StatusOK,
	}
	return NewHTTPHandler(store, validation.NewDataValidator(), health, compare.NewSessionStore(time.Hour), opts)
}

// newTestRouter mounts the handler on the same paths the server uses
func newTestRouter(h *HTTPHandlerImpl) http.Handler {
	r := chi.NewRouter()

	r.Get("/pathogens/{id}", h.ServePathogen)
	r.Get("/pathogens/{id}/vaccines", h.ServePathogenVaccines)
	r.Get("/pathogens/{id}/candidates", h.ServePathogenCandidates)

	r.Get("/vaccines/{id}", h.ServeVaccine)
	r.Get("/vaccines/name/{name}", h.ServeVaccineByName)
	r.Get("/vaccines/{id}/pathogens", h.ServeVaccinePathogens)
	r.Get("/vaccines/{id}/manufacturers", h.ServeVaccineManufacturers)
	r.Get("/vaccines/{id}/licensers", h.ServeVaccineLicensers)

	r.Get("/manufacturers/{id}", h.ServeManufacturer)
	r.Get("/manufacturers/name/{name}", h.ServeManufacturerByName)
	r.Get("/manufacturers/{id}/vaccines", h.ServeManufacturerVaccines)
	r.Get("/manufacturers/{id}/pipeline", h.ServeManufacturerPipeline)

	r.Get("/licensers/{id}", h.ServeLicenser)
	r.Get("/licensers/{id}/vaccines", h.ServeLicenserVaccines)
	r.Get("/licensers/acronym/{acronym}", h.ServeLicenserByAcronym)
	r.Get("/licensers/acronym/{acronym}/vaccines", h.ServeLicenserVaccinesByAcronym)

	r.Get("/browse", h.ServeTabs)
	r.Get("/browse/{tab}", h.Browse)

	r.Get("/compare/fields", h.ServeCompareFields)
	r.Post("/compare/table", h.BuildCompareTable)
	r.Post("/compare/sessions", h.CreateCompareSession)
	r.Get("/compare/sessions/{id}", h.GetCompareSession)
	r.Delete("/compare/sessions/{id}", h.DeleteCompareSession)
	r.Post("/compare/sessions/{id}/vaccines/{vaccineId}/toggle", h.ToggleSessionVaccine)
	r.Post("/compare/sessions/{id}/vaccines/{vaccineId}/licensers/{acronym}/toggle", h.ToggleSessionLicenser)
	r.Post("/compare/sessions/{id}/fields", h.AddSessionField)
	r.Delete("/compare/sessions/{id}/fields/{field}", h.RemoveSessionField)
	r.Put("/compare/sessions/{id}/fields", h.SetSessionFields)
	r.Get("/compare/sessions/{id}/table", h.ServeSessionTable)

	r.Get("/health", h.HealthCheck)
	return r
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeJSON[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("Failed to decode response %q: %v", rr.Body.String(), err)
	}
	return out
}

func assertStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("Expected status %d, got %d: %s", want, rr.Code, rr.Body.String())
	}
}
