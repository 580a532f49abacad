// Package handlers provides the HTTP handlers of the vaccines API: entity
// pages, browse tabs, the comparison builder and sessions, and health.
package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/giygas/vaccines-api/catalog"
	"github.com/giygas/vaccines-api/compare"
	"github.com/giygas/vaccines-api/dataset/entities"
	"github.com/giygas/vaccines-api/interfaces"
	"github.com/giygas/vaccines-api/logging"
)

var _ interfaces.HTTPHandler = (*HTTPHandlerImpl)(nil)

// HTTPHandlerImpl implements the interfaces.HTTPHandler interface
type HTTPHandlerImpl struct {
	dataStore   interfaces.DataStore
	validator   interfaces.DataValidator
	health      interfaces.HealthChecker
	sessions    *compare.SessionStore
	compareOpts compare.Options
}

// NewHTTPHandler creates a new HTTP handler with injected dependencies
func NewHTTPHandler(
	dataStore interfaces.DataStore,
	validator interfaces.DataValidator,
	health interfaces.HealthChecker,
	sessions *compare.SessionStore,
	compareOpts compare.Options,
) *HTTPHandlerImpl {
	if sessions == nil {
		sessions = compare.NewSessionStore(compare.DefaultSessionTTL)
	}
	return &HTTPHandlerImpl{
		dataStore:   dataStore,
		validator:   validator,
		health:      health,
		sessions:    sessions,
		compareOpts: compareOpts,
	}
}

func (h *HTTPHandlerImpl) catalog() *catalog.Catalog {
	return h.dataStore.GetCatalog()
}

// pathID validates the named numeric path parameter, answering 400 when it is malformed
func (h *HTTPHandlerImpl) pathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := chi.URLParam(r, name)
	id, err := h.validator.ValidateID(raw)
	if err != nil {
		logging.Warn("Unusual user input", name, raw)
		RespondWithError(w, r, http.StatusBadRequest, "Invalid "+name+": "+err.Error())
		return 0, false
	}
	return id, true
}

// pathText returns an unescaped path parameter. chi routes on the decoded
// path unless the request carries a RawPath, so only then is the parameter
// still escaped.
func pathText(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(raw); err == nil {
			raw = unescaped
		}
	}
	return strings.TrimSpace(raw)
}

func (h *HTTPHandlerImpl) findPathogen(w http.ResponseWriter, r *http.Request) (entities.Pathogen, bool) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return entities.Pathogen{}, false
	}
	p, found := h.catalog().Pathogen(id)
	if !found {
		RespondWithError(w, r, http.StatusNotFound, "Pathogen not found")
	}
	return p, found
}

func (h *HTTPHandlerImpl) findVaccine(w http.ResponseWriter, r *http.Request) (entities.Vaccine, bool) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return entities.Vaccine{}, false
	}
	v, found := h.catalog().Vaccine(id)
	if !found {
		RespondWithError(w, r, http.StatusNotFound, "Vaccine not found")
	}
	return v, found
}

func (h *HTTPHandlerImpl) findManufacturer(w http.ResponseWriter, r *http.Request) (entities.Manufacturer, bool) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return entities.Manufacturer{}, false
	}
	m, found := h.catalog().Manufacturer(id)
	if !found {
		RespondWithError(w, r, http.StatusNotFound, "Manufacturer not found")
	}
	return m, found
}

func (h *HTTPHandlerImpl) findLicenser(w http.ResponseWriter, r *http.Request) (entities.Licenser, bool) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return entities.Licenser{}, false
	}
	l, found := h.catalog().Licenser(id)
	if !found {
		RespondWithError(w, r, http.StatusNotFound, "Licenser not found")
	}
	return l, found
}

func (h *HTTPHandlerImpl) findLicenserByAcronym(w http.ResponseWriter, r *http.Request) (entities.Licenser, bool) {
	acronym := pathText(r, "acronym")
	l, found := h.catalog().LicenserByAcronym(acronym)
	if !found {
		RespondWithError(w, r, http.StatusNotFound, "Licenser not found")
	}
	return l, found
}

// ServePathogen returns one pathogen
func (h *HTTPHandlerImpl) ServePathogen(w http.ResponseWriter, r *http.Request) {
	if p, ok := h.findPathogen(w, r); ok {
		RespondWithJSON(w, r, http.StatusOK, p)
	}
}

// ServePathogenVaccines lists the vaccines covering a pathogen, narrowed by ?mode=all|single|combination
func (h *HTTPHandlerImpl) ServePathogenVaccines(w http.ResponseWriter, r *http.Request) {
	mode, err := catalog.ParseVaccineMode(r.URL.Query().Get("mode"))
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	p, ok := h.findPathogen(w, r)
	if !ok {
		return
	}

	vaccines := h.catalog().VaccinesByPathogen(p.PathogenID, mode)
	catalog.SortVaccines(vaccines)
	RespondWithJSON(w, r, http.StatusOK, vaccines)
}

// ServePathogenCandidates lists the pipeline candidates targeting a pathogen
func (h *HTTPHandlerImpl) ServePathogenCandidates(w http.ResponseWriter, r *http.Request) {
	if p, ok := h.findPathogen(w, r); ok {
		RespondWithJSON(w, r, http.StatusOK, h.catalog().PipelineVaccinesByPathogen(p))
	}
}

// ServeVaccine returns one vaccine
func (h *HTTPHandlerImpl) ServeVaccine(w http.ResponseWriter, r *http.Request) {
	if v, ok := h.findVaccine(w, r); ok {
		RespondWithJSON(w, r, http.StatusOK, v)
	}
}

// ServeVaccineByName returns the vaccine with the exact name
func (h *HTTPHandlerImpl) ServeVaccineByName(w http.ResponseWriter, r *http.Request) {
	name := pathText(r, "name")
	if name == "" {
		RespondWithError(w, r, http.StatusBadRequest, "Missing vaccine name")
		return
	}

	v, found := h.catalog().VaccineByName(name)
	if !found {
		RespondWithError(w, r, http.StatusNotFound, "Vaccine not found")
		return
	}
	RespondWithJSON(w, r, http.StatusOK, v)
}

// ServeVaccinePathogens lists the pathogens a vaccine covers
func (h *HTTPHandlerImpl) ServeVaccinePathogens(w http.ResponseWriter, r *http.Request) {
	if v, ok := h.findVaccine(w, r); ok {
		RespondWithJSON(w, r, http.StatusOK, h.catalog().PathogensByVaccine(v))
	}
}

// ServeVaccineManufacturers lists the manufacturers of a vaccine
func (h *HTTPHandlerImpl) ServeVaccineManufacturers(w http.ResponseWriter, r *http.Request) {
	if v, ok := h.findVaccine(w, r); ok {
		RespondWithJSON(w, r, http.StatusOK, h.catalog().ManufacturersByVaccine(v))
	}
}

// ServeVaccineLicensers lists the licensers of a vaccine
func (h *HTTPHandlerImpl) ServeVaccineLicensers(w http.ResponseWriter, r *http.Request) {
	if v, ok := h.findVaccine(w, r); ok {
		licensers := h.catalog().LicensersByVaccine(v)
		catalog.SortLicensers(licensers)
		RespondWithJSON(w, r, http.StatusOK, licensers)
	}
}

// ServeManufacturer returns one manufacturer
func (h *HTTPHandlerImpl) ServeManufacturer(w http.ResponseWriter, r *http.Request) {
	if m, ok := h.findManufacturer(w, r); ok {
		RespondWithJSON(w, r, http.StatusOK, m)
	}
}

// ServeManufacturerByName returns the manufacturer with the exact name
func (h *HTTPHandlerImpl) ServeManufacturerByName(w http.ResponseWriter, r *http.Request) {
	m, found := h.catalog().ManufacturerByName(pathText(r, "name"))
	if !found {
		RespondWithError(w, r, http.StatusNotFound, "Manufacturer not found")
		return
	}
	RespondWithJSON(w, r, http.StatusOK, m)
}

// ServeManufacturerVaccines lists a manufacturer's vaccines; ?licensed=true keeps licensed ones only
func (h *HTTPHandlerImpl) ServeManufacturerVaccines(w http.ResponseWriter, r *http.Request) {
	licensedOnly := false
	if raw := r.URL.Query().Get("licensed"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			RespondWithError(w, r, http.StatusBadRequest, "licensed must be true or false")
			return
		}
		licensedOnly = parsed
	}

	m, ok := h.findManufacturer(w, r)
	if !ok {
		return
	}

	var vaccines []entities.Vaccine
	if licensedOnly {
		vaccines = h.catalog().LicensedVaccinesByManufacturer(m.ManufacturerID)
	} else {
		vaccines = h.catalog().VaccinesByManufacturer(m.ManufacturerID)
	}
	catalog.SortVaccines(vaccines)
	RespondWithJSON(w, r, http.StatusOK, vaccines)
}

// ServeManufacturerPipeline lists the candidates a manufacturer develops
func (h *HTTPHandlerImpl) ServeManufacturerPipeline(w http.ResponseWriter, r *http.Request) {
	if m, ok := h.findManufacturer(w, r); ok {
		RespondWithJSON(w, r, http.StatusOK, h.catalog().PipelineVaccinesByManufacturer(m.ManufacturerID))
	}
}

// ServeLicenser returns one licenser
func (h *HTTPHandlerImpl) ServeLicenser(w http.ResponseWriter, r *http.Request) {
	if l, ok := h.findLicenser(w, r); ok {
		RespondWithJSON(w, r, http.StatusOK, l)
	}
}

// ServeLicenserVaccines lists the vaccines licensed by a licenser
func (h *HTTPHandlerImpl) ServeLicenserVaccines(w http.ResponseWriter, r *http.Request) {
	if l, ok := h.findLicenser(w, r); ok {
		vaccines := h.catalog().VaccinesByLicenser(l.LicenserID)
		catalog.SortVaccines(vaccines)
		RespondWithJSON(w, r, http.StatusOK, vaccines)
	}
}

// ServeLicenserByAcronym returns the licenser with the exact acronym
func (h *HTTPHandlerImpl) ServeLicenserByAcronym(w http.ResponseWriter, r *http.Request) {
	if l, ok := h.findLicenserByAcronym(w, r); ok {
		RespondWithJSON(w, r, http.StatusOK, l)
	}
}

// ServeLicenserVaccinesByAcronym lists the vaccines with a licensed profile from the authority
func (h *HTTPHandlerImpl) ServeLicenserVaccinesByAcronym(w http.ResponseWriter, r *http.Request) {
	if l, ok := h.findLicenserByAcronym(w, r); ok {
		vaccines := h.catalog().VaccinesByLicenserName(l.Acronym)
		catalog.SortVaccines(vaccines)
		RespondWithJSON(w, r, http.StatusOK, vaccines)
	}
}
