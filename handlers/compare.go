package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/giygas/vaccines-api/catalog"
	"github.com/giygas/vaccines-api/compare"
	"github.com/giygas/vaccines-api/logging"
	"github.com/giygas/vaccines-api/metrics"
)

type fieldInfo struct {
	Field             catalog.Field `json:"field"`
	Label             string        `json:"label"`
	RequiredLicensed  bool          `json:"requiredLicensed"`
	RequiredCandidate bool          `json:"requiredCandidate"`
}

type tableRequest struct {
	Subject    compare.Subject     `json:"subject"`
	Selections []compare.Selection `json:"selections"`
	Fields     []string            `json:"fields"`
}

type sessionRequest struct {
	Subject compare.Subject `json:"subject"`
}

type fieldsRequest struct {
	Fields []string `json:"fields"`
}

type fieldRequest struct {
	Field string `json:"field"`
}

type sessionResponse struct {
	Session compare.Session `json:"session"`
	Warning string          `json:"warning,omitempty"`
}

var rejectionReasons = []struct {
	err    error
	reason string
}{
	{compare.ErrRequiredField, "required_field"},
	{compare.ErrDuplicateField, "duplicate_field"},
	{compare.ErrUnknownField, "unknown_field"},
	{compare.ErrComparisonLimit, "comparison_limit"},
	{compare.ErrUnknownVaccine, "unknown_vaccine"},
	{compare.ErrDuplicateVaccine, "duplicate_vaccine"},
	{compare.ErrUnknownLicenser, "unknown_licenser"},
	{compare.ErrNoLicensers, "no_licensers"},
	{compare.ErrUnknownSubject, "unknown_subject"},
	{compare.ErrSessionNotFound, "session_not_found"},
}

func rejectionReason(err error) string {
	for _, rr := range rejectionReasons {
		if errors.Is(err, rr.err) {
			return rr.reason
		}
	}
	return "other"
}

// respondWithCompareError maps comparison errors to status codes:
// missing sessions and subjects are 404, the vaccine cap is 409 and any
// other rejected edit is 422.
func respondWithCompareError(w http.ResponseWriter, r *http.Request, err error) {
	metrics.ComparisonRejectionsTotal.WithLabelValues(rejectionReason(err)).Inc()

	switch {
	case errors.Is(err, compare.ErrSessionNotFound):
		RespondWithError(w, r, http.StatusNotFound, "Comparison session not found")
		return
	case errors.Is(err, compare.ErrUnknownSubject):
		RespondWithError(w, r, http.StatusNotFound, "Comparison subject not found")
		return
	}

	var verr *compare.ValidationError
	if errors.As(err, &verr) {
		code := http.StatusUnprocessableEntity
		if errors.Is(verr, compare.ErrComparisonLimit) {
			code = http.StatusConflict
		}
		respondWithFieldError(w, r, code, verr.Field, verr.Message)
		return
	}

	logging.Error("Comparison failed", "error", err)
	RespondWithError(w, r, http.StatusInternalServerError, "Comparison failed")
}

func recordWarning(warning string) {
	if warning != "" {
		metrics.ComparisonCapWarningsTotal.Inc()
	}
}

// parseFields accepts field keys or labels. Unknown names are kept as given so
// the comparison package rejects them with its own message.
func parseFields(names []string) []catalog.Field {
	fields := make([]catalog.Field, 0, len(names))
	for _, name := range names {
		if f, ok := catalog.ParseField(name); ok {
			fields = append(fields, f)
			continue
		}
		fields = append(fields, catalog.Field(name))
	}
	return fields
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// ServeCompareFields lists the field catalog in display order
func (h *HTTPHandlerImpl) ServeCompareFields(w http.ResponseWriter, r *http.Request) {
	licensed := compare.RequiredFields(compare.VariantLicensed)
	candidate := compare.RequiredFields(compare.VariantCandidate)

	fields := catalog.Fields()
	out := make([]fieldInfo, 0, len(fields))
	for _, f := range fields {
		out = append(out, fieldInfo{
			Field:             f,
			Label:             f.Label(),
			RequiredLicensed:  slices.Contains(licensed, f),
			RequiredCandidate: slices.Contains(candidate, f),
		})
	}
	RespondWithJSON(w, r, http.StatusOK, out)
}

// BuildCompareTable renders a comparison table from a full selection without
// keeping any state
func (h *HTTPHandlerImpl) BuildCompareTable(w http.ResponseWriter, r *http.Request) {
	var req tableRequest
	if !decodeBody(w, r, &req) {
		return
	}

	table, err := compare.BuildComparisonTable(h.catalog(), compare.Request{
		Subject:    req.Subject,
		Selections: req.Selections,
		Fields:     parseFields(req.Fields),
	}, h.compareOpts)
	if err != nil {
		respondWithCompareError(w, r, err)
		return
	}

	h.recordTable(table)
	RespondWithJSON(w, r, http.StatusOK, table)
}

func (h *HTTPHandlerImpl) recordTable(table compare.Table) {
	metrics.ComparisonTablesTotal.WithLabelValues(string(table.Variant)).Inc()
	for _, warning := range table.Warnings {
		recordWarning(warning)
	}
}

// CreateCompareSession opens a session with an unchecked checklist of the subject's vaccines
func (h *HTTPHandlerImpl) CreateCompareSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	state, err := compare.NewState(h.catalog(), req.Subject, h.compareOpts)
	if err != nil {
		respondWithCompareError(w, r, err)
		return
	}

	sess := h.sessions.Create(state)
	metrics.CompareSessionsActive.Set(float64(h.sessions.Len()))
	logging.Debug("Comparison session created", "session", sess.ID, "subject", state.SubjectName)

	w.Header().Set("Location", "/compare/sessions/"+sess.ID)
	RespondWithJSON(w, r, http.StatusCreated, sessionResponse{Session: sess})
}

// GetCompareSession returns the state of a session
func (h *HTTPHandlerImpl) GetCompareSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessions.Get(chi.URLParam(r, "id"))
	if !ok {
		respondWithCompareError(w, r, compare.ErrSessionNotFound)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, sessionResponse{Session: sess})
}

// DeleteCompareSession discards a session before its TTL runs out
func (h *HTTPHandlerImpl) DeleteCompareSession(w http.ResponseWriter, r *http.Request) {
	if !h.sessions.Delete(chi.URLParam(r, "id")) {
		respondWithCompareError(w, r, compare.ErrSessionNotFound)
		return
	}
	metrics.CompareSessionsActive.Set(float64(h.sessions.Len()))
	w.WriteHeader(http.StatusNoContent)
}

// updateSession applies edit to the session named in the path and answers
// with the new state
func (h *HTTPHandlerImpl) updateSession(w http.ResponseWriter, r *http.Request, edit func(*compare.State) (string, error)) {
	sess, warning, err := h.sessions.Update(chi.URLParam(r, "id"), edit)
	if err != nil {
		respondWithCompareError(w, r, err)
		return
	}
	recordWarning(warning)
	RespondWithJSON(w, r, http.StatusOK, sessionResponse{Session: sess, Warning: warning})
}

func vaccineIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "vaccineId")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid vaccineId")
		return 0, false
	}
	return id, true
}

// ToggleSessionVaccine checks or unchecks a vaccine with all its licensers
func (h *HTTPHandlerImpl) ToggleSessionVaccine(w http.ResponseWriter, r *http.Request) {
	vaccineID, ok := vaccineIDParam(w, r)
	if !ok {
		return
	}
	h.updateSession(w, r, func(s *compare.State) (string, error) {
		return s.ToggleVaccine(vaccineID)
	})
}

// ToggleSessionLicenser checks or unchecks one licenser of a vaccine
func (h *HTTPHandlerImpl) ToggleSessionLicenser(w http.ResponseWriter, r *http.Request) {
	vaccineID, ok := vaccineIDParam(w, r)
	if !ok {
		return
	}
	acronym := pathText(r, "acronym")
	h.updateSession(w, r, func(s *compare.State) (string, error) {
		return s.ToggleLicenser(vaccineID, acronym)
	})
}

// AddSessionField appends a field to the displayed list
func (h *HTTPHandlerImpl) AddSessionField(w http.ResponseWriter, r *http.Request) {
	var req fieldRequest
	if !decodeBody(w, r, &req) {
		return
	}
	field := parseFields([]string{req.Field})[0]
	h.updateSession(w, r, func(s *compare.State) (string, error) {
		return "", s.AddField(field)
	})
}

// RemoveSessionField drops a field that is not required
func (h *HTTPHandlerImpl) RemoveSessionField(w http.ResponseWriter, r *http.Request) {
	field := parseFields([]string{pathText(r, "field")})[0]
	h.updateSession(w, r, func(s *compare.State) (string, error) {
		return "", s.RemoveField(field)
	})
}

// SetSessionFields replaces the displayed list and its order
func (h *HTTPHandlerImpl) SetSessionFields(w http.ResponseWriter, r *http.Request) {
	var req fieldsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	fields := parseFields(req.Fields)
	h.updateSession(w, r, func(s *compare.State) (string, error) {
		return "", s.SetFields(fields)
	})
}

// ServeSessionTable renders the table of the session's current selection
func (h *HTTPHandlerImpl) ServeSessionTable(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessions.Get(chi.URLParam(r, "id"))
	if !ok {
		respondWithCompareError(w, r, compare.ErrSessionNotFound)
		return
	}

	table, err := sess.State.Table(h.catalog())
	if err != nil {
		respondWithCompareError(w, r, err)
		return
	}

	h.recordTable(table)
	RespondWithJSON(w, r, http.StatusOK, table)
}
