package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/giygas/vaccines-api/catalog"
	"github.com/giygas/vaccines-api/logging"
	"github.com/giygas/vaccines-api/metrics"
)

type tabInfo struct {
	Tab   catalog.Tab `json:"tab"`
	Count int         `json:"count"`
}

// ServeTabs lists every browse tab with the size of its unfiltered list
func (h *HTTPHandlerImpl) ServeTabs(w http.ResponseWriter, r *http.Request) {
	cat := h.catalog()
	out := make([]tabInfo, 0, len(catalog.Tabs()))
	for _, tab := range catalog.Tabs() {
		result, err := cat.FilterEntities(tab, "", "")
		if err != nil {
			RespondWithError(w, r, http.StatusInternalServerError, "Failed to list tabs")
			return
		}
		out = append(out, tabInfo{Tab: tab, Count: result.Count})
	}
	RespondWithJSON(w, r, http.StatusOK, out)
}

// Browse returns the visible list of a tab, narrowed by ?letter= and ?keyword=
func (h *HTTPHandlerImpl) Browse(w http.ResponseWriter, r *http.Request) {
	tab, err := catalog.ParseTab(chi.URLParam(r, "tab"))
	if err != nil {
		RespondWithError(w, r, http.StatusNotFound, "Unknown tab")
		return
	}

	query := r.URL.Query()
	letter := strings.TrimSpace(query.Get("letter"))
	keyword := strings.TrimSpace(query.Get("keyword"))

	if err := h.validator.ValidateLetter(letter); err != nil {
		logging.Warn("Unusual user input", "letter", letter)
		respondWithFieldError(w, r, http.StatusBadRequest, "letter", err.Error())
		return
	}
	if err := h.validator.ValidateKeyword(keyword); err != nil {
		logging.Warn("Unusual user input", "keyword", keyword)
		respondWithFieldError(w, r, http.StatusBadRequest, "keyword", err.Error())
		return
	}

	result, err := h.catalog().FilterEntities(tab, letter, keyword)
	if err != nil {
		RespondWithError(w, r, http.StatusNotFound, err.Error())
		return
	}

	metrics.BrowseSearchesTotal.WithLabelValues(string(tab)).Inc()
	RespondWithJSON(w, r, http.StatusOK, result)
}
