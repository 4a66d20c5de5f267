package handlers

import (
	"net/http"

	"github.com/Dosada05/soccer-cup/services"
)

type SearchHandler struct {
	searchService services.SearchService
}

func NewSearchHandler(s services.SearchService) *SearchHandler {
	return &SearchHandler{searchService: s}
}

// Search godoc
// @Summary Поиск турниров и игроков
// @Tags search
// @Produce json
// @Param q query string false "Подстрока"
// @Success 200 {object} models.SearchResults
// @Router /search [get]
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	results, err := h.searchService.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, results, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
