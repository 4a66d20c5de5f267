package handlers

import (
	"net/http"

	"github.com/Dosada05/soccer-cup/services"
)

type BackupHandler struct {
	backupService services.BackupService
}

func NewBackupHandler(bs services.BackupService) *BackupHandler {
	return &BackupHandler{backupService: bs}
}

// Backup godoc
// @Summary Выгрузить снапшот турнира в хранилище
// @Tags backup
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 201 {object} services.BackupResult
// @Failure 503 {object} map[string]string "Хранилище не настроено"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/backup [post]
func (h *BackupHandler) Backup(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.backupService.BackupTournament(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
