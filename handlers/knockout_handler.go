package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Dosada05/soccer-cup/services"
)

type KnockoutHandler struct {
	knockoutService services.KnockoutService
}

func NewKnockoutHandler(ks services.KnockoutService) *KnockoutHandler {
	return &KnockoutHandler{knockoutService: ks}
}

// Bracket godoc
// @Summary Сетка плей-офф
// @Tags knockout
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {object} models.BracketView
// @Router /tournaments/{tournamentID}/bracket [get]
func (h *KnockoutHandler) Bracket(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	bracket, err := h.knockoutService.GetBracket(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, bracket, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Score godoc
// @Summary Результат матча плей-офф
// @Description С ?advance=true победитель сразу проходит в следующий раунд.
// @Tags knockout
// @Accept json
// @Produce json
// @Param matchID path int true "Match ID"
// @Param advance query bool false "Провести победителя дальше"
// @Param body body scoreInput true "Счет"
// @Success 200 {object} map[string]interface{}
// @Failure 422 {object} map[string]string "Ничья"
// @Security BearerAuth
// @Router /matches/{matchID}/knockout-score [post]
func (h *KnockoutHandler) Score(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	advance := false
	if raw := r.URL.Query().Get("advance"); raw != "" {
		if advance, err = strconv.ParseBool(raw); err != nil {
			badRequestResponse(w, r, errors.New("invalid advance query parameter"))
			return
		}
	}

	var input scoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	home, away, ok := input.scores()
	if !ok {
		badRequestResponse(w, r, errScoresRequired)
		return
	}

	if advance {
		result, err := h.knockoutService.RecordAndAdvance(r.Context(), id, home, away)
		if err != nil {
			mapServiceErrorToHTTP(w, r, err)
			return
		}
		if err := writeJSON(w, http.StatusOK, result, nil); err != nil {
			serverErrorResponse(w, r, err)
		}
		return
	}

	winnerID, err := h.knockoutService.RecordKnockoutResult(r.Context(), id, home, away)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match_id": id, "winner_id": winnerID}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Advance godoc
// @Summary Провести победителя в следующий раунд
// @Description Для финала возвращает advanced=false и завершает плей-офф.
// @Tags knockout
// @Produce json
// @Param matchID path int true "Match ID"
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} map[string]string "Слот следующего матча занят"
// @Failure 422 {object} map[string]string "Матч не завершен"
// @Security BearerAuth
// @Router /matches/{matchID}/advance [post]
func (h *KnockoutHandler) Advance(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	next, err := h.knockoutService.AdvanceWinner(r.Context(), id)
	if errors.Is(err, services.ErrNoAdvancementNeeded) {
		if err := writeJSON(w, http.StatusOK, jsonResponse{"advanced": false, "reason": err.Error()}, nil); err != nil {
			serverErrorResponse(w, r, err)
		}
		return
	}
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"advanced": true, "next_match": next}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Qualify godoc
// @Summary Отметить команды, вышедшие из групп
// @Tags knockout
// @Accept json
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param body body services.QualificationInput true "Сколько команд проходит из каждой группы"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/qualification [post]
func (h *KnockoutHandler) Qualify(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.QualificationInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	teams, err := h.knockoutService.QualifyTeams(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"qualified": teams}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateMatch godoc
// @Summary Создать матч плей-офф (посев четвертьфиналов)
// @Tags knockout
// @Accept json
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param body body services.CreateKnockoutMatchInput true "Матч"
// @Success 201 {object} map[string]interface{}
// @Failure 409 {object} map[string]string "Слот занят"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/knockout/matches [post]
func (h *KnockoutHandler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.CreateKnockoutMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.knockoutService.CreateKnockoutMatch(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ClearMatches godoc
// @Summary Удалить все матчи плей-офф
// @Tags knockout
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/knockout/matches [delete]
func (h *KnockoutHandler) ClearMatches(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	deleted, err := h.knockoutService.ClearKnockoutMatches(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"deleted": deleted}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
