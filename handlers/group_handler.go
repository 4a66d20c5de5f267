package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Dosada05/soccer-cup/brackets"
	"github.com/Dosada05/soccer-cup/services"
)

type GroupHandler struct {
	groupService   services.GroupService
	fixtureService services.FixtureService
}

func NewGroupHandler(gs services.GroupService, fs services.FixtureService) *GroupHandler {
	return &GroupHandler{
		groupService:   gs,
		fixtureService: fs,
	}
}

type groupNameInput struct {
	Name string `json:"name"`
}

// scheduleInput тело запроса генерации матчей; нулевые поля берутся из конфигурации.
type scheduleInput struct {
	StartAt       *time.Time `json:"start_at,omitempty"`
	Fields        int        `json:"fields,omitempty"`
	SlotMinutes   int        `json:"slot_minutes,omitempty"`
	MatchesPerDay int        `json:"matches_per_day,omitempty"`
	Venue         string     `json:"venue,omitempty"`
}

func (in scheduleInput) config() (brackets.ScheduleConfig, error) {
	if in.Fields < 0 || in.SlotMinutes < 0 || in.MatchesPerDay < 0 {
		return brackets.ScheduleConfig{}, errors.New("schedule values must not be negative")
	}
	cfg := brackets.ScheduleConfig{
		Fields:        in.Fields,
		SlotDuration:  time.Duration(in.SlotMinutes) * time.Minute,
		MatchesPerDay: in.MatchesPerDay,
		Venue:         in.Venue,
	}
	if in.StartAt != nil {
		cfg.StartAt = *in.StartAt
	}
	return cfg, nil
}

// readSchedule допускает пустое тело запроса.
func readSchedule(w http.ResponseWriter, r *http.Request) (brackets.ScheduleConfig, error) {
	var input scheduleInput
	if r.ContentLength != 0 {
		if err := readJSON(w, r, &input); err != nil {
			return brackets.ScheduleConfig{}, err
		}
	}
	return input.config()
}

// Create godoc
// @Summary Создать группу
// @Tags groups
// @Accept json
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param body body groupNameInput true "Название группы"
// @Success 201 {object} map[string]interface{}
// @Failure 409 {object} map[string]string "Группа с таким названием уже есть"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/groups [post]
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input groupNameInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	group, err := h.groupService.CreateGroup(r.Context(), tournamentID, input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"group": group}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// List godoc
// @Summary Группы турнира
// @Tags groups
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {object} map[string]interface{}
// @Router /tournaments/{tournamentID}/groups [get]
func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	groups, err := h.groupService.ListGroups(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"groups": groups}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByID godoc
// @Summary Группа с командами
// @Tags groups
// @Produce json
// @Param groupID path int true "Group ID"
// @Success 200 {object} map[string]interface{}
// @Router /groups/{groupID} [get]
func (h *GroupHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	groupID, err := getIDFromURL(r, "groupID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	group, err := h.groupService.GetGroupByID(r.Context(), groupID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"group": group}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Rename godoc
// @Summary Переименовать группу
// @Tags groups
// @Accept json
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param groupID path int true "Group ID"
// @Param body body groupNameInput true "Новое название"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/groups/{groupID} [put]
func (h *GroupHandler) Rename(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	groupID, err := getIDFromURL(r, "groupID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input groupNameInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	group, err := h.groupService.RenameGroup(r.Context(), tournamentID, groupID, input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"group": group}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Delete godoc
// @Summary Удалить группу (команды остаются без группы)
// @Tags groups
// @Param tournamentID path int true "Tournament ID"
// @Param groupID path int true "Group ID"
// @Success 204
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/groups/{groupID} [delete]
func (h *GroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	groupID, err := getIDFromURL(r, "groupID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.groupService.DeleteGroup(r.Context(), tournamentID, groupID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GenerateMatches godoc
// @Summary Сгенерировать круговой турнир для группы
// @Tags groups
// @Accept json
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param groupID path int true "Group ID"
// @Param body body scheduleInput false "Параметры расписания"
// @Success 201 {object} services.GenerationResult
// @Failure 409 {object} map[string]string "Матчи уже сгенерированы"
// @Failure 422 {object} map[string]string "Меньше двух команд"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/groups/{groupID}/generate-matches [post]
func (h *GroupHandler) GenerateMatches(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	groupID, err := getIDFromURL(r, "groupID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	cfg, err := readSchedule(w, r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.fixtureService.GenerateGroupMatches(r.Context(), tournamentID, groupID, cfg)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GenerateAllMatches godoc
// @Summary Сгенерировать матчи для всех групп турнира
// @Tags groups
// @Accept json
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param body body scheduleInput false "Параметры расписания"
// @Success 201 {object} services.AllGroupsGenerationResult
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/generate-all-group-matches [post]
func (h *GroupHandler) GenerateAllMatches(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	cfg, err := readSchedule(w, r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.fixtureService.GenerateAllGroupMatches(r.Context(), tournamentID, cfg)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
