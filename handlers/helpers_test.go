package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dosada05/soccer-cup/services"
)

func TestMapServiceErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", services.ErrMatchNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("load: %w", services.ErrTournamentNotFound), http.StatusNotFound},
		{"already generated", services.ErrAlreadyGenerated, http.StatusConflict},
		{"slot taken", services.ErrBracketSlotTaken, http.StatusConflict},
		{"knockout draw", services.ErrDrawNotAllowedInKnockout, http.StatusUnprocessableEntity},
		{"insufficient teams", services.ErrInsufficientTeams, http.StatusUnprocessableEntity},
		{"negative score", services.ErrNegativeScore, http.StatusBadRequest},
		{"bad password", services.ErrAuthInvalidCredentials, http.StatusUnauthorized},
		{"backup disabled", services.ErrBackupDisabled, http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			mapServiceErrorToHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)
			if rr.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, rr.Code)
			}
		})
	}
}

func TestGetIDFromURL(t *testing.T) {
	tests := []struct {
		target     string
		wantStatus int
	}{
		{"/groups/7/standings", http.StatusOK},
		{"/groups/abc/standings", http.StatusBadRequest},
		{"/groups/0/standings", http.StatusBadRequest},
		{"/groups/-3/standings", http.StatusBadRequest},
	}
	h := func(w http.ResponseWriter, r *http.Request) {
		id, err := getIDFromURL(r, "groupID")
		if err != nil {
			badRequestResponse(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, jsonResponse{"id": id}, nil)
	}
	for _, tt := range tests {
		rr := serve(http.MethodGet, "/groups/{groupID}/standings", tt.target, "", h)
		if rr.Code != tt.wantStatus {
			t.Errorf("%s: Expected status %d, got %d", tt.target, tt.wantStatus, rr.Code)
		}
	}
}

func TestReadJSON_RejectsUnknownFields(t *testing.T) {
	h := NewMatchHandler(nil)
	rr := serve(http.MethodPost, "/matches/{matchID}/score", "/matches/1/score", `{"home_score":1,"away_score":0,"extra":true}`, h.Score)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
}
