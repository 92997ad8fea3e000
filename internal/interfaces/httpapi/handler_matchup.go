package httpapi

import (
	"net/http"

	"github.com/riskibarqy/osu-tournament/internal/usecase"
)

func (h *Handler) CreateMatchup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.CreateMatchup")
	defer span.End()

	var req createMatchupRequest
	if err := h.decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	red, err := optionalObjectID(req.TeamRed)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	blue, err := optionalObjectID(req.TeamBlue)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.matchupService.CreateMatchup(ctx, usecase.CreateMatchupInput{
		Tournament: req.TournamentID,
		Date:       req.Date,
		TeamRed:    red,
		TeamBlue:   blue,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create matchup failed", "tournament_id", req.TournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchupToDTO(created))
}

func (h *Handler) GetMatchup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.GetMatchup")
	defer span.End()

	matchupID := r.PathValue("matchupID")
	item, err := h.matchupService.GetMatchup(ctx, matchupID)
	if err != nil {
		h.logger.WarnContext(ctx, "get matchup failed", "matchup_id", matchupID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchupToDTO(item))
}

func (h *Handler) ListMatchups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.ListMatchups")
	defer span.End()

	tournamentID := r.PathValue("tournamentID")
	matchups, err := h.matchupService.ListByTournament(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "list matchups failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchupDTO, 0, len(matchups))
	for _, m := range matchups {
		items = append(items, matchupToDTO(m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) UpdateMatchup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.UpdateMatchup")
	defer span.End()

	matchupID := r.PathValue("matchupID")
	var req updateMatchupRequest
	if err := h.decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	p, err := req.toPatch()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.matchupService.UpdateMatchup(ctx, matchupID, p)
	if err != nil {
		h.logger.WarnContext(ctx, "update matchup failed", "matchup_id", matchupID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchupToDTO(updated))
}

func (h *Handler) DeleteMatchup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.DeleteMatchup")
	defer span.End()

	matchupID := r.PathValue("matchupID")
	if err := h.matchupService.DeleteMatchup(ctx, matchupID); err != nil {
		h.logger.WarnContext(ctx, "delete matchup failed", "matchup_id", matchupID, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AddMatchupMaps(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.AddMatchupMaps")
	defer span.End()

	matchupID := r.PathValue("matchupID")
	var req matchupMapsRequest
	if err := h.decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	maps, err := matchupMapsFromRequest(req.Maps)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.matchupService.AddMaps(ctx, matchupID, maps); err != nil {
		h.logger.WarnContext(ctx, "add matchup maps failed", "matchup_id", matchupID, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
