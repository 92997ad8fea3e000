package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/osu-tournament/internal/domain/tournament"
	"github.com/riskibarqy/osu-tournament/internal/usecase"
)

func (h *Handler) CreateTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.CreateTournament")
	defer span.End()

	var req createTournamentRequest
	if err := h.decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.tournamentService.CreateTournament(ctx, usecase.CreateTournamentInput{
		Slug:              req.Slug,
		Name:              req.Name,
		Mode:              tournament.Mode(req.Mode),
		InviteOnly:        req.InviteOnly,
		MinTeamSize:       req.MinTeamSize,
		MaxTeamSize:       req.MaxTeamSize,
		RegistrationStart: req.RegistrationStartDate,
		RegistrationEnd:   req.RegistrationEndDate,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create tournament failed", "slug", req.Slug, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, tournamentToDTO(created, h.now()))
}

func (h *Handler) GetTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.GetTournament")
	defer span.End()

	tournamentID := r.PathValue("tournamentID")
	item, err := h.tournamentService.GetTournament(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "get tournament failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tournamentToDTO(item, h.now()))
}

func (h *Handler) UpdateTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.UpdateTournament")
	defer span.End()

	tournamentID := r.PathValue("tournamentID")
	var req updateTournamentRequest
	if err := h.decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	p, err := req.toPatch()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.tournamentService.UpdateTournament(ctx, tournamentID, p)
	if err != nil {
		h.logger.WarnContext(ctx, "update tournament failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tournamentToDTO(updated, h.now()))
}

func (h *Handler) DeleteTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.DeleteTournament")
	defer span.End()

	tournamentID := r.PathValue("tournamentID")
	if err := h.tournamentService.DeleteTournament(ctx, tournamentID); err != nil {
		h.logger.WarnContext(ctx, "delete tournament failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RegisterTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.RegisterTeam")
	defer span.End()

	osu, err := osuAccountFromContext(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	tournamentID := r.PathValue("tournamentID")
	var req registerTeamRequest
	if err := h.decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	team, err := h.tournamentService.RegisterTeam(ctx, tournamentID, usecase.RegisterTeamInput{
		Name:    req.Name,
		Captain: osu.ID,
		Players: req.Players,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "register team failed",
			"tournament_id", tournamentID,
			"captain", osu.ID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(team))
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.ListTeams")
	defer span.End()

	tournamentID := r.PathValue("tournamentID")
	teams, err := h.tournamentService.ListTeams(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.ListPlayers")
	defer span.End()

	tournamentID := r.PathValue("tournamentID")
	players, err := h.tournamentService.ListPlayers(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, players)
}

func (h *Handler) RemoveTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.RemoveTeam")
	defer span.End()

	tournamentID := r.PathValue("tournamentID")
	teamID := r.PathValue("teamID")
	if err := h.tournamentService.RemoveTeams(ctx, tournamentID, []string{teamID}); err != nil {
		h.logger.WarnContext(ctx, "remove team failed", "tournament_id", tournamentID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
