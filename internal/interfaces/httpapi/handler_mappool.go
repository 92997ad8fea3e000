package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/riskibarqy/osu-tournament/internal/usecase"
)

func (h *Handler) CreateMappool(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.CreateMappool")
	defer span.End()

	var req createMappoolRequest
	if err := h.decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.mappoolService.CreateMappool(ctx, usecase.CreateMappoolInput{
		Tournament:  req.TournamentID,
		Private:     req.Private,
		MappackLink: req.MappackLink,
		Maps:        mappoolMapsFromRequest(req.Maps),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create mappool failed", "tournament_id", req.TournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, mappoolToDTO(created))
}

func (h *Handler) GetMappool(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.GetMappool")
	defer span.End()

	mappoolID := r.PathValue("mappoolID")
	item, err := h.mappoolService.GetMappool(ctx, mappoolID)
	if err != nil {
		h.logger.WarnContext(ctx, "get mappool failed", "mappool_id", mappoolID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mappoolToDTO(item))
}

func (h *Handler) ListMappools(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.ListMappools")
	defer span.End()

	tournamentID := r.PathValue("tournamentID")
	pools, err := h.mappoolService.ListByTournament(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "list mappools failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]mappoolDTO, 0, len(pools))
	for _, m := range pools {
		items = append(items, mappoolToDTO(m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) UpdateMappool(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.UpdateMappool")
	defer span.End()

	mappoolID := r.PathValue("mappoolID")
	var req updateMappoolRequest
	if err := h.decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	p, err := req.toPatch()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.mappoolService.UpdateMappool(ctx, mappoolID, p)
	if err != nil {
		h.logger.WarnContext(ctx, "update mappool failed", "mappool_id", mappoolID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mappoolToDTO(updated))
}

func (h *Handler) DeleteMappool(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.DeleteMappool")
	defer span.End()

	mappoolID := r.PathValue("mappoolID")
	if err := h.mappoolService.DeleteMappool(ctx, mappoolID); err != nil {
		h.logger.WarnContext(ctx, "delete mappool failed", "mappool_id", mappoolID, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AddMappoolMaps(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.AddMappoolMaps")
	defer span.End()

	mappoolID := r.PathValue("mappoolID")
	var req mappoolMapsRequest
	if err := h.decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.mappoolService.AddMaps(ctx, mappoolID, mappoolMapsFromRequest(req.Maps)); err != nil {
		h.logger.WarnContext(ctx, "add mappool maps failed", "mappool_id", mappoolID, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RemoveMappoolMap(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.RemoveMappoolMap")
	defer span.End()

	mappoolID := r.PathValue("mappoolID")
	pos, err := strconv.Atoi(r.PathValue("pos"))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: map position must be a number", usecase.ErrInvalidInput))
		return
	}

	if err := h.mappoolService.RemoveMap(ctx, mappoolID, pos); err != nil {
		h.logger.WarnContext(ctx, "remove mappool map failed", "mappool_id", mappoolID, "pos", pos, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
