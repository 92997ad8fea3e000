package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/osu-tournament/internal/platform/logging"
	"github.com/riskibarqy/osu-tournament/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

type Handler struct {
	tournamentService *usecase.TournamentService
	mappoolService    *usecase.MappoolService
	matchupService    *usecase.MatchupService
	logger            *logging.Logger
	validator         *validator.Validate
	now               func() time.Time
}

func NewHandler(
	tournamentService *usecase.TournamentService,
	mappoolService *usecase.MappoolService,
	matchupService *usecase.MatchupService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		tournamentService: tournamentService,
		mappoolService:    mappoolService,
		matchupService:    matchupService,
		logger:            logger,
		validator:         validator.New(),
		now:               time.Now,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.Me")
	defer span.End()

	principal, err := principalFromContext(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, principalToDTO(principal))
}

// decodeJSON rejects unknown fields so typos in patch bodies do not turn
// into silent no-ops.
func (h *Handler) decodeJSON(r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(io.LimitReader(r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
