package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/lnjp/matchday-api/internal/platform/logging"
	"github.com/lnjp/matchday-api/internal/usecase"
)

type Handler struct {
	dayService        *usecase.DayService
	predictionService *usecase.PredictionService
	notifyService     *usecase.NotifyService
	fixtureService    *usecase.FixtureService
	inboxService      *usecase.InboxService
	chatService       *usecase.ChatService
	leagueCode        string
	vapidPublicKey    string
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	dayService *usecase.DayService,
	predictionService *usecase.PredictionService,
	notifyService *usecase.NotifyService,
	fixtureService *usecase.FixtureService,
	inboxService *usecase.InboxService,
	chatService *usecase.ChatService,
	leagueCode string,
	vapidPublicKey string,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		dayService:        dayService,
		predictionService: predictionService,
		notifyService:     notifyService,
		fixtureService:    fixtureService,
		inboxService:      inboxService,
		chatService:       chatService,
		leagueCode:        leagueCode,
		vapidPublicKey:    vapidPublicKey,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, target any) error {
	_, span := startSpan(ctx, "httpapi.Handler.decodeRequest")
	defer span.End()

	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	if err := decoder.Decode(target); err != nil {
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

type leagueValidateRequest struct {
	Code string `json:"code" validate:"required"`
}

// ValidateLeague is the join gate: the client submits the invite code and
// learns the league it unlocks.
func (h *Handler) ValidateLeague(inviteCode string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.Handler.ValidateLeague")
		defer span.End()

		var req leagueValidateRequest
		if err := h.decodeRequest(ctx, r, &req); err != nil {
			writeError(ctx, w, err)
			return
		}
		if err := h.validateRequest(ctx, req); err != nil {
			writeError(ctx, w, err)
			return
		}

		if !secureEqual(strings.TrimSpace(req.Code), inviteCode) {
			writeError(ctx, w, fmt.Errorf("%w: invalid invite code", usecase.ErrUnauthorized))
			return
		}

		writeSuccess(ctx, w, http.StatusOK, map[string]string{
			"leagueCode": h.leagueCode,
		})
	}
}
