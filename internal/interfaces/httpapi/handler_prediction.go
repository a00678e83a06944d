package httpapi

import (
	"net/http"

	"github.com/lnjp/matchday-api/internal/usecase"
)

type pickRequest struct {
	MatchID int64  `json:"matchId" validate:"required,gt=0"`
	Pick    string `json:"pick" validate:"required"`
}

type submitPredictionsRequest struct {
	UserID string        `json:"userId" validate:"required"`
	Picks  []pickRequest `json:"picks" validate:"required,min=1,dive"`
}

type submitPredictionsResponse struct {
	DayID string `json:"dayId"`
	Saved int    `json:"saved"`
}

func (h *Handler) SubmitPredictions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPredictions")
	defer span.End()

	dayID := r.PathValue("dayID")

	var req submitPredictionsRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	picks := make([]usecase.PickInput, 0, len(req.Picks))
	for _, p := range req.Picks {
		picks = append(picks, usecase.PickInput{
			ExternalMatchID: p.MatchID,
			Pick:            p.Pick,
		})
	}

	saved, err := h.predictionService.Submit(ctx, usecase.SubmitPredictionsInput{
		DayID:  dayID,
		UserID: req.UserID,
		Picks:  picks,
	})
	if err != nil {
		h.logger.Warn("submit predictions failed", "day_id", dayID, "user_id", req.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, submitPredictionsResponse{
		DayID: dayID,
		Saved: saved,
	})
}
