package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/lnjp/matchday-api/internal/domain/day"
	"github.com/lnjp/matchday-api/internal/domain/prediction"
	"github.com/lnjp/matchday-api/internal/usecase"
)

type dayDTO struct {
	ID              string  `json:"id"`
	Matchday        int     `json:"matchday"`
	Title           string  `json:"title"`
	DeadlineAt      string  `json:"deadlineAt"`
	FeaturedMatchID int64   `json:"featuredMatchId"`
	Status          string  `json:"status"`
	PublishedAt     *string `json:"publishedAt,omitempty"`
}

type dayMatchDTO struct {
	MatchID    int64  `json:"matchId"`
	KickoffAt  string `json:"kickoffAt"`
	HomeTeam   string `json:"homeTeam"`
	AwayTeam   string `json:"awayTeam"`
	HomeCrest  string `json:"homeCrest,omitempty"`
	AwayCrest  string `json:"awayCrest,omitempty"`
	IsFeatured bool   `json:"isFeatured"`
}

type predictionDTO struct {
	MatchID   int64  `json:"matchId"`
	Pick      string `json:"pick"`
	UpdatedAt string `json:"updatedAt"`
}

type dayDetailDTO struct {
	Day         dayDTO          `json:"day"`
	Matches     []dayMatchDTO   `json:"matches"`
	Predictions []predictionDTO `json:"predictions,omitempty"`
}

func (h *Handler) ListDays(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDays")
	defer span.End()

	days, err := h.dayService.ListByLeague(ctx, h.leagueCode)
	if err != nil {
		h.logger.Warn("list days failed", "league_code", h.leagueCode, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]dayDTO, 0, len(days))
	for _, item := range days {
		items = append(items, dayToDTO(ctx, item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDay")
	defer span.End()

	dayID := r.PathValue("dayID")
	userID := r.URL.Query().Get("userId")

	detail, err := h.dayService.GetDetail(ctx, dayID, userID)
	if err != nil {
		h.logger.Warn("get day failed", "day_id", dayID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, dayDetailToDTO(ctx, detail))
}

func dayToDTO(ctx context.Context, v day.Day) dayDTO {
	_, span := startSpan(ctx, "httpapi.dayToDTO")
	defer span.End()

	out := dayDTO{
		ID:              v.ID,
		Matchday:        v.Matchday,
		Title:           v.Title,
		DeadlineAt:      v.DeadlineAt.UTC().Format(time.RFC3339),
		FeaturedMatchID: v.FeaturedMatchID,
		Status:          v.Status,
	}
	if v.PublishedAt != nil {
		published := v.PublishedAt.UTC().Format(time.RFC3339)
		out.PublishedAt = &published
	}
	return out
}

func dayMatchToDTO(ctx context.Context, v day.Match) dayMatchDTO {
	_, span := startSpan(ctx, "httpapi.dayMatchToDTO")
	defer span.End()

	return dayMatchDTO{
		MatchID:    v.ExternalMatchID,
		KickoffAt:  v.KickoffAt.UTC().Format(time.RFC3339),
		HomeTeam:   v.HomeTeam,
		AwayTeam:   v.AwayTeam,
		HomeCrest:  v.HomeCrest,
		AwayCrest:  v.AwayCrest,
		IsFeatured: v.IsFeatured,
	}
}

func predictionToDTO(ctx context.Context, v prediction.Prediction) predictionDTO {
	_, span := startSpan(ctx, "httpapi.predictionToDTO")
	defer span.End()

	return predictionDTO{
		MatchID:   v.ExternalMatchID,
		Pick:      v.Pick,
		UpdatedAt: v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func dayDetailToDTO(ctx context.Context, v usecase.DayDetail) dayDetailDTO {
	ctx, span := startSpan(ctx, "httpapi.dayDetailToDTO")
	defer span.End()

	matches := make([]dayMatchDTO, 0, len(v.Matches))
	for _, m := range v.Matches {
		matches = append(matches, dayMatchToDTO(ctx, m))
	}

	var picks []predictionDTO
	for _, p := range v.Predictions {
		picks = append(picks, predictionToDTO(ctx, p))
	}

	return dayDetailDTO{
		Day:         dayToDTO(ctx, v.Day),
		Matches:     matches,
		Predictions: picks,
	}
}
