package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/lnjp/matchday-api/internal/usecase"
)

type publishMatchRequest struct {
	MatchID   int64     `json:"matchId" validate:"required,gt=0"`
	KickoffAt time.Time `json:"kickoffAt" validate:"required"`
	HomeTeam  string    `json:"homeTeam" validate:"required"`
	AwayTeam  string    `json:"awayTeam" validate:"required"`
	HomeCrest string    `json:"homeCrest"`
	AwayCrest string    `json:"awayCrest"`
}

type publishDayRequest struct {
	Matchday        int                   `json:"matchday" validate:"required,min=1"`
	Matches         []publishMatchRequest `json:"matches" validate:"required,min=1,dive"`
	FeaturedMatchID int64                 `json:"featuredMatchId"`
	ActorID         string                `json:"actorId"`
}

type publishDayResponse struct {
	DayID              string       `json:"dayId"`
	Mode               string       `json:"mode"`
	Title              string       `json:"title"`
	DeadlineAt         string       `json:"deadlineAt"`
	FeaturedMatchID    int64        `json:"featuredMatchId"`
	DeletedPredictions int          `json:"deletedPredictions"`
	NotificationID     string       `json:"notificationId"`
	Push               pushStatsDTO `json:"push"`
}

type pushStatsDTO struct {
	Sent              int `json:"sent"`
	Failed            int `json:"failed"`
	SubscriptionCount int `json:"subscriptionCount"`
}

func (h *Handler) PublishDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PublishDay")
	defer span.End()

	var req publishDayRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	matches := make([]usecase.MatchSelection, 0, len(req.Matches))
	for _, m := range req.Matches {
		matches = append(matches, usecase.MatchSelection{
			ExternalMatchID: m.MatchID,
			KickoffAt:       m.KickoffAt,
			HomeTeam:        m.HomeTeam,
			AwayTeam:        m.AwayTeam,
			HomeCrest:       m.HomeCrest,
			AwayCrest:       m.AwayCrest,
		})
	}

	result, err := h.dayService.Publish(ctx, usecase.PublishDayInput{
		LeagueCode:      h.leagueCode,
		Matchday:        req.Matchday,
		Matches:         matches,
		FeaturedMatchID: req.FeaturedMatchID,
		ActorID:         req.ActorID,
	})
	if err != nil {
		h.logger.Error("publish day failed", "matchday", req.Matchday, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, publishDayResponse{
		DayID:              result.DayID,
		Mode:               result.Mode,
		Title:              result.Title,
		DeadlineAt:         result.DeadlineAt.UTC().Format(time.RFC3339),
		FeaturedMatchID:    result.FeaturedMatchID,
		DeletedPredictions: result.DeletedPredictions,
		NotificationID:     result.NotificationID,
		Push: pushStatsDTO{
			Sent:              result.Push.Sent,
			Failed:            result.Push.Failed,
			SubscriptionCount: result.Push.SubscriptionCount,
		},
	})
}

type upcomingMatchDTO struct {
	MatchID   int64  `json:"matchId"`
	KickoffAt string `json:"kickoffAt"`
	HomeTeam  string `json:"homeTeam"`
	AwayTeam  string `json:"awayTeam"`
	HomeCrest string `json:"homeCrest,omitempty"`
	AwayCrest string `json:"awayCrest,omitempty"`
}

type upcomingMatchdayDTO struct {
	Matchday int                `json:"matchday"`
	Matches  []upcomingMatchDTO `json:"matches"`
}

type upcomingFixturesDTO struct {
	CurrentMatchday int                   `json:"currentMatchday"`
	Matchdays       []upcomingMatchdayDTO `json:"matchdays"`
}

func (h *Handler) ListUpcomingFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListUpcomingFixtures")
	defer span.End()

	count := 3
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err == nil {
			count = parsed
		}
	}

	result, err := h.fixtureService.UpcomingMatchdays(ctx, count)
	if err != nil {
		h.logger.Warn("list upcoming fixtures failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, upcomingFixturesToDTO(ctx, result))
}

func upcomingFixturesToDTO(ctx context.Context, v usecase.UpcomingFixtures) upcomingFixturesDTO {
	_, span := startSpan(ctx, "httpapi.upcomingFixturesToDTO")
	defer span.End()

	groups := make([]upcomingMatchdayDTO, 0, len(v.Matchdays))
	for _, group := range v.Matchdays {
		matches := make([]upcomingMatchDTO, 0, len(group.Matches))
		for _, m := range group.Matches {
			matches = append(matches, upcomingMatchDTO{
				MatchID:   m.ExternalMatchID,
				KickoffAt: m.KickoffAt.UTC().Format(time.RFC3339),
				HomeTeam:  m.HomeTeam,
				AwayTeam:  m.AwayTeam,
				HomeCrest: m.HomeCrest,
				AwayCrest: m.AwayCrest,
			})
		}
		groups = append(groups, upcomingMatchdayDTO{
			Matchday: group.Matchday,
			Matches:  matches,
		})
	}

	return upcomingFixturesDTO{
		CurrentMatchday: v.CurrentMatchday,
		Matchdays:       groups,
	}
}

type notifyRequest struct {
	Title string `json:"title" validate:"required,max=120"`
	Body  string `json:"body" validate:"required,max=500"`
	URL   string `json:"url"`
}

type notifyResponse struct {
	NotificationID    string `json:"notificationId"`
	Sent              int    `json:"sent"`
	Failed            int    `json:"failed"`
	SubscriptionCount int    `json:"subscriptionCount"`
}

func (h *Handler) NotifyLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.NotifyLeague")
	defer span.End()

	var req notifyRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.notifyService.NotifyLeague(ctx, h.leagueCode, req.Title, req.Body, req.URL)
	if err != nil {
		h.logger.Error("notify league failed", "league_code", h.leagueCode, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, notifyResponse{
		NotificationID:    result.NotificationID,
		Sent:              result.Sent,
		Failed:            result.Failed,
		SubscriptionCount: result.SubscriptionCount,
	})
}

type adminChatRequest struct {
	DisplayName string `json:"displayName"`
	Content     string `json:"content" validate:"required"`
}

func (h *Handler) PostAdminChatMessage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PostAdminChatMessage")
	defer span.End()

	var req adminChatRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	saved, err := h.chatService.PostAsAdmin(ctx, h.leagueCode, req.DisplayName, req.Content)
	if err != nil {
		h.logger.Warn("admin chat post failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, chatMessageToDTO(ctx, saved))
}
