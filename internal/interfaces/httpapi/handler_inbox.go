package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/lnjp/matchday-api/internal/domain/notification"
)

type notificationDTO struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	URL       string `json:"url"`
	CreatedAt string `json:"createdAt"`
}

func (h *Handler) ListInbox(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListInbox")
	defer span.End()

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err == nil {
			limit = parsed
		}
	}

	items, err := h.inboxService.List(ctx, h.leagueCode, limit)
	if err != nil {
		h.logger.Warn("list inbox failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]notificationDTO, 0, len(items))
	for _, item := range items {
		out = append(out, notificationToDTO(ctx, item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) DismissNotification(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DismissNotification")
	defer span.End()

	notificationID := r.PathValue("notificationID")
	if err := h.inboxService.Dismiss(ctx, notificationID); err != nil {
		h.logger.Warn("dismiss notification failed", "notification_id", notificationID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

func notificationToDTO(ctx context.Context, v notification.Notification) notificationDTO {
	_, span := startSpan(ctx, "httpapi.notificationToDTO")
	defer span.End()

	return notificationDTO{
		ID:        v.ID,
		Title:     v.Title,
		Body:      v.Body,
		URL:       v.URL,
		CreatedAt: v.CreatedAt.UTC().Format(time.RFC3339),
	}
}
