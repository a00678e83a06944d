package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/lnjp/matchday-api/internal/domain/chat"
	"github.com/lnjp/matchday-api/internal/usecase"
)

type chatMessageDTO struct {
	ID          int64  `json:"id"`
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	Content     string `json:"content"`
	CreatedAt   string `json:"createdAt"`
}

type postChatMessageRequest struct {
	UserID      string `json:"userId" validate:"required"`
	DisplayName string `json:"displayName" validate:"required,min=2"`
	Content     string `json:"content" validate:"required,max=2000"`
}

func (h *Handler) ListChatMessages(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListChatMessages")
	defer span.End()

	messages, err := h.chatService.ListRecent(ctx, h.leagueCode)
	if err != nil {
		h.logger.Warn("list chat messages failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]chatMessageDTO, 0, len(messages))
	for _, m := range messages {
		items = append(items, chatMessageToDTO(ctx, m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) PostChatMessage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PostChatMessage")
	defer span.End()

	var req postChatMessageRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	saved, err := h.chatService.Post(ctx, usecase.PostMessageInput{
		LeagueCode:  h.leagueCode,
		UserID:      req.UserID,
		DisplayName: req.DisplayName,
		Content:     req.Content,
	})
	if err != nil {
		h.logger.Warn("chat post failed", "user_id", req.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, chatMessageToDTO(ctx, saved))
}

func chatMessageToDTO(ctx context.Context, v chat.Message) chatMessageDTO {
	_, span := startSpan(ctx, "httpapi.chatMessageToDTO")
	defer span.End()

	return chatMessageDTO{
		ID:          v.ID,
		UserID:      v.UserID,
		DisplayName: v.DisplayName,
		Content:     v.Content,
		CreatedAt:   v.CreatedAt.UTC().Format(time.RFC3339),
	}
}
