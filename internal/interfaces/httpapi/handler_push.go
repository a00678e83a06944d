package httpapi

import (
	"net/http"

	"github.com/lnjp/matchday-api/internal/domain/subscription"
)

type subscriptionKeysRequest struct {
	P256dh string `json:"p256dh" validate:"required"`
	Auth   string `json:"auth" validate:"required"`
}

type subscriptionPayloadRequest struct {
	Endpoint string                  `json:"endpoint" validate:"required,url"`
	Keys     subscriptionKeysRequest `json:"keys" validate:"required"`
}

type subscribeRequest struct {
	UserID       string                     `json:"userId" validate:"required"`
	DeviceID     string                     `json:"deviceId" validate:"required"`
	Subscription subscriptionPayloadRequest `json:"subscription" validate:"required"`
}

func (h *Handler) PublicKey(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PublicKey")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{
		"publicKey": h.vapidPublicKey,
	})
}

func (h *Handler) SaveSubscription(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveSubscription")
	defer span.End()

	var req subscribeRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	err := h.notifyService.Subscribe(ctx, subscription.PushSubscription{
		UserID:     req.UserID,
		DeviceID:   req.DeviceID,
		LeagueCode: h.leagueCode,
		Endpoint:   req.Subscription.Endpoint,
		P256dh:     req.Subscription.Keys.P256dh,
		Auth:       req.Subscription.Keys.Auth,
	})
	if err != nil {
		h.logger.Warn("save subscription failed", "user_id", req.UserID, "device_id", req.DeviceID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "subscribed"})
}
