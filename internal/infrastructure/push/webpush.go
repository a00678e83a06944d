package push

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	webpush "github.com/SherClockHolmes/webpush-go"

	"github.com/lnjp/matchday-api/internal/domain/subscription"
	"github.com/lnjp/matchday-api/internal/usecase"
)

type TransportConfig struct {
	Subscriber      string
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	TTL             int
	HTTPClient      *http.Client
}

// WebPushTransport delivers payloads over the Web Push protocol with VAPID
// auth. It implements usecase.PushTransport.
type WebPushTransport struct {
	subscriber string
	publicKey  string
	privateKey string
	ttl        int
	httpClient *http.Client
}

func NewWebPushTransport(cfg TransportConfig) *WebPushTransport {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 60
	}

	return &WebPushTransport{
		subscriber: cfg.Subscriber,
		publicKey:  cfg.VAPIDPublicKey,
		privateKey: cfg.VAPIDPrivateKey,
		ttl:        ttl,
		httpClient: httpClient,
	}
}

func (t *WebPushTransport) Send(ctx context.Context, sub subscription.PushSubscription, payload []byte) error {
	target := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}

	resp, err := webpush.SendNotificationWithContext(ctx, payload, target, &webpush.Options{
		HTTPClient:      t.httpClient,
		Subscriber:      t.subscriber,
		VAPIDPublicKey:  t.publicKey,
		VAPIDPrivateKey: t.privateKey,
		TTL:             t.ttl,
	})
	if err != nil {
		return fmt.Errorf("send web push: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return fmt.Errorf("%w: push service status=%d", usecase.ErrPushEndpointGone, resp.StatusCode)
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	default:
		return fmt.Errorf("push service status=%d", resp.StatusCode)
	}
}
