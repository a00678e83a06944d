package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/panjf2000/ants/v2"

	"github.com/lnjp/matchday-api/internal/domain/notification"
	"github.com/lnjp/matchday-api/internal/domain/subscription"
	idgen "github.com/lnjp/matchday-api/internal/platform/id"
	"github.com/lnjp/matchday-api/internal/platform/logging"
)

// PushTransport delivers one payload to one subscription. Implementations
// return ErrPushEndpointGone (wrapped or bare) when the push service reports
// the endpoint permanently undeliverable.
type PushTransport interface {
	Send(ctx context.Context, sub subscription.PushSubscription, payload []byte) error
}

type NotifyResult struct {
	NotificationID    string
	Sent              int
	Failed            int
	SubscriptionCount int
}

type NotifyConfig struct {
	// ScopeByLeague narrows the fan-out to subscriptions enrolled under the
	// notified league; when false every stored subscription is targeted.
	ScopeByLeague  bool
	PerPushTimeout time.Duration
	MaxWorkers     int
}

type pushPayload struct {
	NotificationID string `json:"notificationId"`
	Title          string `json:"title"`
	Body           string `json:"body"`
	URL            string `json:"url"`
}

// NotifyService writes the durable inbox record and fans the announcement
// out to every subscribed device. Subscriber outcomes are independent: a
// failing endpoint never aborts the loop, and endpoints reported gone are
// pruned on the spot.
type NotifyService struct {
	notificationRepo notification.Repository
	subscriptionRepo subscription.Repository
	transport        PushTransport
	idGen            idgen.Generator
	cfg              NotifyConfig
	logger           *logging.Logger
	now              func() time.Time
}

func NewNotifyService(
	notificationRepo notification.Repository,
	subscriptionRepo subscription.Repository,
	transport PushTransport,
	idGen idgen.Generator,
	cfg NotifyConfig,
	logger *logging.Logger,
) *NotifyService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.PerPushTimeout <= 0 {
		cfg.PerPushTimeout = 5 * time.Second
	}
	if cfg.MaxWorkers < 1 {
		cfg.MaxWorkers = 1
	}

	return &NotifyService{
		notificationRepo: notificationRepo,
		subscriptionRepo: subscriptionRepo,
		transport:        transport,
		idGen:            idGen,
		cfg:              cfg,
		logger:           logger,
		now:              time.Now,
	}
}

// NotifyLeague records the announcement and attempts exactly one delivery
// per subscription. The inbox row is created first and survives regardless
// of push outcomes; delivery failures only show up in the returned counts.
func (s *NotifyService) NotifyLeague(ctx context.Context, leagueCode, title, body, url string) (NotifyResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NotifyService.NotifyLeague")
	defer span.End()

	leagueCode = strings.TrimSpace(leagueCode)
	if leagueCode == "" {
		return NotifyResult{}, fmt.Errorf("%w: league code is required", ErrInvalidInput)
	}
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if title == "" || body == "" {
		return NotifyResult{}, fmt.Errorf("%w: title and body are required", ErrInvalidInput)
	}
	if strings.TrimSpace(url) == "" {
		url = "/"
	}

	notifID, err := s.idGen.NewID()
	if err != nil {
		return NotifyResult{}, fmt.Errorf("generate notification id: %w", err)
	}

	item := notification.Notification{
		ID:         notifID,
		LeagueCode: leagueCode,
		Title:      title,
		Body:       body,
		URL:        url,
		CreatedBy:  "admin",
		CreatedAt:  s.now(),
	}
	if err := s.notificationRepo.Insert(ctx, item); err != nil {
		return NotifyResult{}, fmt.Errorf("insert notification: %w", err)
	}

	subs, err := s.listTargets(ctx, leagueCode)
	if err != nil {
		// The inbox record exists; a broken subscription listing only
		// suppresses pushes for this call.
		s.logger.Error("list push subscriptions failed", "league_code", leagueCode, "error", err)
		return NotifyResult{NotificationID: notifID}, nil
	}

	result := NotifyResult{
		NotificationID:    notifID,
		SubscriptionCount: len(subs),
	}
	if len(subs) == 0 {
		return result, nil
	}

	payload, err := sonic.Marshal(pushPayload{
		NotificationID: notifID,
		Title:          title,
		Body:           body,
		URL:            url,
	})
	if err != nil {
		return NotifyResult{}, fmt.Errorf("marshal push payload: %w", err)
	}

	sent, failed := s.fanOut(ctx, subs, payload)
	result.Sent = sent
	result.Failed = failed

	s.logger.Info("notification fan-out done",
		"notification_id", notifID,
		"league_code", leagueCode,
		"subscriptions", len(subs),
		"sent", sent,
		"failed", failed,
	)

	return result, nil
}

func (s *NotifyService) listTargets(ctx context.Context, leagueCode string) ([]subscription.PushSubscription, error) {
	if s.cfg.ScopeByLeague {
		return s.subscriptionRepo.ListByLeague(ctx, leagueCode)
	}
	return s.subscriptionRepo.ListAll(ctx)
}

func (s *NotifyService) fanOut(ctx context.Context, subs []subscription.PushSubscription, payload []byte) (int, int) {
	if s.transport == nil {
		s.logger.Warn("push transport not configured, skipping deliveries", "subscriptions", len(subs))
		return 0, len(subs)
	}

	var sent atomic.Int32
	var failed atomic.Int32

	workerCount := s.cfg.MaxWorkers
	if workerCount > len(subs) {
		workerCount = len(subs)
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		s.logger.Error("create push worker pool failed, falling back to sequential delivery", "error", err)
		for _, sub := range subs {
			s.deliver(ctx, sub, payload, &sent, &failed)
		}
		return int(sent.Load()), int(failed.Load())
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, sub := range subs {
		sub := sub
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			s.deliver(ctx, sub, payload, &sent, &failed)
		}); err != nil {
			workers.Done()
			failed.Add(1)
			s.logger.Error("submit push delivery failed", "endpoint", sub.Endpoint, "error", err)
		}
	}
	workers.Wait()

	return int(sent.Load()), int(failed.Load())
}

func (s *NotifyService) deliver(ctx context.Context, sub subscription.PushSubscription, payload []byte, sent, failed *atomic.Int32) {
	pushCtx, cancel := context.WithTimeout(ctx, s.cfg.PerPushTimeout)
	defer cancel()

	err := s.transport.Send(pushCtx, sub, payload)
	if err == nil {
		sent.Add(1)
		return
	}

	failed.Add(1)
	if errors.Is(err, ErrPushEndpointGone) {
		// The endpoint can never succeed again; drop it so the next
		// fan-out does not keep paying for it.
		if delErr := s.subscriptionRepo.Delete(ctx, sub.UserID, sub.DeviceID); delErr != nil {
			s.logger.Error("prune gone subscription failed",
				"user_id", sub.UserID,
				"device_id", sub.DeviceID,
				"error", delErr,
			)
			return
		}
		s.logger.Info("pruned gone subscription", "user_id", sub.UserID, "device_id", sub.DeviceID)
		return
	}

	s.logger.Warn("push delivery failed",
		"user_id", sub.UserID,
		"device_id", sub.DeviceID,
		"error", err,
	)
}

// Subscribe stores or refreshes a device's push enrollment.
func (s *NotifyService) Subscribe(ctx context.Context, item subscription.PushSubscription) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.NotifyService.Subscribe")
	defer span.End()

	if strings.TrimSpace(item.UserID) == "" || strings.TrimSpace(item.DeviceID) == "" {
		return fmt.Errorf("%w: user id and device id are required", ErrInvalidInput)
	}
	if strings.TrimSpace(item.Endpoint) == "" || strings.TrimSpace(item.P256dh) == "" || strings.TrimSpace(item.Auth) == "" {
		return fmt.Errorf("%w: endpoint, p256dh and auth are required", ErrInvalidInput)
	}

	item.CreatedAt = s.now()
	if err := s.subscriptionRepo.Upsert(ctx, item); err != nil {
		return fmt.Errorf("upsert push subscription: %w", err)
	}
	return nil
}
