package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/lnjp/matchday-api/internal/domain/subscription"
)

type subscriptionKey struct {
	userID   string
	deviceID string
}

type SubscriptionRepository struct {
	mu    sync.RWMutex
	items map[subscriptionKey]subscription.PushSubscription
}

func NewSubscriptionRepository() *SubscriptionRepository {
	return &SubscriptionRepository{items: make(map[subscriptionKey]subscription.PushSubscription)}
}

func (r *SubscriptionRepository) Upsert(_ context.Context, item subscription.PushSubscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[subscriptionKey{userID: item.UserID, deviceID: item.DeviceID}] = item
	return nil
}

func (r *SubscriptionRepository) ListByLeague(_ context.Context, leagueCode string) ([]subscription.PushSubscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]subscription.PushSubscription, 0)
	for _, item := range r.items {
		if item.LeagueCode == leagueCode {
			out = append(out, item)
		}
	}
	sortSubscriptions(out)

	return out, nil
}

func (r *SubscriptionRepository) ListAll(_ context.Context) ([]subscription.PushSubscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]subscription.PushSubscription, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sortSubscriptions(out)

	return out, nil
}

func (r *SubscriptionRepository) Delete(_ context.Context, userID, deviceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, subscriptionKey{userID: userID, deviceID: deviceID})
	return nil
}

func sortSubscriptions(items []subscription.PushSubscription) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].UserID != items[j].UserID {
			return items[i].UserID < items[j].UserID
		}
		return items[i].DeviceID < items[j].DeviceID
	})
}
