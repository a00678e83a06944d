package memory

import (
	"context"
	"sync"

	"github.com/lnjp/matchday-api/internal/domain/chat"
)

type ChatRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  []chat.Message
}

func NewChatRepository() *ChatRepository {
	return &ChatRepository{nextID: 1}
}

func (r *ChatRepository) Insert(_ context.Context, item chat.Message) (chat.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = r.nextID
	r.nextID++
	r.items = append(r.items, item)

	return item, nil
}

func (r *ChatRepository) ListRecent(_ context.Context, leagueCode string, limit int) ([]chat.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]chat.Message, 0)
	for _, item := range r.items {
		if item.LeagueCode == leagueCode {
			matched = append(matched, item)
		}
	}
	if limit > 0 && len(matched) > limit {
		matched = matched[len(matched)-limit:]
	}

	return matched, nil
}
