package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/lnjp/matchday-api/internal/domain/chat"
)

type ChatRepository struct {
	db *sqlx.DB
}

func NewChatRepository(db *sqlx.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

func (r *ChatRepository) Insert(ctx context.Context, item chat.Message) (chat.Message, error) {
	const insertQuery = `
INSERT INTO chat_messages (league_code, user_id, display_name, content, created_at)
VALUES (:league_code, :user_id, :display_name, :content, :created_at)
RETURNING id, created_at`

	query, args, err := sqlx.Named(insertQuery, map[string]any{
		"league_code":  item.LeagueCode,
		"user_id":      item.UserID,
		"display_name": item.DisplayName,
		"content":      item.Content,
		"created_at":   item.CreatedAt,
	})
	if err != nil {
		return chat.Message{}, fmt.Errorf("bind insert chat message query: %w", err)
	}
	query = r.db.Rebind(query)

	row := r.db.QueryRowxContext(ctx, query, args...)
	if err := row.Scan(&item.ID, &item.CreatedAt); err != nil {
		return chat.Message{}, fmt.Errorf("insert chat message: %w", err)
	}

	return item, nil
}

// ListRecent pulls the newest rows and flips them so callers read the window
// oldest first.
func (r *ChatRepository) ListRecent(ctx context.Context, leagueCode string, limit int) ([]chat.Message, error) {
	const listQuery = `
SELECT id, league_code, user_id, display_name, content, created_at
FROM chat_messages
WHERE league_code = $1
ORDER BY id DESC
LIMIT $2`

	var rows []struct {
		ID          int64     `db:"id"`
		LeagueCode  string    `db:"league_code"`
		UserID      string    `db:"user_id"`
		DisplayName string    `db:"display_name"`
		Content     string    `db:"content"`
		CreatedAt   time.Time `db:"created_at"`
	}
	if err := r.db.SelectContext(ctx, &rows, listQuery, leagueCode, limit); err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}

	out := make([]chat.Message, len(rows))
	for i, row := range rows {
		out[len(rows)-1-i] = chat.Message{
			ID:          row.ID,
			LeagueCode:  row.LeagueCode,
			UserID:      row.UserID,
			DisplayName: row.DisplayName,
			Content:     row.Content,
			CreatedAt:   row.CreatedAt,
		}
	}

	return out, nil
}
