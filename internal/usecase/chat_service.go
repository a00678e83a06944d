package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lnjp/matchday-api/internal/domain/chat"
	"github.com/lnjp/matchday-api/internal/platform/logging"
)

const (
	chatMinDisplayName = 2
	chatMaxContent     = 2000
)

type PostMessageInput struct {
	LeagueCode  string
	UserID      string
	DisplayName string
	Content     string
}

type ChatService struct {
	chatRepo     chat.Repository
	historyLimit int
	logger       *logging.Logger
	now          func() time.Time
}

func NewChatService(chatRepo chat.Repository, historyLimit int, logger *logging.Logger) *ChatService {
	if logger == nil {
		logger = logging.Default()
	}
	if historyLimit < 1 {
		historyLimit = 80
	}

	return &ChatService{
		chatRepo:     chatRepo,
		historyLimit: historyLimit,
		logger:       logger,
		now:          time.Now,
	}
}

// ListRecent returns the latest messages of the league in ascending order, at
// most the configured history window.
func (s *ChatService) ListRecent(ctx context.Context, leagueCode string) ([]chat.Message, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChatService.ListRecent")
	defer span.End()

	leagueCode = strings.TrimSpace(leagueCode)
	if leagueCode == "" {
		return nil, fmt.Errorf("%w: league code is required", ErrInvalidInput)
	}

	messages, err := s.chatRepo.ListRecent(ctx, leagueCode, s.historyLimit)
	if err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}
	return messages, nil
}

func (s *ChatService) Post(ctx context.Context, input PostMessageInput) (chat.Message, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChatService.Post")
	defer span.End()

	leagueCode := strings.TrimSpace(input.LeagueCode)
	if leagueCode == "" {
		return chat.Message{}, fmt.Errorf("%w: league code is required", ErrInvalidInput)
	}
	userID := strings.TrimSpace(input.UserID)
	if userID == "" {
		return chat.Message{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	displayName := strings.TrimSpace(input.DisplayName)
	if utf8.RuneCountInString(displayName) < chatMinDisplayName {
		return chat.Message{}, fmt.Errorf("%w: display name must be at least %d characters", ErrInvalidInput, chatMinDisplayName)
	}
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return chat.Message{}, fmt.Errorf("%w: message content is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(content) > chatMaxContent {
		return chat.Message{}, fmt.Errorf("%w: message content exceeds %d characters", ErrInvalidInput, chatMaxContent)
	}

	saved, err := s.chatRepo.Insert(ctx, chat.Message{
		LeagueCode:  leagueCode,
		UserID:      userID,
		DisplayName: displayName,
		Content:     content,
		CreatedAt:   s.now(),
	})
	if err != nil {
		return chat.Message{}, fmt.Errorf("insert chat message: %w", err)
	}

	return saved, nil
}

// PostAsAdmin posts under the reserved admin identity. An empty display name
// falls back to "Admin".
func (s *ChatService) PostAsAdmin(ctx context.Context, leagueCode, displayName, content string) (chat.Message, error) {
	if strings.TrimSpace(displayName) == "" {
		displayName = "Admin"
	}

	return s.Post(ctx, PostMessageInput{
		LeagueCode:  leagueCode,
		UserID:      chat.RoleAdmin,
		DisplayName: displayName,
		Content:     content,
	})
}
