package usecase

import (
	"errors"
	"strings"
	"testing"

	"github.com/lnjp/matchday-api/internal/domain/chat"
	"github.com/lnjp/matchday-api/internal/infrastructure/repository/memory"
	"github.com/lnjp/matchday-api/internal/platform/logging"
)

func TestChatService_PostAndList(t *testing.T) {
	chatRepo := memory.NewChatRepository()
	service := NewChatService(chatRepo, 80, logging.NewNop())

	saved, err := service.Post(t.Context(), PostMessageInput{
		LeagueCode:  "lnjp",
		UserID:      "user-1",
		DisplayName: "  Léo  ",
		Content:     " Allez Paris ! ",
	})
	if err != nil {
		t.Fatalf("post failed: %v", err)
	}
	if saved.ID == 0 {
		t.Fatalf("expected assigned message id")
	}
	if saved.DisplayName != "Léo" || saved.Content != "Allez Paris !" {
		t.Fatalf("expected trimmed fields, got %q / %q", saved.DisplayName, saved.Content)
	}

	messages, err := service.ListRecent(t.Context(), "lnjp")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(messages))
	}
}

func TestChatService_ListRecent_Window(t *testing.T) {
	chatRepo := memory.NewChatRepository()
	service := NewChatService(chatRepo, 3, logging.NewNop())

	for i := 0; i < 5; i++ {
		_, err := service.Post(t.Context(), PostMessageInput{
			LeagueCode:  "lnjp",
			UserID:      "user-1",
			DisplayName: "Léo",
			Content:     strings.Repeat("a", i+1),
		})
		if err != nil {
			t.Fatalf("post %d failed: %v", i, err)
		}
	}

	messages, err := service.ListRecent(t.Context(), "lnjp")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(messages) != 3 {
		t.Fatalf("expected window of 3, got %d", len(messages))
	}
	// Latest three, oldest first.
	if messages[0].Content != "aaa" || messages[2].Content != "aaaaa" {
		t.Fatalf("unexpected window contents: %q .. %q", messages[0].Content, messages[2].Content)
	}
}

func TestChatService_Post_Validation(t *testing.T) {
	service := NewChatService(memory.NewChatRepository(), 80, logging.NewNop())

	cases := []struct {
		name  string
		input PostMessageInput
	}{
		{
			name:  "short display name",
			input: PostMessageInput{LeagueCode: "lnjp", UserID: "user-1", DisplayName: "L", Content: "salut"},
		},
		{
			name:  "empty content",
			input: PostMessageInput{LeagueCode: "lnjp", UserID: "user-1", DisplayName: "Léo", Content: "   "},
		},
		{
			name: "content too long",
			input: PostMessageInput{LeagueCode: "lnjp", UserID: "user-1", DisplayName: "Léo",
				Content: strings.Repeat("a", 2001)},
		},
		{
			name:  "missing league",
			input: PostMessageInput{UserID: "user-1", DisplayName: "Léo", Content: "salut"},
		},
		{
			name:  "missing user",
			input: PostMessageInput{LeagueCode: "lnjp", DisplayName: "Léo", Content: "salut"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := service.Post(t.Context(), tc.input); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestChatService_PostAsAdmin(t *testing.T) {
	service := NewChatService(memory.NewChatRepository(), 80, logging.NewNop())

	saved, err := service.PostAsAdmin(t.Context(), "lnjp", "", "La journée 3 est ouverte")
	if err != nil {
		t.Fatalf("admin post failed: %v", err)
	}
	if saved.UserID != chat.RoleAdmin {
		t.Fatalf("expected admin identity, got %q", saved.UserID)
	}
	if saved.DisplayName != "Admin" {
		t.Fatalf("expected Admin fallback name, got %q", saved.DisplayName)
	}
}
