package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/lnjp/matchday-api/internal/domain/notification"
	notificationmock "github.com/lnjp/matchday-api/internal/mocks/domain/notification"
	"github.com/lnjp/matchday-api/internal/platform/logging"
)

func TestInboxService_List_DefaultsLimitUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	notificationRepo := notificationmock.NewRepository(t)
	service := NewInboxService(notificationRepo, logging.NewNop())

	expected := []notification.Notification{
		{
			ID:         "notif-001",
			LeagueCode: "lnjp",
			Title:      "Journée publiée",
			Body:       "Les pronos sont ouverts",
			URL:        "/days/day-001",
			CreatedAt:  time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC),
		},
	}

	notificationRepo.
		On("ListByLeague", mock.Anything, "lnjp", 50).
		Return(expected, nil).
		Once()

	got, err := service.List(ctx, "lnjp", 0)
	if err != nil {
		t.Fatalf("list inbox: %v", err)
	}
	if len(got) != 1 || got[0].ID != expected[0].ID {
		t.Fatalf("unexpected inbox items: %+v", got)
	}
}

func TestInboxService_Dismiss_DelegatesDeleteUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	notificationRepo := notificationmock.NewRepository(t)
	service := NewInboxService(notificationRepo, logging.NewNop())

	notificationRepo.
		On("Delete", mock.Anything, "notif-001").
		Return(nil).
		Once()

	if err := service.Dismiss(ctx, "notif-001"); err != nil {
		t.Fatalf("dismiss notification: %v", err)
	}
}

func TestInboxService_List_RepoErrorUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	notificationRepo := notificationmock.NewRepository(t)
	service := NewInboxService(notificationRepo, logging.NewNop())

	notificationRepo.
		On("ListByLeague", mock.Anything, "lnjp", 50).
		Return(nil, errors.New("connection refused")).
		Once()

	if _, err := service.List(ctx, "lnjp", 999); err == nil {
		t.Fatalf("expected repository error to propagate")
	}
}
