package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/lnjp/matchday-api/internal/domain/notification"
	"github.com/lnjp/matchday-api/internal/platform/logging"
)

const inboxDefaultLimit = 50

// InboxService serves the durable notification records the fan-out engine
// writes.
type InboxService struct {
	notificationRepo notification.Repository
	logger           *logging.Logger
}

func NewInboxService(notificationRepo notification.Repository, logger *logging.Logger) *InboxService {
	if logger == nil {
		logger = logging.Default()
	}

	return &InboxService{notificationRepo: notificationRepo, logger: logger}
}

// List returns the league's notifications, newest first.
func (s *InboxService) List(ctx context.Context, leagueCode string, limit int) ([]notification.Notification, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InboxService.List")
	defer span.End()

	leagueCode = strings.TrimSpace(leagueCode)
	if leagueCode == "" {
		return nil, fmt.Errorf("%w: league code is required", ErrInvalidInput)
	}
	if limit < 1 || limit > inboxDefaultLimit {
		limit = inboxDefaultLimit
	}

	items, err := s.notificationRepo.ListByLeague(ctx, leagueCode, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return items, nil
}

// Dismiss removes one notification. Removing an id that is already gone is
// not an error.
func (s *InboxService) Dismiss(ctx context.Context, notificationID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.InboxService.Dismiss")
	defer span.End()

	notificationID = strings.TrimSpace(notificationID)
	if notificationID == "" {
		return fmt.Errorf("%w: notification id is required", ErrInvalidInput)
	}

	if err := s.notificationRepo.Delete(ctx, notificationID); err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	return nil
}
