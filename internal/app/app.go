package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/lnjp/matchday-api/external/footballdata"
	"github.com/lnjp/matchday-api/internal/config"
	"github.com/lnjp/matchday-api/internal/infrastructure/push"
	"github.com/lnjp/matchday-api/internal/infrastructure/repository/postgres"
	"github.com/lnjp/matchday-api/internal/interfaces/httpapi"
	idgen "github.com/lnjp/matchday-api/internal/platform/id"
	"github.com/lnjp/matchday-api/internal/platform/logging"
	"github.com/lnjp/matchday-api/internal/platform/resilience"
	"github.com/lnjp/matchday-api/internal/usecase"
)

// App bundles the HTTP server with the resources it owns.
type App struct {
	Server *http.Server
	db     *sqlx.DB
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := openDatabase(ctx, cfg.DBURL)
	if err != nil {
		return nil, err
	}

	dayRepo := postgres.NewDayRepository(db)
	predictionRepo := postgres.NewPredictionRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	subscriptionRepo := postgres.NewSubscriptionRepository(db)
	chatRepo := postgres.NewChatRepository(db)

	idGenerator := idgen.NewUUIDGenerator()

	var transport usecase.PushTransport
	if cfg.PushEnabled {
		transport = push.NewWebPushTransport(push.TransportConfig{
			Subscriber:      cfg.VAPIDSubject,
			VAPIDPublicKey:  cfg.VAPIDPublicKey,
			VAPIDPrivateKey: cfg.VAPIDPrivateKey,
			TTL:             cfg.PushTTL,
		})
	} else {
		logger.Info("web push disabled", "reason", "PUSH_ENABLED=false")
	}

	notifySvc := usecase.NewNotifyService(
		notificationRepo,
		subscriptionRepo,
		transport,
		idGenerator,
		usecase.NotifyConfig{
			ScopeByLeague:  cfg.PushScopeByLeague,
			PerPushTimeout: cfg.PushTimeout,
			MaxWorkers:     cfg.PushMaxWorkers,
		},
		logger,
	)

	daySvc := usecase.NewDayService(
		dayRepo,
		predictionRepo,
		notifySvc,
		idGenerator,
		cfg.CompetitionCode,
		cfg.DayTitleFormat,
		logger,
	)
	predictionSvc := usecase.NewPredictionService(dayRepo, predictionRepo, logger)
	inboxSvc := usecase.NewInboxService(notificationRepo, logger)
	chatSvc := usecase.NewChatService(chatRepo, cfg.ChatHistory, logger)

	var provider usecase.FixtureProvider
	if cfg.FootballDataEnabled {
		provider = footballdata.NewClient(footballdata.ClientConfig{
			BaseURL:         cfg.FootballDataBaseURL,
			Token:           cfg.FootballDataToken,
			CompetitionCode: cfg.CompetitionCode,
			Timeout:         cfg.FootballDataTimeout,
			MaxRetries:      cfg.FootballDataMaxRetries,
			Logger:          logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.FootballDataCircuitEnabled,
				FailureThreshold: cfg.FootballDataCircuitFailureCount,
				OpenTimeout:      cfg.FootballDataCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.FootballDataCircuitHalfOpenReq,
			},
		})
	} else {
		logger.Info("football-data feed disabled", "reason", "FOOTBALL_DATA_ENABLED=false")
	}
	fixtureSvc := usecase.NewFixtureService(provider, logger)

	handler := httpapi.NewHandler(
		daySvc,
		predictionSvc,
		notifySvc,
		fixtureSvc,
		inboxSvc,
		chatSvc,
		cfg.LeagueCode,
		cfg.VAPIDPublicKey,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.AdminToken, cfg.InviteCode)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		_ = db.Close()
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{Server: server, db: db}, nil
}

// Close releases the resources held outside the HTTP server.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
