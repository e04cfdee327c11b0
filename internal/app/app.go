// Package app wires the engine together: infrastructure connections,
// domain services, and the HTTP surface.
package app

import (
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	// Domains
	"github.com/sporthub/server/internal/domain/account"
	"github.com/sporthub/server/internal/domain/availability"
	"github.com/sporthub/server/internal/domain/booking"
	"github.com/sporthub/server/internal/domain/facility"
	"github.com/sporthub/server/internal/domain/ledger"
	"github.com/sporthub/server/internal/domain/team"

	// Inbound adapters
	accounthttp "github.com/sporthub/server/internal/adapter/inbound/http/account"
	bookinghttp "github.com/sporthub/server/internal/adapter/inbound/http/booking"
	facilityhttp "github.com/sporthub/server/internal/adapter/inbound/http/facility"
	teamhttp "github.com/sporthub/server/internal/adapter/inbound/http/team"

	// Outbound adapters
	"github.com/sporthub/server/internal/adapter/outbound/paystack"
	"github.com/sporthub/server/internal/adapter/outbound/postgres"
	"github.com/sporthub/server/internal/adapter/outbound/rabbitmq"
	"github.com/sporthub/server/internal/adapter/outbound/rediscache"

	// Infrastructure
	"github.com/sporthub/server/internal/infra/events"
	"github.com/sporthub/server/internal/port/outbound"
	sharedcache "github.com/sporthub/server/internal/shared/cache"
	"github.com/sporthub/server/internal/shared/config"
	"github.com/sporthub/server/internal/shared/database"
	"github.com/sporthub/server/internal/shared/logger"
	"github.com/sporthub/server/internal/utils/metrics"
	"github.com/sporthub/server/internal/utils/middleware"
)

// App bundles the running application.
type App struct {
	config  *config.Config
	db      *gorm.DB
	redis   goredis.UniversalClient
	broker  outbound.MessagePort
	router  *gin.Engine
	logger  *zap.Logger
	metrics *metrics.Metrics

	bus *events.Bus

	// Domain services
	facilityDomain facility.FacilityDomain
	availDomain    availability.AvailabilityDomain
	accountDomain  account.AccountDomain
	teamDomain     team.TeamDomain
	ledgerDomain   ledger.LedgerDomain
	bookingDomain  booking.BookingDomain

	gateway outbound.PaymentGatewayPort
}

// New creates a fully wired application.
func New(cfg *config.Config) (*App, error) {
	log, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	a := &App{
		config:  cfg,
		logger:  log,
		metrics: metrics.New("sporthub"),
	}

	if err := a.initInfrastructure(); err != nil {
		return nil, fmt.Errorf("init infrastructure: %w", err)
	}
	a.initDomains()
	a.router = a.setupRouter()
	a.registerRoutes()

	return a, nil
}

// Router returns the HTTP handler.
func (a *App) Router() *gin.Engine {
	return a.router
}

// Logger returns the application logger.
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Stop releases infrastructure connections.
func (a *App) Stop() {
	if a.broker != nil {
		if err := a.broker.Close(); err != nil {
			a.logger.Warn("close broker", zap.Error(err))
		}
	}
	if a.redis != nil {
		if err := sharedcache.Close(a.redis); err != nil {
			a.logger.Warn("close redis", zap.Error(err))
		}
	}
	if a.db != nil {
		if err := database.Close(a.db); err != nil {
			a.logger.Warn("close database", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}

func (a *App) initInfrastructure() error {
	db, err := database.New(&a.config.Database)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	a.db = db

	// Redis is optional; availability reads fall through to the
	// database without it.
	if a.config.Redis.Address != "" {
		redisClient, err := sharedcache.NewRedisClient(&a.config.Redis)
		if err != nil {
			a.logger.Warn("redis connection failed, continuing without cache", zap.Error(err))
		} else {
			a.redis = redisClient
		}
	}

	// The broker is optional; without it events stay in-process.
	if a.config.AMQP.URL != "" {
		broker, err := rabbitmq.NewPublisher(a.config.AMQP, a.logger)
		if err != nil {
			a.logger.Warn("broker connection failed, continuing without notifications", zap.Error(err))
		} else {
			a.broker = broker
		}
	}

	return nil
}

func (a *App) initDomains() {
	// Outbound adapters
	facilityDB := postgres.NewFacilityAdapter(a.db)
	bookingDB := postgres.NewBookingAdapter(a.db)
	teamDB := postgres.NewTeamAdapter(a.db)
	memberDB := postgres.NewTeamMemberAdapter(a.db)
	ledgerDB := postgres.NewLedgerAdapter(a.db)
	userDB := postgres.NewUserAdapter(a.db)
	ownerDB := postgres.NewOwnerAdapter(a.db)
	cashbackDB := postgres.NewCashbackAdapter(a.db)
	webhookDB := postgres.NewWebhookEventAdapter(a.db)

	a.gateway = paystack.NewClient(a.config.Gateway, a.logger)

	var availCache outbound.AvailabilityCachePort
	if a.redis != nil {
		availCache = rediscache.NewAvailabilityCache(a.redis, a.config.Booking.AvailabilityCacheTTL)
	}

	// Event bus with the broker dispatcher when a broker is configured.
	a.bus = events.NewBus(a.logger)
	if a.broker != nil {
		a.bus.Register(events.NewDispatcher(a.broker, a.logger))
	}
	publisher := events.NewBusPublisher(a.bus)

	// Domain services
	a.facilityDomain = facility.NewFacilityDomain(facilityDB, a.logger)
	a.availDomain = availability.NewAvailabilityDomain(facilityDB, bookingDB, availCache, a.logger)
	a.accountDomain = account.NewAccountDomain(ownerDB, a.gateway, publisher, a.logger)
	a.teamDomain = team.NewTeamDomain(teamDB, memberDB, facilityDB, publisher, a.logger)
	a.ledgerDomain = ledger.NewLedgerDomain(ledgerDB, teamDB, publisher, a.logger)
	a.bookingDomain = booking.NewBookingDomain(
		bookingDB,
		teamDB,
		ledgerDB,
		facilityDB,
		userDB,
		ownerDB,
		cashbackDB,
		webhookDB,
		a.gateway,
		a.availDomain,
		publisher,
		a.config.Booking,
		a.logger,
	)
}

func (a *App) setupRouter() *gin.Engine {
	if a.config.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(a.logger))
	router.Use(middleware.Logging(a.logger))
	router.Use(middleware.Metrics(a.metrics))
	router.Use(cors.Default())

	return router
}

func (a *App) registerRoutes() {
	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	a.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := a.router.Group("/api/v1")

	// Webhooks authenticate by signature, not identity token.
	webhookHandler := bookinghttp.NewWebhookHandler(a.bookingDomain, a.gateway, a.logger)
	webhookHandler.RegisterRoutes(v1)

	authed := v1.Group("")
	authed.Use(middleware.Identity(a.config.Identity.SharedSecret))

	facilityhttp.NewHandler(a.facilityDomain, a.availDomain).RegisterRoutes(authed)
	accounthttp.NewHandler(a.accountDomain).RegisterRoutes(authed)
	bookinghttp.NewHandler(a.bookingDomain).RegisterRoutes(authed)
	teamhttp.NewHandler(a.teamDomain).RegisterRoutes(authed)
	teamhttp.NewLedgerHandler(a.ledgerDomain, a.bookingDomain).RegisterRoutes(authed)
}
