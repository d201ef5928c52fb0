package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parcels/internal/adapters"
	"parcels/internal/adapters/cache"
	"parcels/internal/adapters/httpclient"
	"parcels/internal/adapters/memory"
	"parcels/internal/adapters/postgres"
	"parcels/internal/api"
	"parcels/internal/config"
	"parcels/internal/parcel"
	"parcels/internal/parcel/handler"
	"parcels/internal/platform/db"
	httpserver "parcels/internal/platform/http"
	"parcels/internal/rate"
	"parcels/internal/scheduler"
	"parcels/internal/session"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type repositories struct {
	packages  adapters.PackageRepository
	types     adapters.TypeRepository
	companies adapters.CompanyRepository
	sessions  adapters.SessionRepository
}

// Run wires the application components, starts HTTP server and scheduler
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	if parsedLvl, parseErr := logrus.ParseLevel(appCfg.Logging.Level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (migrations, DB connect, redis ping)
	startupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	repos, closeStorage, err := openStorage(startupCtx, appCfg.Storage, appCfg.DbServer)
	if err != nil {
		logrus.WithError(err).Error("Error opening storage")
		return err
	}
	defer closeStorage()
	logrus.Infof("✅ %s storage ready", appCfg.Storage.Driver)

	slot, closeSlot, err := openRateSlot(startupCtx, appCfg.RateCache, appCfg.Redis)
	if err != nil {
		logrus.WithError(err).Error("Error opening rate cache")
		return err
	}
	defer closeSlot()
	logrus.Infof("✅ %s rate cache ready", appCfg.RateCache.Driver)

	// Base HTTP client (configurable timeout)
	httpTimeout := time.Duration(appCfg.HTTPClient.TimeoutSeconds) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = 10 * time.Second
	}
	rateClient := httpclient.NewCBRClient(&http.Client{Timeout: httpTimeout}, appCfg.CBRAPI.URL)

	// Services
	rateService := rate.NewService(slot, rateClient, appCfg.RateCache.FetchTimeout)
	parcelService := parcel.NewService(repos.packages, repos.types, repos.companies, repos.sessions, rateService)
	recalculator := parcel.NewRecalculator(repos.packages, rateService)

	jobs := scheduler.NewScheduler(rateService, recalculator, scheduler.Config{
		RateRefreshInterval:   appCfg.Scheduler.RateRefreshInterval,
		RecalculationInterval: appCfg.Scheduler.RecalculationInterval,
		RefreshOnStart:        appCfg.Scheduler.RefreshOnStart,
	})
	// Ensure scheduler stops before storage closes
	defer func() {
		if shutDownErr := jobs.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
		}
	}()
	// Start scheduler tied to root context
	if startErr := jobs.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start scheduler")
		return startErr
	}
	logrus.Info("✅ Scheduler activation successful")

	// Handlers and router
	router := api.NewRouter(handler.NewHandler(parcelService, jobs), session.Config{
		CookieName: appCfg.Session.CookieName,
		MaxAge:     appCfg.Session.MaxAge,
	})

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		// Cancel the root context to stop scheduler and other in-flight work
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}

func openStorage(ctx context.Context, storageCfg config.Storage, dbCfg config.DbServer) (repositories, func(), error) {
	switch storageCfg.Driver {
	case "memory":
		store := memory.NewStore()
		return repositories{
			packages:  store.Packages(),
			types:     store.Types(),
			companies: store.Companies(),
			sessions:  store.Sessions(),
		}, func() {}, nil
	case "postgres":
		if err := db.Migrate(ctx, dbCfg.DSN()); err != nil {
			return repositories{}, nil, err
		}
		pool, err := db.CreatePoolAndPing(ctx, dbCfg)
		if err != nil {
			return repositories{}, nil, fmt.Errorf("error connecting to db: %w", err)
		}
		return repositories{
			packages:  postgres.NewPackageRepository(pool),
			types:     postgres.NewTypeRepository(pool),
			companies: postgres.NewCompanyRepository(pool),
			sessions:  postgres.NewSessionRepository(pool),
		}, pool.Close, nil
	default:
		return repositories{}, nil, fmt.Errorf("unsupported storage driver %q", storageCfg.Driver)
	}
}

func openRateSlot(ctx context.Context, cacheCfg config.RateCache, redisCfg config.Redis) (adapters.RateSlot, func(), error) {
	switch cacheCfg.Driver {
	case "memory":
		slot, err := cache.NewRistrettoRateSlot()
		if err != nil {
			return nil, nil, err
		}
		return slot, slot.Close, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     redisCfg.Addr,
			Password: redisCfg.Password,
			DB:       redisCfg.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("error connecting to redis: %w", err)
		}
		return cache.NewRedisRateSlot(client, redisCfg.KeyPrefix, redisCfg.TTL), func() { _ = client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported rate cache driver %q", cacheCfg.Driver)
	}
}
