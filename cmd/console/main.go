// Command console serves the HR administration console.
//
// @title        RRHH Console API
// @version      1.0
// @description  Backend-for-frontend of the HR administration console.
// @BasePath     /
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

	"github.com/Witch19/rrhh-console/internal/api"
	"github.com/Witch19/rrhh-console/internal/api/handler"
	"github.com/Witch19/rrhh-console/internal/api/metrics"
	"github.com/Witch19/rrhh-console/internal/api/middleware"
	"github.com/Witch19/rrhh-console/internal/core/ports"
	"github.com/Witch19/rrhh-console/internal/core/service"
	"github.com/Witch19/rrhh-console/internal/core/session"
	"github.com/Witch19/rrhh-console/internal/infrastructure/backend"
	"github.com/Witch19/rrhh-console/internal/infrastructure/config"
	"github.com/Witch19/rrhh-console/internal/infrastructure/db/memory"
	mongostore "github.com/Witch19/rrhh-console/internal/infrastructure/db/mongo"
	redisstore "github.com/Witch19/rrhh-console/internal/infrastructure/db/redis"
	"github.com/Witch19/rrhh-console/internal/infrastructure/queue"
	"github.com/Witch19/rrhh-console/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	envFile := flag.String("env-file", "", "dotenv file to load before reading the environment")
	port := flag.StringP("port", "p", "", "listen port, overrides PORT")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx, *envFile)
	if err != nil {
		panic("load config: " + err.Error())
	}
	if *port != "" {
		cfg.Port = *port
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "rrhh-console",
	})
	log.Info().
		Str("env", cfg.Env).
		Str("hr_api", cfg.HRAPI.URL).
		Str("session_store", cfg.Session.Store).
		Msg("starting console")

	secret := []byte(cfg.Session.Secret)
	if len(secret) == 0 {
		secret = randomSecret()
		log.Warn().Msg("SESSION_SECRET not set, using a random secret; sessions end on restart")
	}

	readiness := map[string]handler.Pinger{}
	var closers []func(context.Context) error

	var mongoConn *mongostore.Conn
	if cfg.NeedsMongo() {
		mongoConn, err = mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			log.Fatal().Err(err).Msg("connect to MongoDB")
		}
		closers = append(closers, mongoConn.Close)
		readiness["mongo"] = mongoConn
	}

	stores, err := credentialStores(ctx, cfg, mongoConn, &closers)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Session.Store).Msg("open session store")
	}
	readiness["session_store"] = stores

	listeners := []session.Listener{metrics.ObserveSessionChange}
	// Audit workers stop only after the server has drained.
	auditCtx, stopAudit := context.WithCancel(context.Background())
	defer stopAudit()
	var dispatcher *queue.Dispatcher
	if cfg.Audit.Workers > 0 {
		dispatcher = queue.NewDispatcher(cfg.Audit.Workers, mongostore.NewSessionEventRepository(mongoConn.DB), logger.Component("audit"))
		dispatcher.Start(auditCtx)
		listeners = append(listeners, dispatcher.Listener())
	}

	client, err := backend.New(backend.Config{
		BaseURL:   cfg.HRAPI.URL,
		Timeout:   cfg.HRAPI.Timeout,
		Transport: metrics.InstrumentBackend(nil),
	}, logger.Component("backend"))
	if err != nil {
		log.Fatal().Err(err).Msg("configure HR backend client")
	}

	manager := session.NewManager(stores, logger.Component("session"), listeners...)

	e := api.NewRouter(api.Deps{
		Log: log,
		Session: middleware.SessionConfig{
			Secret:     secret,
			CookieName: cfg.Session.CookieName,
			TTL:        cfg.Session.TTL,
			Secure:     cfg.Session.Secure,
		},
		Sessions:       manager,
		Auth:           service.NewAuthService(client, manager, logger.Component("auth")),
		HR:             service.NewHRService(client),
		ThemeCookie:    cfg.Session.ThemeCookie,
		PublicEntry:    cfg.Session.PublicEntry,
		LoginRateLimit: cfg.Session.LoginRateLimit,
		Readiness:      readiness,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	stopAudit()
	if dispatcher != nil {
		dispatcher.Wait()
	}
	closeAll(shutdownCtx, log, closers)

	log.Info().Msg("console stopped")
}

type storeFactory interface {
	ports.CredentialStoreFactory
	handler.Pinger
}

func credentialStores(ctx context.Context, cfg *config.Config, conn *mongostore.Conn, closers *[]func(context.Context) error) (storeFactory, error) {
	switch cfg.Session.Store {
	case config.StoreRedis:
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		*closers = append(*closers, func(context.Context) error { return client.Close() })
		return redisstore.NewCredentialStore(client, cfg.Session.TTL), nil
	case config.StoreMongo:
		stores := mongostore.NewCredentialStore(conn.DB, cfg.Session.TTL)
		if err := stores.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		return stores, nil
	default:
		return memory.NewCredentialStore(), nil
	}
}

func closeAll(ctx context.Context, log zerolog.Logger, closers []func(context.Context) error) {
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](ctx); err != nil {
			log.Warn().Err(err).Msg("close dependency")
		}
	}
}

func randomSecret() []byte {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("generate session secret: " + err.Error())
	}
	return []byte(hex.EncodeToString(b))
}
