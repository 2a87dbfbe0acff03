package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/bursary-portal/achievements"
	"github.com/jrsteele09/bursary-portal/bursaryapi"
	"github.com/jrsteele09/bursary-portal/internal/config"
	"github.com/jrsteele09/bursary-portal/server"
	"github.com/jrsteele09/bursary-portal/storage"
	"github.com/jrsteele09/bursary-portal/storage/cookiestore"
	"github.com/jrsteele09/bursary-portal/storage/redisstore"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Error running server")
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	c, err := config.New()
	if err != nil {
		return err
	}
	setupLogging(c.GetEnv())
	displayAppname(c.GetAppName())

	provider, closeStorage, err := newStorageProvider(c)
	if err != nil {
		return err
	}
	defer closeStorage()

	api := bursaryapi.New(c.GetAPIBaseURL(), c.GetAPITimeout())
	s, err := server.New(c, provider, api, achievements.NewMemoryRepo(achievements.Defaults()...))
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              c.GetPort(),
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() { serveErr <- listenAndServe(httpServer) }()

	select {
	case err := <-serveErr:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(httpServer)
}

func setupLogging(env string) {
	zerolog.TimeFieldFormat = time.RFC3339
	if env == "DEV" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// newStorageProvider builds the browser storage backend chosen in config.
func newStorageProvider(c config.Config) (storage.Provider, func(), error) {
	switch c.GetStorageBackend() {
	case config.StorageRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     c.GetRedisAddr(),
			Password: c.GetRedisPassword(),
			DB:       c.GetRedisDB(),
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis ping %s: %w", c.GetRedisAddr(), err)
		}
		log.Info().Str("addr", c.GetRedisAddr()).Msg("storing sessions in redis")
		provider := redisstore.New(client, redisstore.Options{
			TTL:    c.GetSessionMaxAge(),
			Secure: c.GetSecureCookies(),
		})
		return provider, func() { _ = client.Close() }, nil

	case config.StorageCookie:
		sealer, err := cookiestore.NewSealer(c.GetCookieSecret())
		if err != nil {
			return nil, nil, err
		}
		log.Info().Msg("storing sessions in sealed cookies")
		provider := cookiestore.New(sealer, cookiestore.Options{
			Prefix: c.GetCookiePrefix(),
			MaxAge: c.GetSessionMaxAge(),
			Secure: c.GetSecureCookies(),
		})
		return provider, func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", c.GetStorageBackend())
	}
}

func listenAndServe(server *http.Server) error {
	log.Info().Msgf("Server listening on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
