package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/whitmore-labs/skylark/internal/adapters/openweather"
	"github.com/whitmore-labs/skylark/internal/adapters/rest"
	"github.com/whitmore-labs/skylark/internal/adapters/spotify"
	"github.com/whitmore-labs/skylark/internal/adapters/sqlite"
	"github.com/whitmore-labs/skylark/internal/config"
	"github.com/whitmore-labs/skylark/internal/core/services"
	"github.com/whitmore-labs/skylark/internal/worker"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		log = log.Level(level)
	}

	repo, err := sqlite.NewAdapter(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer repo.Close()

	httpClient := &http.Client{Timeout: 15 * time.Second}

	weatherClient := openweather.NewClient(httpClient, cfg.OpenWeather.BaseURL, cfg.OpenWeather.APIKey,
		log.With().Str("component", "openweather").Logger())
	spotifyClient := spotify.NewClient(httpClient, cfg.Spotify.BaseURL,
		log.With().Str("component", "spotify").Logger())
	refresher := spotify.NewRefresher(cfg.Spotify.ClientID, cfg.Spotify.ClientSecret, cfg.Spotify.TokenURL)

	pool := worker.NewPool(repo, cfg.Worker.QueueSize, log.With().Str("component", "worker").Logger())
	pool.Start(cfg.Worker.Count)
	defer pool.Stop()

	svc := services.NewRecommender(
		weatherClient,
		spotifyClient,
		spotifyClient,
		spotifyClient,
		refresher,
		repo,
		pool,
		log.With().Str("component", "recommender").Logger(),
	)

	handler := rest.NewHandler(svc, cfg.Spotify.RefreshToken, log.With().Str("component", "rest").Logger())

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	log.Info().Str("addr", cfg.ListenAddr).Msg("skylark api listening")

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Fatal().Err(err).Msg("server error")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("shutdown error")
		}
	}
}
