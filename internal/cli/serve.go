package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/filmoteca/filmoteca/internal/api"
	"github.com/filmoteca/filmoteca/internal/config"
	"github.com/filmoteca/filmoteca/internal/movies"
	"github.com/filmoteca/filmoteca/internal/platform/logger"
	"github.com/filmoteca/filmoteca/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "override the configured HTTP port")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.New("filmoteca")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}
	if servePort != 0 {
		cfg.HTTPPort = servePort
	}

	// Bootstrap an empty document once at startup. Per-request reads still
	// treat a missing file as a storage error.
	if cfg.StoreBackend == store.BackendJSON {
		if err := store.EnsureJSONDocument(cfg.DataPath); err != nil {
			log.Error().Err(err).Str("path", cfg.DataPath).Msg("Failed to prepare data file")
			return err
		}
	}

	st, err := store.New(cfg.StoreBackend, cfg.DataPath)
	if err != nil {
		log.Error().Err(err).Msg("Store unavailable")
		return err
	}
	defer func() { _ = st.Close() }()

	svc := movies.NewService(st)
	router := api.NewRouter(svc, st)

	server := &http.Server{
		Addr:         cfg.GetHTTPAddr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		return err
	}
	log.Info().Msg("Server exited")
	return nil
}
