package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mnemo-app/mnemo/internal/config"
	"github.com/mnemo-app/mnemo/internal/engine"
	"github.com/mnemo-app/mnemo/internal/server"
	"github.com/mnemo-app/mnemo/internal/srs"
	"github.com/mnemo-app/mnemo/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func newLogger(lc config.LogConfig) (*zap.SugaredLogger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if lc.Mode == "prod" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return l.Sugar(), nil
}

// openEngine wires config, store, and scheduler into a ready engine.
// The caller owns the returned DB handle.
func openEngine(cfg config.Config, log *zap.SugaredLogger) (*engine.Engine, *store.DB, error) {
	dbPath := cfg.Database.Path
	if dbPath == "" {
		var err error
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return nil, nil, fmt.Errorf("resolve db path: %w", err)
		}
	}

	db, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	eng := engine.New(db, srs.NewScheduler(cfg.SRS), log, cfg.Plan)
	return eng, db, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	log, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync()

	eng, db, err := openEngine(cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := eng.StartMaintenance(); err != nil {
		return err
	}
	defer eng.Stop()

	srv := server.New(eng, log, VersionString())
	addr := cfg.ListenAddr()

	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Infow("mnemo serving", "addr", addr, "db", db.Path)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorw("server error", "err", err)
			os.Exit(1)
		}
	}()

	<-done
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return httpServer.Shutdown(ctx)
}
