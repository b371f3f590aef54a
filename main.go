package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/hoshinonyaruko/block-in-im/api"
	"github.com/hoshinonyaruko/block-in-im/catalog"
	"github.com/hoshinonyaruko/block-in-im/config"
	"github.com/hoshinonyaruko/block-in-im/sqlite"
)

func main() {
	_ = godotenv.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run(ctx context.Context) error {
	cfg, err := config.LoadConfig("./config.json")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	logger := log.Logger

	if err := EnsureFoldersExist(cfg.CatalogDir, cfg.StaticDir); err != nil {
		return err
	}

	// 载入方块模板, 文件变化时热更新
	blocks := catalog.New(cfg.CatalogDir, logger.With().Str("component", "catalog").Logger())
	if err := blocks.Load(); err != nil {
		return fmt.Errorf("loading blocks: %w", err)
	}

	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening sqlite: %w", err)
	}
	defer db.Close()

	gin.SetMode(gin.ReleaseMode)
	srv := api.New(cfg, db, blocks, logger.With().Str("component", "api").Logger())
	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("port", cfg.Port).Msg("starting block-in-im")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return blocks.Watch(gctx)
	})
	return g.Wait()
}

// EnsureFoldersExist 检查并创建必需的文件夹
func EnsureFoldersExist(folders ...string) error {
	for _, folder := range folders {
		if _, err := os.Stat(folder); errors.Is(err, os.ErrNotExist) {
			if err := os.MkdirAll(folder, 0755); err != nil {
				return fmt.Errorf("create %s directory: %w", folder, err)
			}
			log.Info().Str("dir", folder).Msg("created directory")
		}
	}
	return nil
}
