package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"farmacia/internal/api"
	"farmacia/internal/auth"
	"farmacia/internal/cli"
	"farmacia/internal/localdb"
	"farmacia/internal/report"
	"farmacia/internal/sales/reader"
	"farmacia/internal/sales/service"
	"farmacia/internal/sales/writer"
)

type Config struct {
	APIURL string `env:"FARMACIA_API_URL" envDefault:"http://localhost:8080/api"`

	DBPath string `env:"FARMACIA_DB_PATH" envDefault:"farmacia.db"`

	HTTPTimeout time.Duration `env:"FARMACIA_HTTP_TIMEOUT" envDefault:"30s"`

	Debug bool `env:"FARMACIA_DEBUG" envDefault:"false"`
}

func main() {
	cfg, err := getConfig()
	if err != nil {
		log.Fatalf("unable to get config: %s", err)
	}

	logger, err := getLogger(cfg.Debug)
	if err != nil {
		log.Fatalf("unable to initialize logger: %s", err)
	}
	defer logger.Sync()

	db, err := localdb.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("unable to open local database: %s", err)
	}
	defer db.Close()

	app, err := getApp(cfg, logger, db)
	if err != nil {
		log.Fatalf("unable to initialize app: %s", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "erro:", err)
		if cli.IsUnauthorized(err) {
			fmt.Fprintln(os.Stderr, "faça login novamente: farmacia login -u <usuario> -p <senha>")
		}

		var flagErr cli.Error
		if errors.As(err, &flagErr) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func getConfig() (*Config, error) {
	// a missing .env file is fine, the environment may carry everything
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func getLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment(
			zap.WithCaller(true),
		)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	zc.OutputPaths = []string{"stderr"}

	return zc.Build()
}

func getApp(cfg *Config, logger *zap.Logger, db *sqlx.DB) (*cli.App, error) {
	store, err := auth.NewStore(db)
	if err != nil {
		return nil, err
	}

	token, err := store.Load()
	if err != nil {
		return nil, err
	}
	session := auth.NewSession(token)

	client, err := api.NewClient(logger, cfg.APIURL, session, &http.Client{Timeout: cfg.HTTPTimeout})
	if err != nil {
		return nil, err
	}

	manager, err := auth.NewManager(logger, client, session, store)
	if err != nil {
		return nil, err
	}

	r, err := reader.NewService(logger, db)
	if err != nil {
		return nil, err
	}

	w, err := writer.NewService(logger, db)
	if err != nil {
		return nil, err
	}

	svc, err := service.NewService(logger, r, w, client)
	if err != nil {
		return nil, err
	}

	loader, err := report.NewLoader(logger, client)
	if err != nil {
		return nil, err
	}

	return cli.NewApp(logger, os.Stdout, manager, client, svc, loader)
}
