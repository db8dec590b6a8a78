package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/DanielPopoola/beanstream-payments/internal/application"
	"github.com/DanielPopoola/beanstream-payments/internal/config"
	"github.com/DanielPopoola/beanstream-payments/internal/infrastructure/codec"
	"github.com/DanielPopoola/beanstream-payments/internal/infrastructure/endpoints"
	"github.com/DanielPopoola/beanstream-payments/internal/infrastructure/persistence/postgres"
	"github.com/DanielPopoola/beanstream-payments/internal/infrastructure/transport"
)

const usage = `usage: beanstream <charge|preauth|complete|void|return|get> [flags]

Configuration is read from BEANSTREAM_* environment variables or a .env file.
Run "beanstream <command> -h" for the flags of a command.`

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		return 2
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return 1
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	merchant := cfg.Merchant.Configuration()

	httpTransport := transport.NewHTTPTransport(merchant, cfg.Gateway, logger)
	retryTransport := transport.NewRetryTransport(httpTransport, cfg.Retry, logger)
	resolver := endpoints.NewResolver(cfg.Gateway.BaseURL, merchant.Platform, merchant.Version)

	client := application.NewPaymentsClient(merchant, retryTransport, codec.NewJSON(), resolver, logger)

	cli := &CLI{
		client: client,
		out:    os.Stdout,
		logger: logger,
	}

	if cfg.Database.Enabled {
		db, err := postgres.Connect(ctx, &cfg.Database, logger)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			return 1
		}
		defer db.Close()

		journal := postgres.NewJournal(db.Pool)
		if err := journal.Migrate(ctx); err != nil {
			logger.Error("failed to prepare journal", "error", err)
			return 1
		}
		cli.journal = journal
	}

	if err := cli.Run(ctx, os.Args[1], os.Args[2:]); err != nil {
		cli.printError(err)
		return 1
	}

	return 0
}
