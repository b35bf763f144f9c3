package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/hinkal-protocol/batch-node/chains"
	"github.com/hinkal-protocol/batch-node/client"
	"github.com/hinkal-protocol/batch-node/config"
	"github.com/hinkal-protocol/batch-node/core"
	"github.com/hinkal-protocol/batch-node/core/oracle"
	"github.com/hinkal-protocol/batch-node/database"
	"github.com/hinkal-protocol/batch-node/logger"
	"github.com/hinkal-protocol/batch-node/network"
)

func getDatabase(cfg *config.Config) (database.Database, error) {
	if cfg.DbHost == "" && !cfg.InMemory {
		return database.NewNoopDb(), nil
	}

	db := database.NewDb(cfg)
	if err := db.Init(); err != nil {
		return nil, err
	}

	return db, nil
}

func run() error {
	// A missing .env file is fine, environment variables may come from the
	// shell directly.
	godotenv.Load()

	cfgPath := os.Getenv("BATCH_CONFIG")
	if cfgPath == "" {
		cfgPath = "batch.toml"
	}

	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		if err := config.WriteSample(cfgPath); err != nil {
			return fmt.Errorf("cannot write starter config %s: %w", cfgPath, err)
		}

		return fmt.Errorf("no config found, wrote a starter config to %s. Edit it and rerun", cfgPath)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	err = logger.Init(
		logger.WithLevel(cfg.LogLevel),
		logger.WithSuppressed(cfg.SuppressedLogs),
	)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	defer logger.Sync()

	db, err := getDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize journal database: %w", err)
	}

	priceManager := oracle.NewTokenPriceManager(cfg.PriceProviders, network.NewHttp())
	converter := core.NewAmountConverter(cfg, priceManager)

	loader := core.NewBatchLoader(cfg, converter)
	input, err := loader.LoadFile(cfg.TransactionsFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	pool := chains.NewConnectionPool(cfg, client.NewWalletFactory(cfg))
	runner := core.NewBatchRunner(cfg, pool, chains.NewDispatcher(cfg), db)

	result := runner.Run(context.Background(), input)
	if !result.Success {
		if result.FailedTransactionId != "" {
			return fmt.Errorf("batch job %s failed at transaction %s: %s",
				result.JobId, result.FailedTransactionId, result.Error)
		}

		return fmt.Errorf("batch job %s failed: %s", result.JobId, result.Error)
	}

	logger.Infof("Batch job %s finished: %d/%d transaction(s) completed",
		result.JobId, result.CompletedTransactions, result.TotalTransactions)

	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
