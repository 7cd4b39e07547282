package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lucasmbr/deliverydash/internal/factories"
	"github.com/lucasmbr/deliverydash/internal/models"
	"github.com/lucasmbr/deliverydash/internal/repositories/postgres"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate demo order history into Postgres or a JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		factory := factories.NewOrderFactory(cfg.StoreLocation(), cfg.Seed)
		orders := factory.CreateBatch(cfg.SeedOrders, cfg.SeedDays, time.Now())

		if cfg.DatabaseURL != "" {
			return seedPostgres(cfg, orders)
		}
		return seedFile(cfg, orders)
	},
}

func seedPostgres(cfg *models.Config, orders []models.Order) error {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	repo := postgres.NewOrderRepository(pool)

	bar := progressbar.Default(int64(len(orders)), "seeding orders")
	const batchSize = 50
	for i := 0; i < len(orders); i += batchSize {
		end := i + batchSize
		if end > len(orders) {
			end = len(orders)
		}
		if err := repo.BulkCreate(ctx, orders[i:end]); err != nil {
			return fmt.Errorf("failed to insert batch starting at %d: %w", i, err)
		}
		bar.Add(end - i)
	}
	return nil
}

func seedFile(cfg *models.Config, orders []models.Order) error {
	path := cfg.OutputPath
	if path == "" {
		path = "."
	}
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		return err
	}

	file, err := os.Create(filepath.Join(path, "orders.json"))
	if err != nil {
		return err
	}
	defer file.Close()

	bar := progressbar.Default(int64(len(orders)), "writing orders")
	encoder := json.NewEncoder(file)
	for _, order := range orders {
		if err := encoder.Encode(order); err != nil {
			return err
		}
		bar.Add(1)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
