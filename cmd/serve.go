package cmd

import (
	"context"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lucasmbr/deliverydash/internal/analytics"
	"github.com/lucasmbr/deliverydash/internal/export"
	"github.com/lucasmbr/deliverydash/internal/geo"
	"github.com/lucasmbr/deliverydash/internal/repositories/postgres"
	"github.com/lucasmbr/deliverydash/internal/server"
	"github.com/lucasmbr/deliverydash/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and event publisher",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		logger := newLogger()
		defer logger.Sync()

		orders := store.NewOrderStore()
		ctx := context.Background()

		if cfg.DatabaseURL != "" {
			pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()

			repo := postgres.NewOrderRepository(pool)
			persisted, err := repo.GetAll(ctx)
			if err != nil {
				return err
			}
			for _, order := range persisted {
				if err := orders.Add(order); err != nil {
					logger.Warn("skipping persisted order", zap.String("order_id", order.ID), zap.Error(err))
				}
			}
			logger.Info("loaded orders from postgres", zap.Int("count", len(persisted)))
		}

		output, err := export.DetermineOutputDestination(cfg, logger)
		if err != nil {
			return err
		}
		defer output.Close()

		// event publishing rides on store subscription, no polling
		publisher := export.NewPublisher(output, cfg.StoreLocation(), logger)
		changes := orders.Subscribe()
		go publisher.Run(ctx, orders, changes)

		// promote scheduled orders as their time arrives
		go func() {
			ticker := time.NewTicker(time.Minute)
			defer ticker.Stop()
			for range ticker.C {
				for _, id := range orders.PromoteDue(time.Now()) {
					logger.Info("scheduled order activated", zap.String("order_id", id))
				}
			}
		}()

		analyzer := analytics.NewAnalyzer(cfg.StoreLocation(), rand.New(rand.NewSource(time.Now().UnixNano())))
		geocoder := geo.NewNominatimGeocoder(cfg.GeocoderBaseURL, cfg.GeocoderTimeout)

		srv := server.New(cfg, orders, analyzer, geocoder, logger)
		return srv.Run()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
