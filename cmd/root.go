package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/lucasmbr/deliverydash/internal/models"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "deliverydash",
	Short: "Order analytics and operations backend for food delivery stores",
	Long: `deliverydash keeps a food delivery store's order lifecycle, derives the
financial and operational dashboards from it, optimises courier routes and
streams order events to Kafka or files.`,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.json)")

	rootCmd.PersistentFlags().Float64("store-latitude", -23.5505, "Store latitude, origin for sectors and routes")
	rootCmd.PersistentFlags().Float64("store-longitude", -46.6333, "Store longitude")
	rootCmd.PersistentFlags().String("database-url", "", "Postgres connection string")
	rootCmd.PersistentFlags().Bool("kafka-enabled", false, "Enable Kafka event output")
	rootCmd.PersistentFlags().String("kafka-broker-list", "localhost:9092", "Kafka broker list")
	rootCmd.PersistentFlags().String("output-path", "", "Event/report output directory (if not using Kafka)")

	viper.BindPFlag("store_latitude", rootCmd.PersistentFlags().Lookup("store-latitude"))
	viper.BindPFlag("store_longitude", rootCmd.PersistentFlags().Lookup("store-longitude"))
	viper.BindPFlag("database_url", rootCmd.PersistentFlags().Lookup("database-url"))
	viper.BindPFlag("kafka_enabled", rootCmd.PersistentFlags().Lookup("kafka-enabled"))
	viper.BindPFlag("kafka_broker_list", rootCmd.PersistentFlags().Lookup("kafka-broker-list"))
	viper.BindPFlag("output_path", rootCmd.PersistentFlags().Lookup("output-path"))
}

func initConfig() {
	// .env first so viper's AutomaticEnv sees it
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
	viper.AutomaticEnv()
}

func loadConfig() *models.Config {
	cfg, err := models.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func newLogger() *zap.Logger {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
