package models

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Timing fallback constants. Several stage metrics blend measured data with
// assumed values when an order is missing stage timestamps; keeping the
// assumptions named here lets tests assert on them directly.
const (
	DefaultAcceptMinutes = 5.0
	DefaultPrepMinutes   = 15.0
	PrepShareOfDispatch  = 0.8

	FastDispatchMinutes = 10.0
	SlowDispatchMinutes = 20.0
	OnTimeMinutes       = 45.0
	CourierBagCapacity  = 6

	PointValue         = 0.05 // currency value of one loyalty point
	PaidExactTolerance = 0.01 // sub-cent differences count as exact payment
)

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	BucketName string `mapstructure:"bucket_name"`
	Region     string `mapstructure:"region"`
}

type Config struct {
	StoreName string  `mapstructure:"store_name"`
	StoreLat  float64 `mapstructure:"store_latitude"`
	StoreLng  float64 `mapstructure:"store_longitude"`

	ServerAddr  string `mapstructure:"server_addr"`
	DatabaseURL string `mapstructure:"database_url"`

	KafkaEnabled    bool   `mapstructure:"kafka_enabled"`
	KafkaBrokerList string `mapstructure:"kafka_broker_list"`

	OutputPath        string             `mapstructure:"output_path"`
	OutputFolder      string             `mapstructure:"output_folder"`
	OutputFormat      string             `mapstructure:"output_format"`
	OutputDestination string             `mapstructure:"output_destination"`
	CloudStorage      CloudStorageConfig `mapstructure:"cloud_storage"`

	GeocoderBaseURL string        `mapstructure:"geocoder_base_url"`
	GeocoderTimeout time.Duration `mapstructure:"geocoder_timeout"`

	Seed       int64   `mapstructure:"seed"`
	SeedOrders int     `mapstructure:"seed_orders"`
	SeedDays   int     `mapstructure:"seed_days"`
	ServiceFee float64 `mapstructure:"service_fee_percentage"`
	BaseFee    float64 `mapstructure:"base_delivery_fee"`
}

// StoreLocation returns the configured store coordinate, the origin for
// sector classification and route optimisation.
func (cfg *Config) StoreLocation() Location {
	return Location{Lat: cfg.StoreLat, Lng: cfg.StoreLng}
}

// LoadConfig initialises and reads the configuration using Viper
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("examples")
		viper.SetConfigName("config")
		viper.SetConfigType("json")
	}

	viper.AutomaticEnv()

	viper.SetDefault("store_name", "deliverydash")
	// Praça da Sé, São Paulo
	viper.SetDefault("store_latitude", -23.5505)
	viper.SetDefault("store_longitude", -46.6333)
	viper.SetDefault("server_addr", ":8080")
	viper.SetDefault("output_format", "json")
	viper.SetDefault("output_destination", "local")
	viper.SetDefault("geocoder_base_url", "https://nominatim.openstreetmap.org")
	viper.SetDefault("geocoder_timeout", 10*time.Second)
	viper.SetDefault("seed_orders", 500)
	viper.SetDefault("seed_days", 30)
	viper.SetDefault("service_fee_percentage", 0.1)
	viper.SetDefault("base_delivery_fee", 8.0)

	if err := viper.ReadInConfig(); err != nil {
		// a missing config file is fine, defaults and env cover it
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	return &config, nil
}
