// backend-go/internal/config/config.go
package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Dataset  DatasetConfig
	Forecast ForecastConfig
	Cache    CacheConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

// DatabaseConfig is used only when the dataset source is postgres;
// tables are read once at startup and never written.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DatasetConfig locates the four input tables: retail sales, the two
// edge tables and the stock closing snapshot.
type DatasetConfig struct {
	Source              string // "csv" or "postgres"
	Dir                 string
	SalesFile           string
	DepotEdgesFile      string
	DistilleryEdgesFile string
	StockFile           string

	FetchFromBucket bool
	BucketEndpoint  string
	BucketAccessKey string
	BucketSecretKey string
	BucketName      string
	BucketRegion    string
	BucketPrefix    string
	BucketUseSSL    bool
}

type ForecastConfig struct {
	DefaultLookbackMonths int
	WorkerCount           int
	RequestTimeoutSeconds int
}

type CacheConfig struct {
	Enabled       bool
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	TTLSeconds    int
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("SERVER_PORT", "5001")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 30)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 60)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "liquor")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("DATASET_SOURCE", "csv")
		viper.SetDefault("DATASET_DIR", "./data")
		viper.SetDefault("DATASET_SALES_FILE", "poc_retail.csv")
		viper.SetDefault("DATASET_DEPOT_EDGES_FILE", "poc_wholesale.csv")
		viper.SetDefault("DATASET_DISTILLERY_EDGES_FILE", "poc_distillery.csv")
		viper.SetDefault("DATASET_STOCK_FILE", "poc_stock_closing.csv")
		viper.SetDefault("DATASET_FETCH_FROM_BUCKET", false)
		viper.SetDefault("BUCKET_ENDPOINT", "")
		viper.SetDefault("BUCKET_ACCESS_KEY", "")
		viper.SetDefault("BUCKET_SECRET_KEY", "")
		viper.SetDefault("BUCKET_NAME", "")
		viper.SetDefault("BUCKET_REGION", "us-east-1")
		viper.SetDefault("BUCKET_PREFIX", "")
		viper.SetDefault("BUCKET_USE_SSL", true)
		viper.SetDefault("FORECAST_DEFAULT_LOOKBACK_MONTHS", 2)
		viper.SetDefault("FORECAST_WORKER_COUNT", 4)
		viper.SetDefault("FORECAST_REQUEST_TIMEOUT_SECONDS", 30)
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_TTL_SECONDS", 60)

		// Read from environment variables
		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Dataset: DatasetConfig{
				Source:              viper.GetString("DATASET_SOURCE"),
				Dir:                 viper.GetString("DATASET_DIR"),
				SalesFile:           viper.GetString("DATASET_SALES_FILE"),
				DepotEdgesFile:      viper.GetString("DATASET_DEPOT_EDGES_FILE"),
				DistilleryEdgesFile: viper.GetString("DATASET_DISTILLERY_EDGES_FILE"),
				StockFile:           viper.GetString("DATASET_STOCK_FILE"),
				FetchFromBucket:     viper.GetBool("DATASET_FETCH_FROM_BUCKET"),
				BucketEndpoint:      viper.GetString("BUCKET_ENDPOINT"),
				BucketAccessKey:     viper.GetString("BUCKET_ACCESS_KEY"),
				BucketSecretKey:     viper.GetString("BUCKET_SECRET_KEY"),
				BucketName:          viper.GetString("BUCKET_NAME"),
				BucketRegion:        viper.GetString("BUCKET_REGION"),
				BucketPrefix:        viper.GetString("BUCKET_PREFIX"),
				BucketUseSSL:        viper.GetBool("BUCKET_USE_SSL"),
			},
			Forecast: ForecastConfig{
				DefaultLookbackMonths: viper.GetInt("FORECAST_DEFAULT_LOOKBACK_MONTHS"),
				WorkerCount:           viper.GetInt("FORECAST_WORKER_COUNT"),
				RequestTimeoutSeconds: viper.GetInt("FORECAST_REQUEST_TIMEOUT_SECONDS"),
			},
			Cache: CacheConfig{
				Enabled:       viper.GetBool("CACHE_ENABLED"),
				RedisURL:      viper.GetString("REDIS_URL"),
				RedisHost:     viper.GetString("REDIS_HOST"),
				RedisPort:     viper.GetString("REDIS_PORT"),
				RedisPassword: viper.GetString("REDIS_PASSWORD"),
				RedisDB:       viper.GetInt("REDIS_DB"),
				TTLSeconds:    viper.GetInt("CACHE_TTL_SECONDS"),
			},
		}
	})

	return instance
}
