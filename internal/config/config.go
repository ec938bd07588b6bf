package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	SmilePay  SmilePayConfig
	Webhook   WebhookConfig
	Payment   PaymentConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

// SmilePayConfig holds the gateway merchant credentials and endpoints
type SmilePayConfig struct {
	Dcvc          string
	Rvg2c         string
	VerifyKey     string
	MerchantParam string // four-digit callback verification parameter
	OdSobPrefix   string
	SelfURL       string
	APIURL        string
}

// WebhookConfig holds the downstream paid-invoice notification endpoint
type WebhookConfig struct {
	URL    string
	APIKey string
}

// PaymentConfig holds merchant-side payment settings: the customer-facing
// payment page and the per-method gateway fee schedule in minor units.
type PaymentConfig struct {
	PageURL             string
	FeeConvenienceStore int64
	FeeWebATM           int64
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "smilepay-adapter-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "smilepay")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Asia/Taipei")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("SMILEPAY_API_URL", "https://ssl.smse.com.tw/api/SPPayment.asp")
	viper.SetDefault("OD_SOB_PREFIX", "")
	viper.SetDefault("SELF_URL", "http://localhost:8080")
	viper.SetDefault("PAYMENT_PAGE_URL", "http://localhost:3000/pay")
	viper.SetDefault("FEE_CONVENIENCE_STORE", 35)
	viper.SetDefault("FEE_WEBATM", 13)

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		SmilePay: SmilePayConfig{
			Dcvc:          viper.GetString("SMILEPAY_DCVC"),
			Rvg2c:         viper.GetString("SMILEPAY_RVG2C"),
			VerifyKey:     viper.GetString("SMILEPAY_VERIFY_KEY"),
			MerchantParam: viper.GetString("SMILEPAY_MERCHANT_PARAM"),
			OdSobPrefix:   viper.GetString("OD_SOB_PREFIX"),
			SelfURL:       viper.GetString("SELF_URL"),
			APIURL:        viper.GetString("SMILEPAY_API_URL"),
		},
		Webhook: WebhookConfig{
			URL:    viper.GetString("WEBHOOK_URL"),
			APIKey: viper.GetString("WEBHOOK_API_KEY"),
		},
		Payment: PaymentConfig{
			PageURL:             viper.GetString("PAYMENT_PAGE_URL"),
			FeeConvenienceStore: viper.GetInt64("FEE_CONVENIENCE_STORE"),
			FeeWebATM:           viper.GetInt64("FEE_WEBATM"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
