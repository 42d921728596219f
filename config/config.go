package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/DikshantJo/ZwitchNew-sub000/gateway"
)

// Config holds all configuration for the application
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	Port       string
	Env        string

	RazorpayKeyID         string
	RazorpayKeySecret     string
	RazorpayWebhookSecret string
	RazorpaySandbox       bool
	AcceptedCurrencies    []string
	MinOrderAmount        float64
	MaxOrderAmount        float64
	GatewayTimeoutSeconds int64
}

// LoadConfig loads configuration from environment variables. A .env file is
// honored when present but not required.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		Port:       os.Getenv("PORT"),
		Env:        os.Getenv("ENV"),

		RazorpayKeyID:         os.Getenv("RAZORPAY_KEY"),
		RazorpayKeySecret:     os.Getenv("RAZORPAY_SECRET"),
		RazorpayWebhookSecret: os.Getenv("RAZORPAY_WEBHOOK_SECRET"),
		RazorpaySandbox:       parseBool(os.Getenv("RAZORPAY_SANDBOX")),
		AcceptedCurrencies:    gateway.ParseCurrencyList(os.Getenv("ACCEPTED_CURRENCIES")),
		MinOrderAmount:        parseFloat(os.Getenv("MIN_ORDER_AMOUNT")),
		MaxOrderAmount:        parseFloat(os.Getenv("MAX_ORDER_AMOUNT")),
		GatewayTimeoutSeconds: parseInt(os.Getenv("GATEWAY_TIMEOUT_SECONDS"), 15),
	}

	if config.Port == "" {
		config.Port = "8080"
	}
	return config, nil
}

// GatewayConfig builds the injected configuration the payment client and
// webhook reconciler depend on, so neither ever reads the environment.
func (c *Config) GatewayConfig() gateway.Config {
	return gateway.Config{
		KeyID:              c.RazorpayKeyID,
		KeySecret:          c.RazorpayKeySecret,
		WebhookSecret:      c.RazorpayWebhookSecret,
		Sandbox:            c.RazorpaySandbox,
		AcceptedCurrencies: c.AcceptedCurrencies,
		MinOrderAmount:     c.MinOrderAmount,
		MaxOrderAmount:     c.MaxOrderAmount,
		TimeoutSeconds:     c.GatewayTimeoutSeconds,
	}
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func parseInt(s string, def int64) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
