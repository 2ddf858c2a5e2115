package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress         string
	DatabaseURI        string
	MidtransServerKey  string
	MidtransProduction bool
	GatewayStatusURL   string
	AMQPAddress        string
	EventExchange      string
	SessionSecret      string
	PollInterval       time.Duration
	PollMaxAttempts    int
	HintDebounce       time.Duration
	ReconcileInterval  time.Duration
	ReconcileBatch     int
	WorkerPoolSize     int
	ShutdownTimeout    time.Duration
}

const (
	defaultRunAddress        = ":8080"
	defaultSessionSecret     = "change-me-in-production"
	defaultEventExchange     = "paymentd.events"
	defaultPollInterval      = 2 * time.Second
	defaultPollMaxAttempts   = 30
	defaultHintDebounce      = 300 * time.Millisecond
	defaultReconcileInterval = 30 * time.Second
	defaultReconcileBatch    = 32
	defaultWorkerPoolSize    = 4
	defaultShutdownTimeout   = 10 * time.Second
)

// Load parses configuration from .env file, environment variables and flags.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:         getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:        getString(lookup, "DATABASE_URI", ""),
		MidtransServerKey:  getString(lookup, "MIDTRANS_SERVER_KEY", ""),
		MidtransProduction: getBool(lookup, "MIDTRANS_PRODUCTION", false),
		GatewayStatusURL:   getString(lookup, "GATEWAY_STATUS_URL", ""),
		AMQPAddress:        getString(lookup, "AMQP_ADDRESS", ""),
		EventExchange:      getString(lookup, "EVENT_EXCHANGE", defaultEventExchange),
		SessionSecret:      getString(lookup, "SESSION_SECRET", defaultSessionSecret),
		PollInterval:       getDuration(lookup, "POLL_INTERVAL", defaultPollInterval),
		PollMaxAttempts:    getInt(lookup, "POLL_MAX_ATTEMPTS", defaultPollMaxAttempts),
		HintDebounce:       getDuration(lookup, "HINT_DEBOUNCE", defaultHintDebounce),
		ReconcileInterval:  getDuration(lookup, "RECONCILE_INTERVAL", defaultReconcileInterval),
		ReconcileBatch:     getInt(lookup, "RECONCILE_BATCH", defaultReconcileBatch),
		WorkerPoolSize:     getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:    getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("paymentd", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pollIntervalStr      = cfg.PollInterval.String()
		hintDebounceStr      = cfg.HintDebounce.String()
		reconcileIntervalStr = cfg.ReconcileInterval.String()
		shutdownTimeoutStr   = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.MidtransServerKey, "midtrans-key", cfg.MidtransServerKey, "Midtrans server key")
	fs.BoolVar(&cfg.MidtransProduction, "midtrans-production", cfg.MidtransProduction, "Use Midtrans production environment")
	fs.StringVar(&cfg.GatewayStatusURL, "gateway-status-url", cfg.GatewayStatusURL, "Base URL of the gateway transaction status API")
	fs.StringVar(&cfg.AMQPAddress, "amqp", cfg.AMQPAddress, "AMQP broker URL for payment events (optional)")
	fs.StringVar(&cfg.EventExchange, "event-exchange", cfg.EventExchange, "AMQP exchange for payment events")
	fs.StringVar(&cfg.SessionSecret, "session-secret", cfg.SessionSecret, "Secret for signing session tokens")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between status poll attempts")
	fs.IntVar(&cfg.PollMaxAttempts, "poll-max-attempts", cfg.PollMaxAttempts, "Maximum status poll attempts per checkout")
	fs.StringVar(&hintDebounceStr, "hint-debounce", hintDebounceStr, "Debounce window for payment page URL events")
	fs.StringVar(&reconcileIntervalStr, "reconcile-interval", reconcileIntervalStr, "Interval between stale order sweeps")
	fs.IntVar(&cfg.ReconcileBatch, "reconcile-batch", cfg.ReconcileBatch, "Maximum orders per reconcile sweep")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent reconcile workers")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.PollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.HintDebounce, err = time.ParseDuration(hintDebounceStr); err != nil {
		return nil, fmt.Errorf("invalid hint debounce: %w", err)
	}

	if cfg.ReconcileInterval, err = time.ParseDuration(reconcileIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid reconcile interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("SESSION_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read session secret file: %w", err)
		}
		cfg.SessionSecret = string(content)
	}

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}

	if cfg.PollMaxAttempts <= 0 {
		cfg.PollMaxAttempts = defaultPollMaxAttempts
	}

	if cfg.HintDebounce <= 0 {
		cfg.HintDebounce = defaultHintDebounce
	}

	if cfg.ReconcileInterval <= 0 {
		cfg.ReconcileInterval = defaultReconcileInterval
	}

	if cfg.ReconcileBatch <= 0 {
		cfg.ReconcileBatch = defaultReconcileBatch
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.MidtransServerKey == "" {
		return nil, fmt.Errorf("midtrans server key must be provided")
	}

	if cfg.GatewayStatusURL == "" {
		return nil, fmt.Errorf("gateway status URL must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
