package config

import (
	"bank_ledger/internal/domain"
	"bank_ledger/pkg/validator"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	LogLevel    slog.Level
	LogFormat   string
	MetricsAddr string
	Currency    string
	// CheckingPolicy is applied to accounts opened from the shell.
	CheckingPolicy domain.DebitPolicy
}

// Load reads an optional .env file and then the process environment.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil {
		slog.Debug("No .env file loaded, relying on environment variables")
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	format := strings.ToLower(getEnv("LOG_FORMAT", "json"))
	if format != "json" && format != "text" {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: want json or text", format)
	}

	maxDebit, err := decimal.NewFromString(getEnv("CHECKING_DEBIT_LIMIT", strconv.Itoa(domain.DefaultCheckingDebitLimit)))
	if err != nil {
		return nil, fmt.Errorf("invalid CHECKING_DEBIT_LIMIT: %w", err)
	}
	if !maxDebit.IsPositive() {
		return nil, fmt.Errorf("invalid CHECKING_DEBIT_LIMIT: %s must be positive", maxDebit)
	}

	maxDaily, err := strconv.Atoi(getEnv("CHECKING_DAILY_DEBITS", strconv.Itoa(domain.DefaultCheckingDailyDebits)))
	if err != nil {
		return nil, fmt.Errorf("invalid CHECKING_DAILY_DEBITS: %w", err)
	}
	if maxDaily < 0 {
		return nil, fmt.Errorf("invalid CHECKING_DAILY_DEBITS: %d is negative", maxDaily)
	}

	currency := strings.ToUpper(getEnv("CURRENCY", "BRL"))
	if err := validator.NewRegistrationValidator().ValidateCurrency(currency); err != nil {
		return nil, fmt.Errorf("invalid CURRENCY: %w", err)
	}
	if money.GetCurrency(currency) == nil {
		return nil, fmt.Errorf("invalid CURRENCY %q: unknown currency code", currency)
	}

	return &Config{
		LogLevel:       level,
		LogFormat:      format,
		MetricsAddr:    getEnv("METRICS_ADDR", ""),
		Currency:       currency,
		CheckingPolicy: domain.CheckingPolicy(maxDebit, maxDaily),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
