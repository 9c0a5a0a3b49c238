package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              int
	DatabaseURL       string
	NatsURL           string
	NatsToken         string
	CDRSubject        string
	HistoryWindowDays int
	LogLevel          string

	// Fan-out query settings.
	FanoutNodes    []string
	FanoutPrefixes []string
	FanoutPort     int
	FanoutTimeout  int // seconds
}

func Load() Config {
	// A missing .env file is fine; deployments set the environment directly.
	_ = godotenv.Load()

	return Config{
		Port:              envInt("LASTCALL_PORT", 3000),
		DatabaseURL:       envStr("DATABASE_URL", ""),
		NatsURL:           envStr("NATS_URL", "nats://localhost:4222"),
		NatsToken:         envStr("NATS_TOKEN", ""),
		CDRSubject:        envStr("CDR_SUBJECT", "telephony.cdr.completed"),
		HistoryWindowDays: envInt("HISTORY_WINDOW_DAYS", 30),
		LogLevel:          envStr("LOG_LEVEL", "info"),
		FanoutNodes:       envList("LASTCALL_NODES", nil),
		FanoutPrefixes:    envList("LASTCALL_PREFIXES", []string{"9", "8", "7"}),
		FanoutPort:        envInt("FANOUT_PORT", 3000),
		FanoutTimeout:     envInt("FANOUT_TIMEOUT_SECONDS", 5),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
