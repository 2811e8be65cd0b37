package config

import (
    "errors"
    "testing"
    "time"
)

func TestLoadDefaults(t *testing.T) {
    t.Setenv("GRID_ROWS", "")
    t.Setenv("GRID_COLS", "")
    t.Setenv("NUMBERING_SCHEME", "")
    t.Setenv("STORE_DRIVER", "")
    cfg := Load()
    if cfg.Rows != 7 || cfg.Cols != 9 {
        t.Errorf("grid: got %dx%d, want 7x9", cfg.Rows, cfg.Cols)
    }
    if cfg.Scheme != "sequential" || cfg.StoreDriver != DriverCSV {
        t.Errorf("scheme/driver: got %s/%s", cfg.Scheme, cfg.StoreDriver)
    }
}

func TestLoadClampsGrid(t *testing.T) {
    t.Setenv("GRID_ROWS", "0")
    t.Setenv("GRID_COLS", "40")
    cfg := Load()
    if cfg.Rows != 1 || cfg.Cols != 20 {
        t.Fatalf("clamped grid: got %dx%d, want 1x20", cfg.Rows, cfg.Cols)
    }
}

func TestLoadNormalizesScheme(t *testing.T) {
    t.Setenv("NUMBERING_SCHEME", "Odd/Even Split")
    if got := Load().Scheme; got != "odd_even_split" {
        t.Errorf("scheme: got %s", got)
    }
    t.Setenv("NUMBERING_SCHEME", "spiral")
    if got := Load().Scheme; got != "sequential" {
        t.Errorf("unknown scheme fallback: got %s", got)
    }
}

func TestValidate(t *testing.T) {
    if err := (Config{Rows: 21, Cols: 9}).Validate(); !errors.Is(err, ErrGridBounds) {
        t.Errorf("Validate: got %v, want ErrGridBounds", err)
    }
    if err := (Config{Rows: 20, Cols: 1}).Validate(); err != nil {
        t.Errorf("Validate: %v", err)
    }
}

func TestLoadCacheConfig(t *testing.T) {
    t.Setenv("CACHE_METHODS", "get, head")
    t.Setenv("CACHE_TTL", "bogus")
    t.Setenv("CACHE_PREFIX", "")
    cfg := LoadCacheConfig()
    if !cfg.Methods["GET"] || !cfg.Methods["HEAD"] || cfg.Methods["POST"] {
        t.Errorf("methods: %v", cfg.Methods)
    }
    if cfg.TTL != time.Minute {
        t.Errorf("ttl fallback: got %s", cfg.TTL)
    }
    if cfg.GenerationKey() != "report-cache:generation" {
        t.Errorf("generation key: %s", cfg.GenerationKey())
    }
}

func TestAMQPURLPrecedence(t *testing.T) {
    t.Setenv("RABBITMQ_URL", "")
    t.Setenv("AMQP_URL", "amqp://b/")
    if got := AMQPURL(); got != "amqp://b/" {
        t.Errorf("AMQPURL: got %s", got)
    }
    t.Setenv("RABBITMQ_URL", "amqp://a/")
    if got := AMQPURL(); got != "amqp://a/" {
        t.Errorf("AMQPURL: got %s", got)
    }
}
