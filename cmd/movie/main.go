package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"MovieStore/internal/movie"
	"MovieStore/pkg/kit"
)

func main() {
	service := "movie"
	log, err := kit.NewLogger(service, getenv("LOG_LEVEL", "info"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	port := getenv("PORT", "3000")
	limit := getenvInt(log, "UPSERT_LIMIT_PER_MIN", 0)
	metricsEnabled := getenvBool(log, "METRICS_ENABLED", true)

	cfg := kit.DefaultServerConfig(":" + port)
	cfg.ShutdownTimeout = getenvDuration(log, "SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	s := &movie.Server{
		Store: movie.NewInstrumentedStore(movie.NewStore(), reg),
		Log:   log,
	}

	h := movie.NewHandler(s, movie.HTTPDeps{
		Log:               log,
		Service:           service,
		Registry:          reg,
		MetricsEnabled:    metricsEnabled,
		MetricsToken:      os.Getenv("METRICS_TOKEN"),
		UpsertLimitPerMin: limit,
	})

	if err := kit.RunHTTPServer(context.Background(), cfg, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(log *zap.Logger, k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		log.Fatal("invalid env", zap.String("key", k), zap.String("value", v))
	}
	return n
}

func getenvBool(log *zap.Logger, k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Fatal("invalid env", zap.String("key", k), zap.String("value", v))
	}
	return b
}

func getenvDuration(log *zap.Logger, k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatal("invalid env", zap.String("key", k), zap.String("value", v))
	}
	return d
}
