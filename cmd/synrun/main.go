package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sbl8/synapse/config"
	"github.com/sbl8/synapse/model"
	synapse_runtime "github.com/sbl8/synapse/runtime"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to a YAML config file")
		circuitPath = flag.String("circuit", "", "Path to the circuit YAML file")
		ticks       = flag.Int("ticks", 0, "Number of ticks to run")
		pingEvery   = flag.Int("ping-every", 0, "Ping all neurons every N ticks (0 = only at the end)")
		metricsAddr = flag.String("metrics-addr", "", "Serve Prometheus metrics on this address")
		verbose     = flag.Bool("verbose", false, "Enable debug logging")
		version     = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *version {
		fmt.Println("synrun - synapse circuit runner v1.0.0")
		fmt.Printf("Built with Go %s\n", runtime.Version())
		return
	}

	cfg, err := config.NewLoader().Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// explicit flags win over file and environment
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "circuit":
			cfg.CircuitPath = *circuitPath
		case "ticks":
			cfg.Ticks = *ticks
		case "ping-every":
			cfg.PingEvery = *pingEvery
		case "metrics-addr":
			cfg.MetricsAddr = *metricsAddr
		case "verbose":
			if *verbose {
				cfg.LogLevel = "debug"
			}
		}
	})
	if args := flag.Args(); cfg.CircuitPath == "" && len(args) > 0 {
		cfg.CircuitPath = args[0]
	}
	if cfg.CircuitPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <circuit.yaml>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if err := run(cfg, logger); err != nil {
		logger.Fatal("run failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	circuit, err := model.LoadFile(cfg.CircuitPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := synapse_runtime.Options{Logger: logger}
	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		opts.Registerer = reg
		srv := serveMetrics(cfg.MetricsAddr, reg, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	var engine *synapse_runtime.Engine
	if cfg.PingEvery > 0 {
		opts.Observer = func(r synapse_runtime.TickReport) {
			if r.Tick%cfg.PingEvery == 0 {
				if err := engine.PingAll(os.Stdout); err != nil {
					logger.Warn("ping failed", zap.Error(err))
				}
			}
		}
	}

	engine, err = synapse_runtime.NewEngine(circuit, opts)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	stats, err := engine.Run(ctx, cfg.Ticks)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if cfg.PingEvery == 0 || engine.Tick()%cfg.PingEvery != 0 {
		if err := engine.PingAll(os.Stdout); err != nil {
			return err
		}
	}

	logger.Info("done",
		zap.String("run_id", engine.RunID()),
		zap.Int("ticks", stats.Ticks),
		zap.Duration("elapsed", stats.Elapsed))
	return nil
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logger.Info("serving metrics", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()
	return srv
}
