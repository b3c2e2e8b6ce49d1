package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"predictd/internal/config"
	"predictd/internal/httpapi"
	"predictd/internal/manager"
	"predictd/internal/registry"
)

type serveOptions struct {
	addr         string
	modelsDir    string
	defaultModel string
	configPath   string
}

func newServeCmd() *cobra.Command {
	var opts serveOptions
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the prediction server",
		RunE: func(cmd *cobra.Command, args []string) error {
			levelSet := cmd.Root().PersistentFlags().Changed("log-level") ||
				os.Getenv("PREDICTD_LOG_LEVEL") != ""
			return runServe(opts, levelSet)
		},
	}
	cmd.Flags().StringVar(&opts.addr, "addr",
		envOr("PREDICTD_ADDR", ""), "HTTP listen address, e.g. :8080")
	cmd.Flags().StringVar(&opts.modelsDir, "models-dir",
		envOr("PREDICTD_MODELS_DIR", ""), "Directory to scan for *.model artifacts")
	cmd.Flags().StringVar(&opts.defaultModel, "default-model", "",
		"Default model id when a request omits the model")
	cmd.Flags().StringVar(&opts.configPath, "config", "",
		"Path to a yaml/json/toml config file")
	return cmd
}

// resolveConfig merges the config file with flag/env overrides.
// Precedence: flags (seeded from env) over file over built-in defaults.
func resolveConfig(opts serveOptions) (config.Config, error) {
	var cfg config.Config
	if opts.configPath != "" {
		fileCfg, err := config.Load(opts.configPath)
		if err != nil {
			return cfg, fmt.Errorf("config: %w", err)
		}
		cfg = fileCfg
	}
	if opts.addr != "" {
		cfg.Addr = opts.addr
	}
	if opts.modelsDir != "" {
		cfg.ModelsDir = opts.modelsDir
	}
	if opts.defaultModel != "" {
		cfg.DefaultModel = opts.defaultModel
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.ModelsDir == "" {
		cfg.ModelsDir = "~/models/predictors"
	}
	return cfg, nil
}

func runServe(opts serveOptions, levelSet bool) error {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}
	// The config file sets the level only when neither flag nor env did.
	if !levelSet && cfg.LogLevel != "" {
		logger = logger.Level(parseLogLevel(cfg.LogLevel))
	}

	reg, err := registry.LoadDir(cfg.ModelsDir, func(path string, err error) {
		logger.Warn().Str("path", path).Err(err).Msg("skipping artifact")
	})
	if err != nil {
		return fmt.Errorf("load models from %s: %w", cfg.ModelsDir, err)
	}
	logger.Info().Int("models", len(reg)).Str("dir", cfg.ModelsDir).Msg("registry loaded")

	mgr := manager.NewWithConfig(manager.ManagerConfig{
		Registry:      reg,
		DefaultModel:  cfg.DefaultModel,
		MaxLoaded:     cfg.MaxLoaded,
		MaxQueueDepth: cfg.MaxQueueDepth,
		MaxWait:       time.Duration(cfg.MaxWaitMS) * time.Millisecond,
		Publisher:     manager.MultiPublisher{logPublisher{}, httpapi.EventRecorder{}},
	})

	httpapi.SetLogger(logger)
	httpapi.SetCORSOptions(cfg.CORS.Enabled,
		cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders)

	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)

	mux := httpapi.NewMux(mgr)

	// Bind before serving so a busy port fails fast with the address in the error.
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Addr, err)
	}

	// Deserialize the default model up front so the first request does not
	// pay the load; a failure here surfaces again per-request as 503.
	if cfg.DefaultModel != "" {
		if err := mgr.EnsureInstance(baseCtx, cfg.DefaultModel); err != nil {
			logger.Error().Err(err).Str("model", cfg.DefaultModel).Msg("warmup failed")
		}
	}

	srv := &http.Server{Handler: mux}
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr).Msg("predictd listening")
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-stop:
	}
	cancelBase()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
	return nil
}

// logPublisher forwards manager lifecycle events to the structured log.
type logPublisher struct{}

func (logPublisher) Publish(e manager.Event) {
	ev := logger.Info().Str("model", e.ModelID)
	for k, v := range e.Fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(e.Name)
}
