package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Nitanshu99/job-application-agent-sub000/internal/backend"
	"github.com/Nitanshu99/job-application-agent-sub000/internal/config"
	"github.com/Nitanshu99/job-application-agent-sub000/internal/httpapi"
	"github.com/Nitanshu99/job-application-agent-sub000/internal/orchestrator"
	"github.com/Nitanshu99/job-application-agent-sub000/internal/sysinfo"
	"github.com/Nitanshu99/job-application-agent-sub000/internal/workflow"
)

func main() {
	if err := buildRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	var cfgPath string
	cfg := config.Config{}

	root := &cobra.Command{
		Use:           "agentd",
		Short:         "Job-application pipeline daemon coordinating three model backends",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfgPath != "" {
				loaded, err := config.Load(cfgPath)
				if err != nil {
					return err
				}
				// File values fill only what flags left unset.
				merge(&cfg, loaded)
			}
			config.FromEnv(&cfg)
			cfg.ApplyDefaults()
			return run(cfg)
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "Path to config file (.yaml, .json, .toml)")
	root.Flags().StringVar(&cfg.Addr, "addr", "", "HTTP listen address, e.g. :8080")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", "", "Log level: debug|info|warn|error")
	root.Flags().Float64Var(&cfg.MemoryThresholdGB, "memory-threshold-gb", 0, "Ceiling on used host memory before eviction kicks in")
	root.Flags().IntVar(&cfg.AutoUnloadTimeoutMinutes, "auto-unload-timeout-minutes", 0, "Idle minutes before a backend is unloaded")
	root.Flags().IntVar(&cfg.ConcurrentModelsLimit, "concurrent-models-limit", 0, "Maximum backends resident simultaneously")
	root.Flags().StringVar(&cfg.Analysis.URL, "analysis-url", "", "Analysis model server URL")
	root.Flags().StringVar(&cfg.Generation.URL, "generation-url", "", "Generation model server URL")
	root.Flags().StringVar(&cfg.Submission.URL, "submission-url", "", "Submission model server URL")
	return root
}

// merge copies file values into dst for every field the flags left at zero.
func merge(dst *config.Config, src config.Config) {
	if dst.Addr == "" {
		dst.Addr = src.Addr
	}
	if dst.LogLevel == "" {
		dst.LogLevel = src.LogLevel
	}
	if dst.MemoryThresholdGB == 0 {
		dst.MemoryThresholdGB = src.MemoryThresholdGB
	}
	if dst.AutoUnloadTimeoutMinutes == 0 {
		dst.AutoUnloadTimeoutMinutes = src.AutoUnloadTimeoutMinutes
	}
	if dst.ConcurrentModelsLimit == 0 {
		dst.ConcurrentModelsLimit = src.ConcurrentModelsLimit
	}
	if dst.MonitorIntervalSeconds == 0 {
		dst.MonitorIntervalSeconds = src.MonitorIntervalSeconds
	}
	if dst.ReapIntervalSeconds == 0 {
		dst.ReapIntervalSeconds = src.ReapIntervalSeconds
	}
	if dst.Analysis.URL == "" {
		dst.Analysis = src.Analysis
	}
	if dst.Generation.URL == "" {
		dst.Generation = src.Generation
	}
	if dst.Submission.URL == "" {
		dst.Submission = src.Submission
	}
	if !dst.CORSEnabled {
		dst.CORSEnabled = src.CORSEnabled
		dst.CORSOrigins = src.CORSOrigins
	}
}

func run(cfg config.Config) error {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	sampler := sysinfo.NewHostSampler()
	analysis := backend.NewAnalysisAdapter(cfg.Analysis.URL, time.Duration(cfg.Analysis.TimeoutSeconds)*time.Second, log)
	generation := backend.NewGenerationAdapter(cfg.Generation.URL, time.Duration(cfg.Generation.TimeoutSeconds)*time.Second, log)
	submission := backend.NewSubmissionAdapter(cfg.Submission.URL, time.Duration(cfg.Submission.TimeoutSeconds)*time.Second, log)

	orch, err := orchestrator.New(
		[]backend.Adapter{analysis, generation, submission},
		sampler,
		orchestrator.Config{
			MemoryThresholdGB: cfg.MemoryThresholdGB,
			AutoUnloadTimeout: time.Duration(cfg.AutoUnloadTimeoutMinutes) * time.Minute,
			ConcurrentLimit:   cfg.ConcurrentModelsLimit,
			MonitorInterval:   time.Duration(cfg.MonitorIntervalSeconds) * time.Second,
			ReapInterval:      time.Duration(cfg.ReapIntervalSeconds) * time.Second,
		},
		log,
	)
	if err != nil {
		return err
	}
	exec := workflow.New(orch, analysis, generation, submission, log)

	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)
	httpapi.SetLogger(log)
	httpapi.SetCORSOptions(cfg.CORSEnabled, cfg.CORSOrigins)

	mux := httpapi.NewMux(exec, orch, sampler)
	srv := &http.Server{Addr: cfg.Addr, Handler: mux}

	go func() {
		if err := orch.Run(baseCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("orchestrator loops stopped")
		}
	}()
	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("agentd listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	cancelBase()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("graceful shutdown error")
	}
	orch.Shutdown(ctx)
	return nil
}
