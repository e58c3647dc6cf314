// Package cli implements the studyflow commands.
package cli

import (
	"context"
	"fmt"
	"strings"

	"studyflow/internal/config"
	"studyflow/internal/history"
	"studyflow/internal/logger"
	"studyflow/internal/pipeline"
	"studyflow/internal/providers"
	"studyflow/internal/source"
	"studyflow/internal/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	envFile  string
	provider string
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "studyflow",
		Short:         "Turn study material into summaries, flashcards and timetables",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.envFile != "" {
				_ = godotenv.Load(opts.envFile)
			}
		},
	}
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "Dotenv file loaded before reading configuration")
	cmd.PersistentFlags().StringVar(&opts.provider, "provider", "", "Model provider to use (default: first entry of STUDYFLOW_LLM_PROVIDERS)")

	cmd.AddCommand(newServeCmd(opts), newHistoryCmd(opts), newGenerateCmd(opts))
	return cmd
}

// deps is everything a command needs to run operations against the configured store.
type deps struct {
	cfg      config.Config
	log      *logger.Logger
	store    storage.HistoryStore
	recorder *history.Recorder
	service  *pipeline.Service
}

func (d *deps) Close() {
	if d.store != nil {
		_ = d.store.Close()
	}
	d.log.Sync()
}

func openDeps(ctx context.Context, opts *rootOptions) (*deps, error) {
	cfg := config.Load()
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	pm, err := providers.NewManager(cfg)
	if err != nil {
		return nil, err
	}
	model, ref := pm.FirstLLMProvider()
	if name := strings.TrimSpace(opts.provider); name != "" {
		p, r, ok := pm.FindLLMProviderByName(name)
		if !ok {
			return nil, fmt.Errorf("provider %q is not configured in STUDYFLOW_LLM_PROVIDERS", name)
		}
		model, ref = p, r
	}

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	recorder := history.NewRecorder(store)
	svc := pipeline.NewService(source.NewResolver(source.NewPDFConverter()), model, recorder, log)

	log.Debug("dependencies ready", "provider", ref.String(), "history_driver", cfg.HistoryDriver)
	return &deps{cfg: cfg, log: log, store: store, recorder: recorder, service: svc}, nil
}
