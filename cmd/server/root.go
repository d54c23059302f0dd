package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/config"
	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/logging"
)

// Version 於建置時設定
var Version = "0.1.0"

type stateKey struct{}

// appState 每個命令共用的設定與 logger
type appState struct {
	cfg    *config.Config
	logger *zap.Logger
}

func stateFrom(ctx context.Context) *appState {
	rt, _ := ctx.Value(stateKey{}).(*appState)
	return rt
}

// NewRootCmd 建立根命令
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:     "wardrobe",
		Short:   "Wardrobe planner backend",
		Long:    "Serves the wardrobe planner API: product catalog, design save/resume by code, and email sharing.",
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
			if err != nil {
				return err
			}

			ctx := context.WithValue(cmd.Context(), stateKey{}, &appState{cfg: cfg, logger: logger})
			cmd.SetContext(ctx)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if rt := stateFrom(cmd.Context()); rt != nil {
				_ = rt.logger.Sync()
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", fmt.Sprintf("config file (default: ./%s)", config.FileName))
	rootCmd.PersistentFlags().Int("code-length", 0, "Design code length including the W prefix")
	rootCmd.PersistentFlags().String("code-source", "", "Random source for design codes (auto|crypto|math)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().Bool("log-dev", false, "Human-readable development logging")

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newCodeCommand())
	rootCmd.AddCommand(newMigrateCommand())

	return rootCmd
}
