// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ik5/pcmwav"
	"github.com/ik5/pcmwav/formats/wav"
	"github.com/ik5/pcmwav/internal/config"
)

var (
	cfgFile   string
	activeCfg config.Config
)

func NewRootCmd() *cobra.Command {
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:           "pcmwav",
		Short:         "Convert audio files to canonical WAV",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(config.LoadOptions{
				Cmd:        cmd,
				ConfigFile: cfgFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}
			activeCfg = loaded
			setupLogger(loaded.LogLevel)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	config.RegisterFlags(cmd.PersistentFlags(), defaults)

	cmd.AddCommand(newConvertCmd())
	cmd.AddCommand(newInspectCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}

// setupLogger configures the process-wide slog default logger.
func setupLogger(levelStr string) {
	lvl, err := config.ParseLogLevel(levelStr)
	if err != nil {
		lvl = slog.LevelInfo
	}
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(h))
}

func requireConfig() (config.Config, error) {
	if activeCfg.Encode.Format == "" {
		return config.Config{}, errors.New("configuration not loaded")
	}
	return activeCfg, nil
}

// encodeOptions turns the encode section of cfg into conversion options.
func encodeOptions(cfg config.Config) ([]pcmwav.Option, error) {
	format, err := wav.ParseFormat(cfg.Encode.Format)
	if err != nil {
		return nil, err
	}

	return []pcmwav.Option{
		pcmwav.WithFormat(format),
		pcmwav.WithMono(cfg.Encode.Mono),
		pcmwav.WithFoldSurround(cfg.Encode.FoldSurround),
		pcmwav.WithLogger(slog.Default()),
	}, nil
}
