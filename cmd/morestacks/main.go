package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/OCharnyshevich/morestacks/internal/config"
	"github.com/OCharnyshevich/morestacks/internal/items"
	"github.com/OCharnyshevich/morestacks/internal/patch"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		slog.Error("morestacks failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgPath string
		flags   = config.DefaultConfig()
	)

	cmd := &cobra.Command{
		Use:           "morestacks",
		Short:         "Restore item files from backup and raise stack sizes 100x",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			explicit := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { explicit[f.Name] = true })
			config.Merge(cfg, flags, explicit)

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			lvl, _ := cfg.Level()
			log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			_, err = patch.New(cfg, items.DefaultAllowList(), log).Run(ctx)
			return err
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "morestacks.yaml", "path to the YAML config file (optional)")
	cmd.Flags().StringVar(&flags.ModRoot, "mod-root", flags.ModRoot, "mod root directory holding items and items_backup")
	cmd.Flags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "log level: debug, info, warn or error")
	return cmd
}
