package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/nibble/internal/cli"
)

func newRootCommand(cfg config) *cobra.Command {
	root := &cobra.Command{
		Use:          "nibble",
		Short:        "A local calorie and weight log",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfg.DBPath, "db", cfg.DBPath, "database file (sqlite) or directory (badger)")
	root.PersistentFlags().StringVar(&cfg.Driver, "driver", cfg.Driver, "storage driver: sqlite, badger or memory")
	root.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")

	// Subcommands read cfg through the pointer so parsed flags are visible to them.
	root.AddCommand(
		newServeCommand(&cfg),
		newSummaryCommand(&cfg),
		newExportCommand(&cfg),
		newResetPINCommand(&cfg),
	)
	return root
}

func newServeCommand(cfg *config) *cobra.Command {
	command := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and web app",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			port, err := resolvePort(cfg.Port)
			if err != nil {
				return err
			}
			env, err := openEnvironment(*cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer env.Close()
			return runServer(cmd.Context(), env, *cfg, port)
		},
	}
	command.Flags().StringVar(&cfg.Port, "port", cfg.Port, "listen port")
	command.Flags().StringVar(&cfg.WebDir, "web-dir", cfg.WebDir, "static web app directory")
	return command
}

func newSummaryCommand(cfg *config) *cobra.Command {
	command := &cobra.Command{
		Use:   "summary",
		Short: "Print today's, this week's and this month's totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := openEnvironment(*cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer env.Close()
			return cli.WriteSummary(cmd.OutOrStdout(), env.services.Analytics, env.i18n, cfg.Language)
		},
	}
	command.Flags().StringVar(&cfg.Language, "lang", cfg.Language, "output language (en, ru)")
	return command
}

func newExportCommand(cfg *config) *cobra.Command {
	var (
		outPath string
		format  string
		from    string
		to      string
	)
	command := &cobra.Command{
		Use:   "export",
		Short: "Write a JSON backup or a food log CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := openEnvironment(*cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer env.Close()

			if outPath == "" || outPath == "-" {
				return cli.WriteExport(cmd.OutOrStdout(), env.services.Export, format, from, to)
			}

			file, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}
			if err := cli.WriteExport(file, env.services.Export, format, from, to); err != nil {
				_ = file.Close()
				return err
			}
			return file.Close()
		},
	}
	command.Flags().StringVarP(&outPath, "out", "o", "", "output file, - or empty for stdout")
	command.Flags().StringVar(&format, "format", cli.ExportFormatJSON, "json or csv")
	command.Flags().StringVar(&from, "from", "", "csv range start (YYYY-MM-DD)")
	command.Flags().StringVar(&to, "to", "", "csv range end (YYYY-MM-DD)")
	return command
}

func newResetPINCommand(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-pin",
		Short: "Set a new PIN without the current one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := openEnvironment(*cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer env.Close()

			language := env.i18n.NormalizeLanguage(cfg.Language)
			translate := func(key string) string { return env.i18n.Translate(language, key) }
			prompt := cli.NewTerminalPrompt(os.Stdin, cmd.OutOrStdout())
			return cli.RunResetPINCommand(env.services.Auth, prompt, translate, cmd.OutOrStdout())
		},
	}
}
