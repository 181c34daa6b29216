package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/kalambet/buildextra/internal/backup"
	"github.com/kalambet/buildextra/internal/config"
	"github.com/kalambet/buildextra/internal/storage"
)

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show every configuration key and its effective value",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		acc := config.NewAccessor(openConfig())
		out := cmd.OutOrStdout()
		for _, k := range config.ShowAll(acc) {
			fmt.Fprintf(out, "  [%s] %s = %s\n", k.Section, colorize(colorBold, k.Key), k.Value)
			fmt.Fprintf(out, "      %s, default %q: %s\n", k.Kind, k.Default, k.Help)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		if err := config.SetKey(config.NewAccessor(openConfig()), key, value); err != nil {
			return err
		}

		consoleFor(cmd).success("Set %s = %s", key, value)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file in use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := openConfig()
		fmt.Fprintln(cmd.OutOrStdout(), store.Path())
		if !store.Exists() {
			consoleFor(cmd).warn("File does not exist yet; defaults apply")
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
}

// --- history ---

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded backups, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		source, _ := cmd.Flags().GetString("source")
		if source != "" {
			abs, err := filepath.Abs(source)
			if err != nil {
				return err
			}
			source = abs
		}

		flags := config.LoadFlags(config.NewAccessor(openConfig()))
		root := backup.ResolveSavePath(flags.SavePath, exeDir())
		if _, err := os.Stat(filepath.Join(root, storage.DBFileName)); err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No backups recorded.")
			return nil
		}

		ledger, err := storage.Open(root)
		if err != nil {
			return fmt.Errorf("opening backup history: %w", err)
		}
		defer ledger.Close()

		backups, err := ledger.ListBackups(storage.BackupFilter{Source: source, Limit: limit})
		if err != nil {
			return fmt.Errorf("listing backups: %w", err)
		}
		if len(backups) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No backups recorded.")
			return nil
		}

		out := cmd.OutOrStdout()
		for _, b := range backups {
			fmt.Fprintf(out, "%s  %-14s  %-7s  %-12s  %8s  %s\n",
				colorize(colorCyan, b.ID[:8]),
				humanize.Time(b.CreatedAt),
				b.Classification,
				b.Version,
				humanize.Bytes(uint64(b.SizeBytes)),
				b.Destination,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of backups to list")
	historyCmd.Flags().String("source", "", "only list backups of this source file")
}

// --- version ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the buildextra version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "buildextra version %s\n", version)
	},
}
