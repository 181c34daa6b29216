package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/kalambet/buildextra/internal/backup"
	"github.com/kalambet/buildextra/internal/config"
	"github.com/kalambet/buildextra/internal/storage"
)

var (
	configPath string
	logLevel   string
	sourceFlag string
	targetFlag string
)

var rootCmd = &cobra.Command{
	Use:   "buildextra [source] [target]",
	Short: "Back up a build artifact into a versioned folder",
	Long: `Back up a build artifact into a versioned folder.

The build type is taken from the source path: the first directory named
Debug or Release decides. The copy is named <name>_<version><ext>, with a
d_ prefix for Debug builds, and lands in <SavePath>/<name>/ unless a target
directory is given.

Examples:
  buildextra C:\src\MyApp\bin\Release\MyApp.exe
  buildextra --source ./bin/Debug/tool --target ./archive`,
	Args:          cobra.MaximumNArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if nc, _ := cmd.Flags().GetBool("no-color"); nc {
			noColor = true
		}
		return setupLogging(logLevel)
	},
	RunE: runBackup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "configuration file (default: $BUILDEXTRA_CONFIG or Config.cfg next to the executable)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable coloured output")
	rootCmd.Flags().StringVar(&sourceFlag, "source", "", "build artifact to back up")
	rootCmd.Flags().StringVar(&targetFlag, "target", "", "destination directory (default: <SavePath>/<name>)")

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

func setupLogging(level string) error {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "info":
		l = slog.LevelInfo
	case "warn", "warning", "":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		return fmt.Errorf("unknown log level %q", level)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
	return nil
}

// openConfig returns the store named by --config, $BUILDEXTRA_CONFIG or the
// default location.
func openConfig() *config.IniStore {
	p := configPath
	if p == "" {
		p = config.DefaultPath()
	}
	return config.NewIniStore(p)
}

// exeDir is the fallback backup root; swapped out by tests.
var exeDir = config.ExecutableDir

// newPlanner is swapped out by tests.
var newPlanner = func(acc *config.Accessor) *backup.Planner {
	return backup.NewPlanner(acc, backup.WithExecutableDir(exeDir()))
}

func runBackup(cmd *cobra.Command, args []string) error {
	req := backup.Request{Source: sourceFlag, Target: targetFlag}
	if req.Source == "" && len(args) > 0 {
		req.Source = args[0]
	}
	if req.Target == "" && len(args) > 1 {
		req.Target = args[1]
	}

	out := consoleFor(cmd)
	store := openConfig()
	if !store.Exists() {
		out.warn("Configuration file %s not found, using defaults", store.Path())
		slog.Info("configuration file not found, using defaults", "path", store.Path())
	}
	acc := config.NewAccessor(store)

	planner := newPlanner(acc)
	d, err := planner.Plan(req)
	if err != nil {
		return err
	}

	out.field("Source", d.Source)
	out.field("Build", d.Classification)
	out.field("Version", d.Version)
	out.step("Copying to %s", d.DestinationPath())

	res, err := planner.Execute(d)
	if err != nil {
		return err
	}
	out.success("Backed up %s (%s)", res.Destination, humanize.Bytes(uint64(res.Bytes)))

	recordBackup(out, acc, d, res)
	return nil
}

// recordBackup adds the completed copy to the ledger. Ledger problems are
// reported but do not fail the run: the copy already exists.
func recordBackup(out console, acc *config.Accessor, d backup.Decision, res backup.Result) {
	flags := config.LoadFlags(acc)
	if !flags.History {
		return
	}
	root := backup.ResolveSavePath(flags.SavePath, exeDir())

	ledger, err := storage.Open(root)
	if err != nil {
		out.warn("Could not open backup history: %v", err)
		slog.Warn("opening backup history failed", "dir", root, "error", err)
		return
	}
	defer ledger.Close()

	rec, err := ledger.SaveBackup(storage.Backup{
		Source:         d.Source,
		Destination:    res.Destination,
		Classification: d.Classification.String(),
		Version:        d.Version,
		SizeBytes:      res.Bytes,
	})
	if err != nil {
		out.warn("Could not record backup: %v", err)
		slog.Warn("recording backup failed", "error", err)
		return
	}
	slog.Debug("backup recorded", "id", rec.ID, "db", root)
}
