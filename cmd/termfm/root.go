package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"termfm/internal/config"
	"termfm/internal/entry"
	"termfm/internal/errors"
	"termfm/internal/log"
	"termfm/internal/tui"
	"termfm/internal/watch"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
	cfg     *config.Config
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "termfm [directory]",
		Short: "A keyboard driven terminal file manager",
		Long: `termfm browses a directory tree in the terminal and manipulates it
with short colon commands:

  :c  copy        :m  cut        :p  paste       :d  delete
  :r <name>  rename     :n d|f <name>  create     :e <ddd>  chmod`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := startDir(args)
			if err != nil {
				return err
			}
			return runBrowser(dir)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/termfm/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log at debug level")

	rootCmd.AddCommand(NewExecCmd())
	rootCmd.AddCommand(NewConfigCmd())

	return rootCmd
}

// setup loads the configuration, applies TERMFM_* overrides and points the
// logger at its file.
func setup() error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadConfigFile(cfgFile)
	} else {
		cfg, err = config.LoadConfig()
	}
	if errors.IsInvalidConfig(err) {
		return fmt.Errorf("%w (run 'termfm config init --force' to restore the defaults)", err)
	}
	if err != nil {
		return err
	}

	env, err := config.LoadEnv()
	if err != nil {
		return err
	}
	cfg.ApplyEnv(env)
	if debug {
		cfg.Log.Level = "debug"
	}

	logFile := cfg.Log.File
	if logFile == "" {
		cache, err := os.UserCacheDir()
		if err != nil {
			return fmt.Errorf("cannot locate cache directory for the log: %w", err)
		}
		logFile = filepath.Join(cache, "termfm", "termfm.log")
	}
	opts := []log.Option{log.WithFile(logFile), log.WithLevel(cfg.Log.Level)}
	if cfg.Log.JSON {
		opts = append(opts, log.WithJSON())
	}
	log.Configure(opts...)
	log.SetDebug(cfg.Log.Level == "debug")
	return nil
}

// startDir picks the argument, then the configured default, then the
// working directory.
func startDir(args []string) (string, error) {
	dir := cfg.Directories.Default
	if len(args) > 0 {
		dir = args[0]
	}
	if dir == "" {
		return os.Getwd()
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("error resolving directory: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", abs)
	}
	return abs, nil
}

func runBrowser(dir string) error {
	filter, err := entry.NewFilter(cfg.Display.ShowHidden, cfg.Display.Hide)
	if err != nil {
		return err
	}

	opts := tui.Options{
		Fs:           afero.NewOsFs(),
		Dir:          dir,
		Filter:       filter,
		PreviewLines: cfg.Display.PreviewLines,
		Tick:         time.Duration(cfg.Events.TickMS) * time.Millisecond,
		Opener:       cfg.Open.Command,
		Theme: tui.Theme{
			Listing:   cfg.Theme.Listing,
			Directory: cfg.Theme.Directory,
			Highlight: cfg.Theme.Highlight,
			Preview:   cfg.Theme.Preview,
			Info:      cfg.Theme.Info,
			Error:     cfg.Theme.Error,
		},
	}

	if cfg.Events.Watch {
		w, err := watch.New()
		if err != nil {
			log.LogWithError(err).Warn("File watching disabled")
		} else if err := w.Start(); err != nil {
			log.LogWithError(err).Warn("File watching disabled")
		} else {
			defer w.Stop()
			opts.Watcher = w
		}
	}

	log.LogWithFields(log.F("directory", dir), log.F("version", version)).Info("Starting browser")
	if _, err := tea.NewProgram(tui.New(opts), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running browser: %w", err)
	}
	return nil
}
