package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/iburimskiy/time-estimator/internal/audio"
	"github.com/iburimskiy/time-estimator/internal/config"
	"github.com/iburimskiy/time-estimator/internal/game"
	"github.com/iburimskiy/time-estimator/internal/store"
)

var (
	configPath string
	verbose    bool
	noAudio    bool
	ephemeral  bool
)

var rootCmd = &cobra.Command{
	Use:   "time-estimator",
	Short: "Wood carving time estimator",
	Long: `Estimates how long a carving takes from wood, complexity, size and tool.

Estimates and feedback are kept between runs and can be exported as CSV.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML file overriding the built-in settings")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().BoolVar(&noAudio, "no-audio", false, "disable sound cues")
	rootCmd.Flags().BoolVar(&ephemeral, "ephemeral", false, "keep history in memory only")
}

func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

func run() error {
	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if noAudio {
		cfg.Audio.Enabled = false
	}

	var manager *gdata.Manager
	if !ephemeral {
		manager, err = gdata.Open(gdata.Config{AppName: cfg.Storage.AppName})
		if err != nil {
			logger.Warn("persistent storage unavailable, history will not be saved", zap.Error(err))
			manager = nil
		}
	}
	st := store.Open(manager, logger)

	cues := audio.NewCues(cfg.Audio, logger)
	if err := cues.Init(); err != nil {
		logger.Warn("audio unavailable", zap.Error(err))
	}
	defer cues.Close()

	g, err := game.New(game.Options{
		Config: cfg,
		Store:  st,
		Sounds: cues,
		Logger: logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := g.Close(); err != nil {
			logger.Error("closing", zap.Error(err))
		}
	}()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	game.SyncTicksToDisplay()

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
