package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rook-computer/lifewheel/internal/app"
	"github.com/rook-computer/lifewheel/internal/app/phases"
	"github.com/rook-computer/lifewheel/internal/buttons"
	"github.com/rook-computer/lifewheel/internal/canvas"
	"github.com/rook-computer/lifewheel/internal/config"
	"github.com/rook-computer/lifewheel/internal/render"
	"github.com/rook-computer/lifewheel/internal/state"
	"github.com/rook-computer/lifewheel/internal/system"
	"github.com/rook-computer/lifewheel/internal/web"
	"github.com/rook-computer/lifewheel/internal/wheel"
)

const envStdioLog = "LIFEWHEEL_STDIO_LOG"

var (
	configPath  string
	debug       bool
	stdioLog    string
	exportOut   string
	exportPlace bool
)

var rootCmd = &cobra.Command{
	Use:   "lifewheel",
	Short: "Life satisfaction wheel on the framebuffer",
	Long: `lifewheel walks a visitor through building their wheel of life on the
device screen. The same conversation can be driven from a browser through the
HTTP API.

Run without a subcommand to start the device UI.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Best-effort: redirect all stdout/stderr output (including panic stack traces)
		// to a file so crashes are diagnosable even when the console is left in graphics mode.
		path := stdioLog
		if path == "" {
			path = os.Getenv(envStdioLog)
		}
		if path != "" {
			if err := redirectStdIO(path); err != nil {
				fmt.Fprintln(os.Stderr, "stdio log redirect error:", err)
			}
		}
		return nil
	},
	RunE: runDevice,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the device UI",
	RunE:  runDevice,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the stored wheel as PNG",
	Args:  cobra.NoArgs,
	RunE:  exportWheel,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "/etc/lifewheel.yaml", "config file (missing file means defaults)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug logging with the console encoder")
	rootCmd.PersistentFlags().StringVar(&stdioLog, "stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via "+envStdioLog)

	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "wheel.png", "output file, - for stdout")
	exportCmd.Flags().BoolVar(&exportPlace, "keep-placement", false, "draw the wheel where it currently stands instead of centered")

	rootCmd.AddCommand(runCmd, exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath, config.DefaultConfig())
	if err != nil {
		return nil, err
	}
	if debug {
		cfg.Debug = true
	}
	return cfg, nil
}

func runDevice(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := app.NewFileLogger(cfg.LogFile, cfg.Debug)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	storage, err := state.Open(cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer storage.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	linkBase := ""
	if cfg.Web.Enabled() {
		if linkBase, err = system.LinkBase(cfg.Web.ListenAddr, system.PrimaryIPv4); err != nil {
			logger.Infof("main", "no link for the remote control: %v", err)
		}
	}

	a := app.New(app.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Renderer:   render.NewFBRenderer(cfg.Framebuffer),
		Storage:    storage,
		Registry:   phases.Registry(phases.Options{LinkBase: linkBase}),
		Buttons:    buttons.NewEvdevButtons(logger),
		Logger:     logger,
		StartPhase: cfg.StartPhase,
		Console:    true,
	})

	server := web.NewServer(cfg.Web, a, logger)
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("web server: %w", err)
	}
	defer server.Stop()

	logger.Infof("main", "lifewheel starting (link %q)", linkBase)
	if err := a.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Errorf("main", "app stopped: %v", err)
		return err
	}
	logger.Infof("main", "lifewheel stopped")
	return nil
}

func exportWheel(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	storage, err := state.Open(cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer storage.Close()

	st := wheel.DefaultState()
	if err := state.LoadJSON(storage, canvas.DefaultStorageKey, &st); err != nil {
		if errors.Is(err, state.ErrNotFound) {
			return errors.New("no wheel has been stored yet")
		}
		return err
	}

	opts := render.ExportOptions{Fonts: render.LoadFonts(nil), KeepPlacement: exportPlace}
	if exportOut == "-" {
		return writeExport(cmd.OutOrStdout(), st, opts)
	}
	return exportToFile(createFile, exportOut, st, opts)
}

func createFile(path string) (io.WriteCloser, error) { return os.Create(path) }

// exportToFile reports a failed Close: a short write may only surface there.
func exportToFile(create func(string) (io.WriteCloser, error), path string, st wheel.State, opts render.ExportOptions) error {
	f, err := create(path)
	if err != nil {
		return err
	}
	if err := writeExport(f, st, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export: close %s: %w", path, err)
	}
	return nil
}

func writeExport(w io.Writer, st wheel.State, opts render.ExportOptions) error {
	if err := render.WriteWheelPNG(w, st, opts); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}
