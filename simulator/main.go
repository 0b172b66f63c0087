package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rook-computer/lifewheel/internal/app"
	"github.com/rook-computer/lifewheel/internal/app/phases"
	"github.com/rook-computer/lifewheel/internal/config"
	"github.com/rook-computer/lifewheel/internal/render"
	"github.com/rook-computer/lifewheel/internal/state"
	"github.com/rook-computer/lifewheel/internal/system"
	"github.com/rook-computer/lifewheel/internal/web"
)

var (
	configPath string
	listenAddr string
	devMode    bool
	staticDir  string
	scenario   string
)

var rootCmd = &cobra.Command{
	Use:   "lifewheel-sim",
	Short: "Run the life wheel off-screen, driven from a browser",
	Long: `The simulator runs the same conversation as the device but draws into
memory. Open the printed address to see the screen and click through it.
Scenarios seed the wheel and phase state to jump into the conversation.`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runSimulator,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "config file (optional)")
	flags.StringVar(&listenAddr, "listen", "", "http listen address; also configurable via "+config.EnvListenAddr)
	flags.BoolVar(&devMode, "dev", false, "allow cross origin requests; also configurable via "+config.EnvDevMode)
	flags.StringVar(&staticDir, "static-dir", "", "serve static UI from this directory (optional); when empty, embedded web UI assets are served")
	flags.StringVar(&scenario, "scenario", "", "seed the conversation: "+fmt.Sprint(ScenarioNames()))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runSimulator(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath, config.SimulatorConfig())
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("listen") {
		cfg.Web.ListenAddr = listenAddr
	}
	if cmd.Flags().Changed("dev") {
		cfg.Web.DevMode = devMode
	}
	if staticDir != "" {
		cfg.Web.StaticDir = staticDir
	}
	if !cfg.Web.Enabled() {
		return errors.New("the simulator needs a listen address")
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

	processCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	linkBase, err := system.LinkBase(cfg.Web.ListenAddr, system.PrimaryIPv4)
	if err != nil {
		logger.Infof("main", "no LAN address, using localhost: %v", err)
		linkBase, _ = system.LinkBase(cfg.Web.ListenAddr, func() (net.IP, error) { return net.IPv4(127, 0, 0, 1), nil })
	}

	a := app.New(app.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Renderer:   render.NewImageRenderer(),
		Storage:    storage,
		Registry:   phases.Registry(phases.Options{LinkBase: linkBase}),
		Logger:     logger,
		StartPhase: cfg.StartPhase,
	})

	control := NewSimControl(a, scenario)
	mux := web.NewDefaultMux(cfg.Web.StaticDir, a, logger)
	registerSimEndpoints(mux, control)

	server := web.NewHTTPServer(cfg.Web.ListenAddr, a)
	server.Handler = mux
	if cfg.Web.DevMode {
		server.Handler = web.WithDevCORS(mux)
	}
	server.Logger = logger
	if err := server.Start(processCtx); err != nil {
		return fmt.Errorf("server start: %w", err)
	}
	defer server.Stop()

	errCh := make(chan error, 1)
	go func() { errCh <- a.Run(processCtx) }()

	if scenario != "" {
		if err := control.Apply(processCtx, scenario); err != nil {
			stop()
			<-errCh
			return err
		}
	}

	fmt.Println("Life wheel simulator listening on", linkBase)
	fmt.Println("API:", linkBase+"/api/v1/")

	err = <-errCh
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
