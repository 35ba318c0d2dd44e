package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/neon-vortex/internal/config"
	"github.com/vovakirdan/neon-vortex/internal/games/vortex"
	"github.com/vovakirdan/neon-vortex/internal/platform/tui"
	"github.com/vovakirdan/neon-vortex/internal/spectate"
	"github.com/vovakirdan/neon-vortex/internal/storage"
)

var (
	flagSSHAddr         string
	flagHTTPAddr        string
	flagHostKey         string
	flagIdleTimeout     int
	flagDemo            bool
	flagInsecureOrigins bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve SSH play and the spectator feed",
	Long: `Start an SSH server where users play Neon Vortex, and an HTTP server
where running matches can be watched.

Each SSH connection gets its own session with the mode picker. Scores are
stored per server, so all users share the leaderboard. Every match played
over SSH is published for spectators.

Spectator endpoints:
  GET /matches          - running matches as JSON
  GET /matches/{id}     - full snapshot of one match
  GET /watch?match={id} - websocket feed of state notifications

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.vortex/host_key

Examples:
  vortex serve                      # SSH on :23234, spectators on :8080
  vortex serve --ssh :2222 --http ""
  vortex serve --ssh "" --demo      # spectator demo only
  vortex serve --host-key ./my_host_key

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (empty to disable)")
	f.StringVar(&flagHTTPAddr, "http", ":8080", "Spectator HTTP address (empty to disable)")
	f.StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	f.IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	f.BoolVar(&flagDemo, "demo", false, "Publish an autopilot match for spectators")
	f.BoolVar(&flagInsecureOrigins, "insecure-origins", false, "Accept websocket viewers from any origin")
}

func runServe(cmd *cobra.Command, _ []string) error {
	if flagSSHAddr == "" && flagHTTPAddr == "" {
		return errors.New("nothing to serve: both --ssh and --http are empty")
	}

	opts, err := loadOptions()
	if err != nil {
		return err
	}
	opts.Options.SoundEnabled = false
	logger := newLogger("vortex")

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("scores disabled", "err", err)
		store = nil
	} else {
		defer store.Close()
	}

	hubOpts := []spectate.Option{spectate.WithLogger(logger.WithPrefix("spectate"))}
	if flagInsecureOrigins {
		hubOpts = append(hubOpts, spectate.WithInsecureOrigins())
	}
	hub := spectate.NewHub(hubOpts...)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	if flagSSHAddr != "" {
		srv, err := tui.NewSSHServer(tui.SSHServerConfig{
			Address:     flagSSHAddr,
			HostKeyPath: flagHostKey,
			IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
			TickRate:    flagFPS,
		}, tui.Deps{
			Store:  store,
			Config: opts,
			Logger: logger.WithPrefix("ssh"),
		}, hub)
		if err != nil {
			return err
		}
		fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(flagSSHAddr))
		g.Go(func() error { return srv.Serve(ctx) })
	}

	if flagHTTPAddr != "" {
		httpSrv := &http.Server{
			Addr:              flagHTTPAddr,
			Handler:           hub.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		g.Go(func() error {
			logger.Info("starting spectator server", "address", flagHTTPAddr)
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return httpSrv.Shutdown(shutdownCtx)
		})
	}

	if flagDemo {
		g.Go(func() error { return runDemo(ctx, hub, opts, logger.WithPrefix("demo")) })
	}

	fmt.Println("Press Ctrl+C to stop")
	return g.Wait()
}

// demoPause is how long a finished demo match stays listed.
const demoPause = 5 * time.Second

// runDemo keeps an autopilot match published until ctx is done. A finished
// match stays visible for a moment and is then replaced.
func runDemo(ctx context.Context, hub *spectate.Hub, opts config.Config, logger *log.Logger) error {
	driver := vortex.TickerDriver{StopOnGameOver: true}
	for {
		m, err := vortex.NewMatch(
			vortex.FixedSurface{W: 800, H: 600},
			vortex.WithConfig(opts),
			vortex.WithSeed(time.Now().UnixNano()),
			vortex.WithLogger(logger),
		)
		if err != nil {
			return err
		}
		m.StartGame()
		id := hub.Publish("autopilot", m)
		logger.Info("demo match started", "id", id)

		err = driver.Run(ctx, m, vortex.Autopilot)
		if err == nil {
			select {
			case <-ctx.Done():
			case <-time.After(demoPause):
			}
		}
		m.Destroy()
		if ctx.Err() != nil {
			return nil
		}
	}
}

// portOf returns the port part of a listen address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
