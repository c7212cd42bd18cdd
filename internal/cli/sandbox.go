package cli

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

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/boxsdk/internal/sandbox"
	"github.com/mesh-intelligence/boxsdk/internal/sqlite"
)

// shutdownTimeout bounds graceful shutdown of the sandbox server.
const shutdownTimeout = 5 * time.Second

func (a *app) newSandboxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sandbox",
		Short: "Run a local emulator of the comment and template endpoints",
	}

	var addr string
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the sandbox API until interrupted",
		Long: "Serve the emulated API under " + sandbox.APIPrefix + ", storing data in the data\n" +
			"directory. When token is configured, requests must present it as a bearer token.\n" +
			"Point api_url at http://<addr>" + sandbox.APIPrefix + " to use it from boxctl.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.GetString(cfgKeySandboxAddr)
			}
			dataDir, err := a.dataDir()
			if err != nil {
				return sysError(fmt.Errorf("resolve data dir: %w", err))
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serveSandbox(ctx, sandboxOptions{
				Addr:    addr,
				DataDir: dataDir,
				Token:   a.cfg.GetString(cfgKeyToken),
				Logger:  a.log,
				Ready: func(bound string) {
					fmt.Fprintf(cmd.OutOrStdout(), "Sandbox listening on http://%s%s\n", bound, sandbox.APIPrefix)
				},
			})
		},
	}
	serve.Flags().StringVar(&addr, "addr", "", "listen address (default: sandbox_addr from config)")

	cmd.AddCommand(serve)
	return cmd
}

type sandboxOptions struct {
	Addr    string
	DataDir string
	Token   string
	Logger  *logrus.Logger
	// Ready, when set, is called with the bound address once listening.
	Ready func(addr string)
}

// serveSandbox opens the store, serves until ctx is done, then shuts the
// server down and closes the store.
func serveSandbox(ctx context.Context, opts sandboxOptions) error {
	store := sqlite.NewStore()
	if err := store.Open(opts.DataDir); err != nil {
		return sysError(fmt.Errorf("open sandbox store: %w", err))
	}
	defer store.Close()

	ln, err := net.Listen("tcp", opts.Addr)
	if err != nil {
		return sysError(fmt.Errorf("listen on %s: %w", opts.Addr, err))
	}

	srv := &http.Server{
		Handler:           sandbox.New(store, sandbox.Options{Token: opts.Token, Logger: opts.Logger}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	log := opts.Logger.WithFields(logrus.Fields{"addr": ln.Addr().String(), "data_dir": opts.DataDir})
	log.Info("sandbox started")
	if opts.Ready != nil {
		opts.Ready(ln.Addr().String())
	}

	select {
	case err := <-errc:
		return sysError(fmt.Errorf("sandbox server: %w", err))
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return sysError(fmt.Errorf("shutdown sandbox: %w", err))
	}
	log.Info("sandbox stopped")
	return nil
}
