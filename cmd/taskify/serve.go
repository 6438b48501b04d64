package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Joseda-hg/taskify/internal/metrics"
	"github.com/Joseda-hg/taskify/internal/web"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API and Prometheus metrics",
	Long: `Serve the JSON API for tasks, notes, analytics and search.

In user mode every request names its user in the X-User-ID header. In guest
mode the header is ignored and the local profile is served.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (defaults to web_port from the config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	port := app.cfg.WebPort
	if servePort != 0 {
		port = servePort
	}

	httpServer := newHTTPServer(port)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		app.log.WithField("addr", httpServer.Addr).WithField("mode", app.ws.Mode).Info("web server listening")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	app.log.Info("shutting down web server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// newHTTPServer serves the API for the session's workspace.
func newHTTPServer(port int) *http.Server {
	opts := []web.Option{
		web.WithLogger(app.log),
		web.WithMetrics(metrics.New()),
		web.WithSearchLimit(app.cfg.SearchLimit),
	}
	var server *web.Server
	if app.store != nil {
		server = web.NewServer(app.store, opts...)
	} else {
		server = web.NewGuestServer(app.ws, opts...)
	}

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}
