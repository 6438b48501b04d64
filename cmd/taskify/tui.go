package main

import (
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/Joseda-hg/taskify/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the terminal UI (default)",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	opts := tui.Options{
		Debounce: app.cfg.Debounce(),
		Limit:    app.cfg.SearchLimit,
		Logger:   app.log,
	}
	if app.storage != nil {
		changes, err := app.storage.Watch(ctx)
		if err != nil {
			app.log.WithError(err).Warn("guest profile will not refresh on outside changes")
		} else {
			opts.Changes = changes
		}
	}

	if app.cfg.WebEnabled {
		httpServer := newHTTPServer(app.cfg.WebPort)
		go func() {
			app.log.WithField("addr", httpServer.Addr).Info("web server listening")
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				app.log.WithError(err).Error("web server stopped")
			}
		}()
		defer httpServer.Close()
	}

	app.log.WithField("mode", app.ws.Mode).Info("starting terminal UI")
	return tui.Run(ctx, app.ws, opts)
}
