package commands

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/contacts/internal/ui"
	"github.com/leapstack-labs/contacts/internal/ui/resources"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port      int
	NoBrowser bool
	Watch     bool
	Dev       bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the contacts web UI",
		Long: `Start a local web server with the contacts UI.

The UI provides:
- A searchable contact list kept in sync with the URL
- Contact detail and edit views
- Live loading feedback over server-sent events`,
		Example: `  # Start UI on default port
  contacts serve

  # Start on custom port against an in-memory store
  contacts serve --port 3000 --backend memory

  # Start without auto-opening browser
  contacts serve --no-browser`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, "Port to serve on (default: 8765)")
	cmd.Flags().BoolVar(&opts.NoBrowser, "no-browser", false, "Don't auto-open browser")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Reload the page when static assets change")
	cmd.Flags().BoolVar(&opts.Dev, "dev", false, "Enable development hot reload")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	cfg := cmdCtx.Cfg
	uiCfg := cfg.GetUIConfig()

	// CLI flags override config file
	port := uiCfg.Port
	if opts.Port != 0 {
		port = opts.Port
	}

	autoOpen := uiCfg.AutoOpen
	if opts.NoBrowser {
		autoOpen = false
	}

	watch := uiCfg.Watch
	if cmd.Flags().Changed("watch") {
		watch = opts.Watch
	}

	dev := uiCfg.Dev
	if cmd.Flags().Changed("dev") {
		dev = opts.Dev
	}

	server := ui.NewServer(ui.Config{
		Store:         cmdCtx.Store,
		Port:          port,
		Watch:         watch,
		Dev:           dev,
		SessionSecret: cfg.SessionSecret,
		LoadTimeout:   cfg.LoadTimeout,
		ViewTTL:       cfg.ViewTTL,
		Logger:        cmdCtx.Logger,
		StaticDir:     resources.Dir(),
	})

	// Open browser if configured
	if autoOpen {
		url := fmt.Sprintf("http://localhost:%d", port)
		go openBrowser(url)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Starting contacts on http://localhost:%d (%s backend)\n", port, cfg.Backend)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop")

	return server.Serve(cmd.Context())
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url) //nolint:noctx
	case "linux":
		cmd = exec.Command("xdg-open", url) //nolint:noctx
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url) //nolint:noctx
	default:
		return
	}

	_ = cmd.Start()
}
