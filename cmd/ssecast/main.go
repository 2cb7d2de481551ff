package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/karwey/ssecast/internal/app"
	"github.com/karwey/ssecast/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// rootFlags holds the command-line values that can override the
// environment-derived configuration.
type rootFlags struct {
	dir      string
	host     string
	port     int
	logLevel string
}

func (f *rootFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.dir, "dir", "./static", "directory to serve static files from")
	fs.StringVar(&f.host, "host", "localhost", "host to bind to")
	fs.IntVar(&f.port, "port", 8080, "port to bind to")
	fs.StringVar(&f.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

// apply overlays the flags the user actually set onto cfg. Flags left
// at their defaults do not clobber values coming from the environment.
func (f *rootFlags) apply(fs *pflag.FlagSet, cfg *config.Config) {
	if fs.Changed("dir") {
		cfg.StaticDir = f.dir
	}
	if fs.Changed("host") {
		cfg.Host = f.host
	}
	if fs.Changed("port") {
		cfg.Port = f.port
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "ssecast",
		Short: "Static file server with an SSE broadcast console",
		Long: `ssecast serves a directory of static files and exposes a
Server-Sent-Events stream at /events. Lines typed into the console are
broadcast to every connected browser, which makes it easy to trigger
UI-visible events by hand while testing a front end.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			flags.apply(cmd.Flags(), cfg)

			level := slog.LevelInfo
			switch cfg.LogLevel {
			case "debug":
				level = slog.LevelDebug
			case "warn":
				level = slog.LevelWarn
			case "error":
				level = slog.LevelError
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return app.Run(ctx, cfg, os.Stdin)
		},
	}

	flags.register(cmd.Flags())

	return cmd
}
