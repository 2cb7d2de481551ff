// Package app wires the pieces together: static dir bootstrap, the SSE
// hub, the HTTP server, the operator console, and graceful shutdown.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/time/rate"

	"github.com/karwey/ssecast/internal/config"
	"github.com/karwey/ssecast/internal/event"
	"github.com/karwey/ssecast/internal/handler"
	"github.com/karwey/ssecast/internal/repl"
	"github.com/karwey/ssecast/internal/sse"
)

// Run binds a listener on cfg.Addr() and serves until the context is
// cancelled or the operator quits. console is the operator input
// stream, os.Stdin in production.
func Run(ctx context.Context, cfg *config.Config, console io.Reader) error {
	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return Serve(ctx, cfg, console, ln)
}

// Serve runs the server on an existing listener. It returns once the
// listener is closed and the shutdown grace period has been honored.
func Serve(ctx context.Context, cfg *config.Config, console io.Reader, ln net.Listener) error {
	// The console's quit command and an OS signal both land on the
	// same cancellation.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	root, resolvedRoot, err := ensureStaticDir(cfg.StaticDir)
	if err != nil {
		ln.Close()
		return err
	}

	hub := sse.New()

	staticRL := handler.NewRateLimiter(rate.Limit(cfg.StaticRate), cfg.StaticBurst)
	defer staticRL.Stop()

	h := handler.New(cfg, hub, root, resolvedRoot)

	srv := &http.Server{
		Handler: h.Routes(staticRL),
		// Request contexts descend from the app context, so
		// in-flight SSE streams observe shutdown and exit.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	// Events cross from the blocking console goroutine to the
	// serving side over this channel.
	events := make(chan event.Event, 16)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case e := <-events:
				hub.Broadcast(e)
			}
		}
	}()

	// The console goroutine blocks on reads; it is abandoned at
	// process exit the same way a daemon thread would be.
	go func() {
		if err := repl.Run(ctx, console, os.Stdout, events, cancel); err != nil {
			slog.Error("console loop failed", "error", err)
		}
	}()

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		slog.Info("shutting down server", "grace", cfg.ShutdownGrace)
		graceCtx, graceCancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
		defer graceCancel()
		if err := srv.Shutdown(graceCtx); err != nil {
			slog.Warn("shutdown grace period elapsed, closing remaining connections", "error", err)
			srv.Close()
		}
	}()

	slog.Info("server listening", "addr", ln.Addr().String(), "dir", root)
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-shutdownDone

	return nil
}

// ensureStaticDir resolves dir to an absolute path, creating it when
// missing, and returns both the absolute and symlink-resolved forms.
func ensureStaticDir(dir string) (root, resolved string, err error) {
	root, err = filepath.Abs(dir)
	if err != nil {
		return "", "", fmt.Errorf("resolve static dir: %w", err)
	}

	fi, err := os.Stat(root)
	switch {
	case errors.Is(err, os.ErrNotExist):
		slog.Info("creating static directory", "dir", root)
		if err := os.MkdirAll(root, 0755); err != nil {
			return "", "", fmt.Errorf("create static dir: %w", err)
		}
	case err != nil:
		return "", "", err
	case !fi.IsDir():
		return "", "", fmt.Errorf("static path is not a directory: %s", root)
	}

	resolved, err = filepath.EvalSymlinks(root)
	if err != nil {
		return "", "", fmt.Errorf("resolve static dir symlinks: %w", err)
	}
	return root, resolved, nil
}
