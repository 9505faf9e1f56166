package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/moment/internal/core/quote"
	"github.com/hay-kot/moment/internal/printer"
	"github.com/hay-kot/moment/internal/source"
)

// collectionPath is where the served collection is mounted.
const collectionPath = "/quotes.json"

type ServeCmd struct {
	flags *Flags
	addr  string
}

// NewServeCmd creates a new serve command.
func NewServeCmd(flags *Flags) *ServeCmd {
	return &ServeCmd{flags: flags}
}

// Register adds the serve command to the application.
func (cmd *ServeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "serve",
		Usage:     "Serve the local quote collection over HTTP",
		UsageText: "moment serve [options]",
		Description: `Hosts the configured local collection at /quotes.json with caching
disabled, so another machine can point its source at this one.

Rotation is not performed by the server: every request returns the whole
collection.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address (defaults to serve.addr from config)",
				Sources:     cli.EnvVars("MOMENT_SERVE_ADDR"),
				Destination: &cmd.addr,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ServeCmd) run(ctx context.Context, _ *cli.Command) error {
	cfg := cmd.flags.Config
	if source.IsURL(cfg.Source) {
		return fmt.Errorf("serve needs a local source, %q is a URL", cfg.Source)
	}

	addr := cmd.addr
	if addr == "" {
		addr = cfg.Serve.Addr
	}

	log := cmd.flags.Logger.With().Str("component", "serve").Logger()
	srv := &http.Server{
		Addr:              addr,
		Handler:           newServeRouter(source.NewFile(cfg.Source), log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	printer.Ctx(ctx).Infof("Serving %s at http://%s%s", cfg.Source, addr, collectionPath)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newServeRouter returns the collection host handler. The collection is
// read from src on every request.
func newServeRouter(src source.Source, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(noStore)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get(collectionPath, func(w http.ResponseWriter, r *http.Request) {
		quotes, err := src.Fetch(r.Context())
		if err == nil {
			err = quote.Validate(quotes)
		}
		if err != nil {
			log.Error().Err(err).Msg("load collection")
			http.Error(w, "collection unavailable", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if err := json.NewEncoder(w).Encode(quotes); err != nil {
			log.Warn().Err(err).Msg("write collection")
		}
	})

	return r
}

func noStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		next.ServeHTTP(w, r)
	})
}

func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			log.Debug().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", time.Since(start)).
				Msg("request")
		})
	}
}
