package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"phonebook/internal/devserver"
	"phonebook/internal/logging"
	"phonebook/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	serverAddr  string
	serverStore string
	serverSeed  bool
)

// devserverCmd runs a local GraphQL server for the client
var devserverCmd = &cobra.Command{
	Use:   "devserver",
	Short: "Run a local phonebook GraphQL server",
	Long: `Serves allPersons, personCount, findPerson and addPerson on /graphql,
with /healthz and Prometheus metrics on /metrics.

--store selects the backend:
  memory                   in-memory (default)
  ./phonebook.db           SQLite file
  postgres://user@host/db  Postgres`,
	Args: cobra.NoArgs,
	RunE: runDevServer,
}

func init() {
	devserverCmd.Flags().StringVar(&serverAddr, "addr", "", "Listen address (overrides config)")
	devserverCmd.Flags().StringVar(&serverStore, "store", "", "Store DSN (overrides config)")
	devserverCmd.Flags().BoolVar(&serverSeed, "seed", true, "Load sample persons on start")
}

func runDevServer(cmd *cobra.Command, args []string) error {
	opts := cfg.DevServer
	if serverAddr != "" {
		opts.Addr = serverAddr
	}
	if serverStore != "" {
		opts.Store = serverStore
	}
	if cmd.Flags().Changed("seed") {
		opts.Seed = serverSeed
	}

	// Category loggers go to the console for the server.
	logging.UseCore(logger.Core())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, opts.Store)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	if opts.Seed {
		if err := store.Seed(ctx, st); err != nil {
			return fmt.Errorf("failed to seed store: %w", err)
		}
	}

	srv, err := devserver.New(st, devserver.Options{
		RateLimitRPS:   opts.RateLimitRPS,
		RateLimitBurst: opts.RateLimitBurst,
	})
	if err != nil {
		return err
	}

	logger.Info("devserver starting", zap.String("addr", opts.Addr), zap.String("store", opts.Store))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(opts.Addr)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
