// (c) 2023-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ava-labs/contractvm/contractvm"

	log "github.com/inconshreveable/log15"
)

const shutdownTimeout = 5 * time.Second

type serveOptions struct {
	addr string
}

func newServeCommand(cfg *config) *cobra.Command {
	o := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Host the JSON-RPC service over the sandbox ledger",
		Long:  "Serve mounts the runtime service at /rpc and the static value codec at /static, until interrupted.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.run(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&o.addr, "addr", "127.0.0.1:8000", "address to listen on")
	return cmd
}

func (o *serveOptions) run(cmd *cobra.Command, cfg *config) error {
	rt, err := cfg.openRuntime()
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	handler, err := contractvm.NewHTTPHandler(rt)
	if err != nil {
		return err
	}
	staticHandler, err := contractvm.NewStaticHTTPHandler()
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/rpc", handler)
	mux.Handle("/static", staticHandler)

	server := &http.Server{
		Addr:    o.addr,
		Handler: mux,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()
	log.Info("serving", "addr", o.addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
