package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	"github.com/moeezahmadkhan/sumero-health-archive/internal/api"
	"github.com/moeezahmadkhan/sumero-health-archive/internal/config"
	"github.com/moeezahmadkhan/sumero-health-archive/internal/journal"
	"github.com/moeezahmadkhan/sumero-health-archive/internal/rpc"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve decisions over HTTP and gRPC",
		Long: `Start the HTTP and gRPC servers.

Settings come from --config (YAML) and SUMERO_* environment variables.
An empty http_addr or grpc_addr disables that listener.

Examples:
  sumero serve
  sumero serve --config /etc/sumero.yaml
  SUMERO_JOURNAL_ENABLED=false sumero serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg)
		},
	}

	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "YAML config file")

	return cmd
}

func runServe(ctx context.Context, cfg *config.Config) error {
	gin.SetMode(cfg.GinMode)

	// Interfaces stay nil, not typed-nil, when journaling is off.
	var (
		store    api.Store
		recorder rpc.Recorder
	)
	if cfg.JournalEnabled {
		j, err := journal.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open journal %s: %w", cfg.DBPath, err)
		}
		defer j.Close()
		store, recorder = j, j
		log.Printf("[SERVE] journal: %s", cfg.DBPath)
	} else {
		log.Printf("[SERVE] journal disabled")
	}

	errCh := make(chan error, 2)

	var httpSrv *http.Server
	if cfg.HTTPAddr != "" {
		httpSrv = &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           api.NewServer(store).Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			log.Printf("[SERVE] http listening on %s", cfg.HTTPAddr)
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("http: %w", err)
			}
		}()
	}

	var grpcSrv *grpc.Server
	if cfg.GRPCAddr != "" {
		lis, err := net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			if httpSrv != nil {
				httpSrv.Close()
			}
			return fmt.Errorf("grpc listen %s: %w", cfg.GRPCAddr, err)
		}
		grpcSrv = grpc.NewServer()
		rpc.Register(grpcSrv, rpc.NewServer(recorder))
		go func() {
			log.Printf("[SERVE] grpc listening on %s", cfg.GRPCAddr)
			if err := grpcSrv.Serve(lis); err != nil {
				errCh <- fmt.Errorf("grpc: %w", err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		log.Printf("[SERVE] shutting down")
	case runErr = <-errCh:
		log.Printf("[SERVE] %v", runErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if httpSrv != nil {
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[SERVE] http shutdown: %v", err)
		}
	}
	if grpcSrv != nil {
		grpcSrv.GracefulStop()
	}
	return runErr
}
