package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/garnizeh/placement/api"
	"github.com/garnizeh/placement/internal/config"
	"github.com/garnizeh/placement/internal/db"
	"github.com/garnizeh/placement/internal/repository/sqlite"
	"github.com/garnizeh/placement/internal/seed"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "portal: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "portal",
		Short:        "Campus placement portal server",
		SilenceUsage: true,
	}
	cmd.AddCommand(
		newServeCmd(),
		newSeedCmd(),
	)
	return cmd
}

func newServeCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the portal HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "Path to config YAML file")
	return cmd
}

func newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed file utilities",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check [file]",
		Short: "Validate a seed file against the schema (embedded default when no file given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			data, err := seed.Load(cmd.Context(), path)
			if err != nil {
				return err
			}
			fmt.Printf("seed ok: %d users, %d jobs\n", len(data.Users), len(data.Jobs))
			return nil
		},
	})
	return cmd
}

func runServe(ctx context.Context, configPath string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log.Printf("Starting placement portal version %s (built at %s)", version, buildTime)

	data, err := seed.Load(ctx, cfg.SeedPath)
	if err != nil {
		return fmt.Errorf("load seed: %w", err)
	}

	conn, err := db.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}

	repo := sqlite.New(conn, nil)
	if err := repo.Bootstrap(ctx); err != nil {
		conn.Close()
		return fmt.Errorf("bootstrap schema: %w", err)
	}
	if err := repo.Seed(ctx, data); err != nil {
		conn.Close()
		return fmt.Errorf("seed store: %w", err)
	}
	log.Printf("Seeded %d users and %d jobs", len(data.Users), len(data.Jobs))

	handler := api.SetupRoutes(cfg, version, buildTime, conn)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.APITimeout,
		WriteTimeout: cfg.APITimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		conn.Close()
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		conn.Close()
		return fmt.Errorf("forced shutdown: %w", err)
	}

	if err := conn.Close(); err != nil {
		log.Printf("Error closing DB: %v", err)
	}

	log.Println("Server exited")
	return nil
}
