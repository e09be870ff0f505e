package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/solatis/graphfilter/internal/core/api"
	"github.com/solatis/graphfilter/internal/core/server"
	"github.com/solatis/graphfilter/internal/graph"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start gRPC filter service",
	Long: `Serve loads the graph from the database (or from --graph-file) and answers
Match and Explain calls over gRPC. SIGHUP reloads the graph.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("host", "0.0.0.0", "gRPC server host")
	serveCmd.Flags().Int("port", 50061, "gRPC server port")
	serveCmd.Flags().String("graph-file", "", "serve a YAML graph document instead of the database")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("host") {
		cfg.Host, _ = cmd.Flags().GetString("host")
	}
	if cmd.Flags().Changed("port") {
		cfg.Port, _ = cmd.Flags().GetInt("port")
	}
	if cmd.Flags().Changed("graph-file") {
		cfg.GraphFile, _ = cmd.Flags().GetString("graph-file")
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	var loader api.GraphLoader
	if cfg.GraphFile != "" {
		path := cfg.GraphFile
		loader = api.LoaderFunc(func(context.Context) (*graph.Graph, error) {
			return graph.LoadFile(path)
		})
		logger.Info("serving graph file", zap.String("path", path))
	} else {
		database, store, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer database.Close()
		loader = store
		logger.Info("serving graph database", zap.String("database", cfg.RedactedDatabaseURL()))
	}

	service, err := api.NewFilterService(loader, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	if err := service.Reload(ctx); err != nil {
		return err
	}

	grpcServer, err := server.NewGRPCServer(cfg, service, logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("starting graphfilter",
		zap.String("version", Version),
		zap.String("addr", cfg.Addr()),
	)
	errChan := make(chan error, 1)
	go func() {
		errChan <- grpcServer.Start(ctx)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigChan)

	for {
		select {
		case err := <-errChan:
			return err
		case sig := <-sigChan:
			if sig == syscall.SIGHUP {
				// a failed reload keeps the previous snapshot
				_ = service.Reload(ctx)
				continue
			}
			logger.Info("shutting down gracefully", zap.String("signal", sig.String()))
			return grpcServer.Shutdown(ctx)
		}
	}
}
