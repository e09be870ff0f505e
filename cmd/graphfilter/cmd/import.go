package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/solatis/graphfilter/internal/graph"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the stored graph with a YAML or JSON document",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the stored graph as a YAML document",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(importCmd, exportCmd)
	exportCmd.Flags().StringP("output", "o", "", "output file (default stdout)")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open graph document: %w", err)
	}
	defer f.Close()

	doc, err := graph.ReadDocument(f)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	database, store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	nodes, links, err := store.Save(ctx, doc)
	if err != nil {
		return err
	}

	logger.Info("graph imported",
		zap.String("file", args[0]),
		zap.Int("nodes", nodes),
		zap.Int("links", links),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d nodes, %d links\n", nodes, links)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	database, store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	doc, err := store.LoadDocument(ctx)
	if err != nil {
		return err
	}
	data, err := doc.Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode graph: %w", err)
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	return os.WriteFile(output, data, 0o644)
}
