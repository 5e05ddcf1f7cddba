package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/meridian-group/intake-cli/internal/confidence"
	"github.com/meridian-group/intake-cli/internal/extractor"
	"github.com/meridian-group/intake-cli/internal/reader"
)

var (
	batchFields     []string
	batchFieldsFile string
	batchLimit      int
)

// batchLine is one JSON line of batch output.
type batchLine struct {
	RunID      string             `json:"run_id"`
	File       string             `json:"file"`
	Fields     map[string]string  `json:"consolidated_results"`
	Confidence *confidence.Report `json:"confidence,omitempty"`
	Error      string             `json:"error,omitempty"`
}

var batchCmd = &cobra.Command{
	Use:   "batch DIR",
	Short: "Extract fields from every supported document in a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		lib, err := loadLibrary(batchFieldsFile)
		if err != nil {
			return err
		}

		fields := batchFields
		if len(fields) == 0 {
			fields = cfg.Extract.DefaultFields
		}

		entries, err := os.ReadDir(args[0])
		if err != nil {
			return eris.Wrap(err, "read batch directory")
		}

		var paths []string
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			path := filepath.Join(args[0], entry.Name())
			if reader.Supported(path) {
				paths = append(paths, path)
			}
			if batchLimit > 0 && len(paths) >= batchLimit {
				break
			}
		}

		runID := uuid.NewString()
		engine := extractor.New(lib)
		scorer := confidence.NewScorer(lib)
		enc := json.NewEncoder(os.Stdout)

		var failed atomic.Int64
		g, ctx := errgroup.WithContext(ctx)
		g.SetLimit(cfg.Batch.MaxConcurrentFiles)

		lines := make(chan batchLine, len(paths))
		for _, path := range paths {
			path := path
			g.Go(func() error {
				if ctx.Err() != nil {
					return ctx.Err()
				}

				text, err := reader.Read(path)
				if err != nil {
					failed.Add(1)
					zap.L().Warn("batch file failed", zap.String("file", path), zap.Error(err))
					lines <- batchLine{RunID: runID, File: path, Error: err.Error()}
					return nil
				}

				out := engine.Extract(text, fields)
				report := scorer.Score(confidence.Flat(out.Consolidated), nil, nil)
				lines <- batchLine{
					RunID:      runID,
					File:       path,
					Fields:     out.Consolidated,
					Confidence: &report,
				}
				return nil
			})
		}

		err = g.Wait()
		close(lines)
		for line := range lines {
			if encErr := enc.Encode(line); encErr != nil {
				return eris.Wrap(encErr, "encode batch line")
			}
		}
		if err != nil {
			return err
		}

		zap.L().Info("batch complete",
			zap.String("run_id", runID),
			zap.Int("files", len(paths)),
			zap.Int64("failed", failed.Load()),
		)
		fmt.Fprintf(os.Stderr, "processed %d files (%d failed)\n", len(paths), failed.Load())
		return nil
	},
}

func init() {
	batchCmd.Flags().StringSliceVar(&batchFields, "fields", nil, "field names to extract (defaults to extract.default_fields)")
	batchCmd.Flags().StringVar(&batchFieldsFile, "fields-file", "", "YAML file with custom field definitions")
	batchCmd.Flags().IntVar(&batchLimit, "limit", 0, "max number of files to process (0 = no limit)")
	rootCmd.AddCommand(batchCmd)
}
