package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"qrpayload/internal/logging"
	"qrpayload/internal/persist"
	"qrpayload/internal/pipeline"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var verbose bool
	var maxDepth int
	var noHistory bool

	ctx := newCommandContext(&configFlag, &verbose, &maxDepth)

	rootCmd := &cobra.Command{
		Use:   "qrpayload <binary-mode> <input-image> <output>",
		Short: "Extract, interpret, and save the payload of a QR code image",
		Long: `Reads the QR symbol in <input-image> and writes its payload to <output>.

With <binary-mode> "true" the payload is classified as a bit-string, base64
(optionally wrapping a bit-string), or raw text, and the decoded bytes are
written. Any other value writes the extracted text unchanged.

A <binary-mode> value that names a subcommand (inspect, history, status,
config, help, completion) selects that subcommand instead. Put "--" before
the arguments to pass such a value as text mode.`,
		Example:       "  qrpayload true scan.png payload.bin\n  qrpayload false scan.png payload.txt\n  qrpayload -- status scan.png payload.txt",
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			req := pipeline.Request{
				Mode:       persist.ParseMode(args[0]),
				ImagePath:  args[1],
				OutputPath: args[2],
			}
			logger, err := ctx.logger()
			if err != nil {
				return err
			}

			opts := []pipeline.Option{pipeline.WithLogger(logger)}
			if cfg.History.Enabled && !noHistory {
				store, closeStore, err := ctx.openHistory()
				if err != nil {
					logger.Warn("run history unavailable", logging.Error(err))
				} else {
					defer closeStore()
					opts = append(opts, pipeline.WithRecorder(store))
				}
			}

			result, err := pipeline.NewFromConfig(cfg, opts...).Run(cmd.Context(), req)
			if err != nil {
				if state, ok := pipeline.FailedState(err); ok {
					return fmt.Errorf("run %s stopped after %s: %w", result.RunID, state, err)
				}
				return err
			}
			ctx.pruneHistory(cmd.Context(), logger)

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d bytes (%s) to %s\n", result.Bytes, resultLabel(result), result.Output)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().IntVar(&maxDepth, "max-depth", 0, "Maximum base64 layers wrapping a bit-string (overrides config)")
	rootCmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record this run in the history database")

	rootCmd.AddCommand(newInspectCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newStatusCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

func resultLabel(result pipeline.Result) string {
	if result.Mode == persist.Text {
		return "text"
	}
	if result.Layers > 1 {
		return fmt.Sprintf("%s, %d layers", result.Kind, result.Layers)
	}
	return result.Kind.String()
}
