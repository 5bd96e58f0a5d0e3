package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"qrpayload/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check that qrpayload can record runs and write logs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			lines := renderSectionHeader("Configuration", colorize)
			lines = append(lines,
				renderStatusLine("Max depth", statusInfo, fmt.Sprintf("%d", cfg.Decode.MaxDepth), colorize),
				renderStatusLine("Output mode", statusInfo, fmt.Sprintf("%04o", cfg.OutputFileMode()), colorize),
				renderStatusLine("History", statusInfo, enabledLabel(cfg.History.Enabled), colorize),
			)
			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Preflight", colorize)...)

			results := preflight.RunAll(cmd.Context(), cfg)
			lines = append(lines, preflightLines(results, colorize)...)
			for _, line := range lines {
				fmt.Fprintln(out, line)
			}

			for _, r := range results {
				if !r.Passed {
					return fmt.Errorf("preflight checks failed")
				}
			}
			return nil
		},
	}
}

func enabledLabel(value bool) string {
	if value {
		return "enabled"
	}
	return "disabled"
}
