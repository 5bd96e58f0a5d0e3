package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"qrpayload/internal/history"
	"qrpayload/internal/payload"
)

// textKindLabel is the kind recorded for text-mode runs.
const textKindLabel = "text"

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var kind string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind = strings.TrimSpace(kind)
			if kind != "" && kind != textKindLabel {
				if _, ok := payload.ParseKind(kind); !ok {
					return fmt.Errorf("unknown kind %q (want raw, bitstring, base64, base64+bitstring or text)", kind)
				}
			}

			store, closeStore, err := ctx.openHistory()
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer closeStore()

			runs, err := store.ListByKind(cmd.Context(), kind, limit)
			if err != nil {
				return err
			}

			if jsonOutput {
				if runs == nil {
					runs = []history.Run{}
				}
				return writeJSON(cmd, runs)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			fmt.Fprintln(out, renderTable(historyColumns(), historyRows(runs)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
	cmd.Flags().StringVar(&kind, "kind", "", "Only show runs with this payload kind")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	cmd.AddCommand(newHistoryShowCommand(ctx))
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show a single run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := ctx.openHistory()
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer closeStore()

			id := strings.TrimSpace(args[0])
			run, err := store.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			if run == nil {
				return fmt.Errorf("run %s not found", id)
			}
			if jsonOutput {
				return writeJSON(cmd, run)
			}
			printRun(cmd.OutOrStdout(), *run)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func printRun(out io.Writer, run history.Run) {
	fmt.Fprintf(out, "Run:        %s\n", run.ID)
	fmt.Fprintf(out, "Started:    %s\n", run.StartedAt.Local().Format(time.DateTime))
	fmt.Fprintf(out, "Duration:   %s\n", run.Duration().Round(time.Millisecond))
	fmt.Fprintf(out, "Input:      %s\n", run.Input)
	fmt.Fprintf(out, "Output:     %s\n", run.Output)
	fmt.Fprintf(out, "Mode:       %s\n", run.Mode)
	fmt.Fprintf(out, "State:      %s\n", run.State)
	if run.Kind != "" {
		fmt.Fprintf(out, "Kind:       %s\n", run.Kind)
	}
	if run.Layers > 0 {
		fmt.Fprintf(out, "Layers:     %d\n", run.Layers)
	}
	fmt.Fprintf(out, "Bytes:      %d\n", run.Bytes)
	if run.ContentID != "" {
		fmt.Fprintf(out, "Content ID: %s\n", run.ContentID)
	}
	if !run.Succeeded() {
		fmt.Fprintf(out, "Error:      %s: %s\n", run.ErrorKind, run.Error)
	}
}

func historyColumns() []column {
	return []column{
		{header: "Started"},
		{header: "Mode"},
		{header: "Kind"},
		{header: "Bytes", align: alignRight},
		{header: "State"},
		{header: "Input"},
		{header: "Output"},
		{header: "Detail", maxWidth: 48},
	}
}

func historyRows(runs []history.Run) [][]string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		detail := run.ContentID
		if !run.Succeeded() {
			detail = run.ErrorKind
			if run.Error != "" {
				detail += ": " + run.Error
			}
		}
		kind := run.Kind
		if kind == "" {
			kind = "-"
		}
		rows = append(rows, []string{
			run.StartedAt.Local().Format(time.DateTime),
			run.Mode,
			kind,
			strconv.Itoa(run.Bytes),
			run.State,
			filepath.Base(run.Input),
			run.Output,
			detail,
		})
	}
	return rows
}
