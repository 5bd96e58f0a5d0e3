package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"qrpayload/internal/bitstring"
	"qrpayload/internal/cidutil"
	"qrpayload/internal/imagefile"
	"qrpayload/internal/payload"
	"qrpayload/internal/services/zxing"
)

const previewBytes = 16

type inspectReport struct {
	Source    string `json:"source"`
	Raw       string `json:"raw"`
	Kind      string `json:"kind"`
	Layers    int    `json:"layers"`
	Bytes     int    `json:"bytes"`
	ContentID string `json:"content_id,omitempty"`
	Hex       string `json:"hex,omitempty"`
	Bits      string `json:"bits,omitempty"`
	Verified  *bool  `json:"verified,omitempty"`
	Error     string `json:"error,omitempty"`
}

var errContentMismatch = errors.New("decoded payload does not match content id")

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var textFlag string
	var useText bool
	var jsonOutput bool
	var verifyID string

	cmd := &cobra.Command{
		Use:   "inspect [image]",
		Short: "Show how a payload would be interpreted without writing it",
		Args: func(cmd *cobra.Command, args []string) error {
			useText = cmd.Flags().Changed("text")
			if useText && len(args) > 0 {
				return errors.New("pass either an image or --text, not both")
			}
			if !useText && len(args) != 1 {
				return errors.New("inspect requires an image path or --text")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			source := "text"
			raw := textFlag
			if !useText {
				source = args[0]
				img, _, err := imagefile.Load(args[0])
				if err != nil {
					return err
				}
				extractor := zxing.New(
					zxing.WithTryHarder(cfg.Decode.TryHarder),
					zxing.WithCharacterSet(cfg.Decode.CharacterSet),
				)
				raw, err = extractor.Extract(cmd.Context(), img)
				if err != nil {
					return err
				}
			}

			report, reportErr := buildInspectReport(payload.NewDecoder(cfg.Decode.MaxDepth), source, raw, verifyID)
			if jsonOutput {
				if err := writeJSON(cmd, report); err != nil {
					return err
				}
			} else {
				printInspectReport(cmd.OutOrStdout(), report)
			}
			return reportErr
		},
	}

	cmd.Flags().StringVar(&textFlag, "text", "", "Inspect this payload text instead of an image")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringVar(&verifyID, "verify", "", "Fail unless the decoded bytes match this content id")
	return cmd
}

// buildInspectReport interprets raw and, when verifyID is set, checks the
// decoded bytes against it. The report is filled in even when an error is
// returned.
func buildInspectReport(decoder payload.Decoder, source, raw, verifyID string) (inspectReport, error) {
	res, err := decoder.Interpret(raw)
	report := inspectReport{
		Source: source,
		Raw:    raw,
		Kind:   res.Kind.String(),
		Layers: res.Layers,
	}
	if err != nil {
		report.Error = err.Error()
		return report, err
	}
	report.Bytes = len(res.Data)
	report.ContentID = cidutil.CIDv1RawSHA256(res.Data)
	preview := res.Data
	if len(preview) > previewBytes {
		preview = preview[:previewBytes]
	}
	report.Hex = hex.EncodeToString(preview)
	report.Bits = bitstring.Encode(preview)

	if verifyID = strings.TrimSpace(verifyID); verifyID != "" {
		ok, err := cidutil.Verify(verifyID, res.Data)
		if err != nil {
			err = fmt.Errorf("parse content id %q: %w", verifyID, err)
			report.Error = err.Error()
			return report, err
		}
		report.Verified = &ok
		if !ok {
			err = fmt.Errorf("%w %s", errContentMismatch, verifyID)
			report.Error = err.Error()
			return report, err
		}
	}
	return report, nil
}

func printInspectReport(out io.Writer, report inspectReport) {
	fmt.Fprintf(out, "Source:     %s\n", report.Source)
	fmt.Fprintf(out, "Raw:        %q\n", truncate(report.Raw, 80))
	fmt.Fprintf(out, "Kind:       %s\n", report.Kind)
	if report.Layers > 0 {
		fmt.Fprintf(out, "Layers:     %d\n", report.Layers)
	}
	if report.Error != "" && report.ContentID == "" {
		fmt.Fprintf(out, "Error:      %s\n", report.Error)
		return
	}
	fmt.Fprintf(out, "Bytes:      %d\n", report.Bytes)
	fmt.Fprintf(out, "Content ID: %s\n", report.ContentID)
	if report.Verified != nil {
		fmt.Fprintf(out, "Verified:   %t\n", *report.Verified)
	}
	if report.Hex != "" {
		suffix := ""
		if report.Bytes > previewBytes {
			suffix = " ..."
		}
		fmt.Fprintf(out, "Hex:        %s%s\n", report.Hex, suffix)
		fmt.Fprintf(out, "Bits:       %s%s\n", groupBits(report.Bits), suffix)
	}
	if report.Error != "" {
		fmt.Fprintf(out, "Error:      %s\n", report.Error)
	}
}

func groupBits(bits string) string {
	var b strings.Builder
	for i := 0; i < len(bits); i += 8 {
		if i > 0 {
			b.WriteByte(' ')
		}
		end := i + 8
		if end > len(bits) {
			end = len(bits)
		}
		b.WriteString(bits[i:end])
	}
	return b.String()
}

func truncate(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit-3]) + "..."
}
