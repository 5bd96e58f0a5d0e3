package main

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"qrpayload/internal/history"
	"qrpayload/internal/preflight"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("State directory", statusError, "missing", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "State directory:", "[ERROR] missing")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("History", statusOK, "ready", true)
	if !strings.HasPrefix(got, ansiGreen) {
		t.Fatalf("expected green prefix, got %q", got)
	}
	if !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected reset suffix, got %q", got)
	}
}

func TestPreflightLines(t *testing.T) {
	results := []preflight.Result{
		{Name: "State directory", Passed: true, Detail: "/tmp/state (read/write ok)"},
		{Name: "Log file", Passed: false, Detail: "/x (error: is a directory)"},
	}
	lines := preflightLines(results, false)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "[OK]") || !strings.Contains(lines[1], "[ERROR]") {
		t.Fatalf("unexpected lines %q", lines)
	}
	if !strings.Contains(lines[2], "1 of 2 checks failed") {
		t.Fatalf("unexpected summary %q", lines[2])
	}

	if got := preflightLines(nil, false); len(got) != 1 || !strings.Contains(got[0], "[WARN]") {
		t.Fatalf("expected warn summary for no checks, got %q", got)
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatalf("expected non-file writer to disable color")
	}
}

func TestHistoryRowsShowFailureDetail(t *testing.T) {
	rows := historyRows([]history.Run{
		{Mode: "binary", State: "failed", Input: "/a/b/scan.png", ErrorKind: "length", Error: "bad digits"},
		{Mode: "text", State: "persisted", Kind: "text", Bytes: 3, ContentID: "bafk"},
	})
	if rows[0][2] != "-" || rows[0][5] != "scan.png" || rows[0][7] != "length: bad digits" {
		t.Fatalf("unexpected failure row %q", rows[0])
	}
	if rows[1][7] != "bafk" || rows[1][3] != "3" {
		t.Fatalf("unexpected success row %q", rows[1])
	}
	rendered := renderTable(historyColumns(), rows)
	if !strings.Contains(rendered, "Detail") || !strings.Contains(rendered, "scan.png") {
		t.Fatalf("unexpected table %q", rendered)
	}
}

func TestGroupBitsAndTruncate(t *testing.T) {
	if got := groupBits("0100100001101001"); got != "01001000 01101001" {
		t.Fatalf("groupBits = %q", got)
	}
	if got := truncate("abcdefgh", 5); got != "ab..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("abc", 5); got != "abc" {
		t.Fatalf("truncate short = %q", got)
	}
}
