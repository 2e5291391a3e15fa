// Package cli provides CLI output utilities for driftlens.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/driftlens/driftlens/internal/models"
	"github.com/driftlens/driftlens/internal/scanner"
	"github.com/driftlens/driftlens/pkg/utils"
)

// ReportOutputFormat is the format for drift report output.
type ReportOutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText ReportOutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON ReportOutputFormat = "json"
)

// WriteScanResult writes a scan result to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteScanResult(w io.Writer, result *scanner.Result, format ReportOutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	default:
		writeScanResultText(w, result)
		return nil
	}
}

func writeScanResultText(w io.Writer, result *scanner.Result) {
	drifted := 0
	for i := range result.Pairs {
		if result.Pairs[i].DriftScore > 0 {
			drifted++
		}
	}
	fmt.Fprintf(w, "\nScanned %d files in %dms: %d pairs, %d drifted, %d files failed\n\n",
		result.Files, result.Duration.Milliseconds(), len(result.Pairs), drifted, result.Failed)
	for i := range result.Pairs {
		writeOnePair(w, &result.Pairs[i])
	}
}

// WritePairs writes extracted pairs (single file or inline scan) to w.
func WritePairs(w io.Writer, pairs []models.DocCodePair, format ReportOutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(pairs)
	default:
		fmt.Fprintf(w, "\nFound %d documented declarations\n\n", len(pairs))
		for i := range pairs {
			writeOnePair(w, &pairs[i])
		}
		return nil
	}
}

func writeOnePair(w io.Writer, pair *models.DocCodePair) {
	fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
	name := pair.CodeSignature.Name
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Fprintf(w, "[%s] %s:%d | %s | Drift: %.2f\n",
		pair.CodeSignature.Type, pair.FilePath, pair.CodeRange.Start.Line+1, name, pair.DriftScore)
	if pair.IsReviewed {
		fmt.Fprintln(w, "Reviewed: yes")
	}
	for _, reason := range pair.DriftReasons {
		fmt.Fprintf(w, "  - [%s/%s] %s\n", reason.Type, reason.Severity, reason.Message)
	}
	fmt.Fprintf(w, "\n%s\n", utils.Truncate(pair.CodeContent, 200))
	fmt.Fprintln(w)
}

// PrintScanResult prints a scan result to stdout in text format.
func PrintScanResult(result *scanner.Result) {
	_ = WriteScanResult(os.Stdout, result, OutputText)
}
