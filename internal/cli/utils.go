// Package cli provides CLI utilities for Kotae.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/hyperjump/kotae/internal/models"
)

// OutputFormat is the format for CLI output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat maps a -output flag value to an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch s {
	case "json":
		return OutputJSON, nil
	case "text", "":
		return OutputText, nil
	default:
		return OutputText, fmt.Errorf("unknown output format %q; use text or json", s)
	}
}

// WriteAskResult writes an answer to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteAskResult(w io.Writer, result *models.AskResult, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	default:
		writeAskResultText(w, result)
		return nil
	}
}

func writeAskResultText(w io.Writer, result *models.AskResult) {
	fmt.Fprintf(w, "\n%s\n\n", result.Answer)
	if result.MatchedQuestion != nil {
		fmt.Fprintf(w, "Matched: %q (confidence %.4f)\n", *result.MatchedQuestion, result.Confidence)
	} else {
		fmt.Fprintf(w, "No FAQ matched (best score %.4f, source: %s)\n", result.Confidence, result.Source)
	}
	fmt.Fprintf(w, "Query time: %dms\n", result.QueryTimeMs)
}

// WriteFAQList writes a list of FAQs to w in the given format.
func WriteFAQList(w io.Writer, faqs []*models.FAQ, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{"faqs": faqs, "total": len(faqs)})
	default:
		writeFAQListText(w, faqs)
		return nil
	}
}

func writeFAQListText(w io.Writer, faqs []*models.FAQ) {
	fmt.Fprintf(w, "\n%d FAQ(s)\n\n", len(faqs))
	for _, faq := range faqs {
		fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
		fmt.Fprintf(w, "ID: %s\n", faq.ID)
		fmt.Fprintf(w, "Q: %s\n", faq.Question)
		fmt.Fprintf(w, "A: %s\n", Truncate(faq.Answer, 200))
		fmt.Fprintln(w)
	}
}

// PrintAskResult prints an answer to stdout in text format.
func PrintAskResult(result *models.AskResult) {
	_ = WriteAskResult(os.Stdout, result, OutputText)
}

// Truncate truncates s to maxLen and appends "..." if truncated.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
