package audit

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const separator = "──────────────────────────────────────────────────────────────────"

// FormatTimeline renders a ReplayResult as a human-readable text timeline.
func FormatTimeline(result *ReplayResult) string {
	if len(result.Entries) == 0 {
		return fmt.Sprintf("Run: %s | No entries found.\n", result.RunID)
	}

	var b strings.Builder

	// Header
	first := result.Summary.FirstTimestamp
	last := result.Summary.LastTimestamp
	firstTime := formatDateRange(first)
	lastTime := formatTimeOnly(last)
	b.WriteString(fmt.Sprintf("Run: %s | %s–%s UTC\n", result.RunID, firstTime, lastTime))
	b.WriteString(separator + "\n")

	// Entries
	for _, e := range result.Entries {
		ts := formatTimeOnly(e.Timestamp)
		outcome := "PROCEED"
		if e.Deferred {
			outcome = "DEFER"
		}
		conf := fmt.Sprintf("%.2f", e.Confidence)
		reason := truncate(e.Reason, 40)

		b.WriteString(fmt.Sprintf("%-10s %-12s %-8s %-5s %-40s\n",
			ts, e.Category, outcome, conf, reason))
	}

	// Footer
	b.WriteString(separator + "\n")
	b.WriteString(formatSummary(result.Summary))

	return b.String()
}

// FormatJSON renders a ReplayResult as indented JSON.
func FormatJSON(result *ReplayResult) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal replay result: %w", err)
	}
	return string(data), nil
}

func formatDateRange(ts string) string {
	t, err := time.Parse(TimestampFormat, ts)
	if err != nil {
		return ts
	}
	return t.Format("2006-01-02 15:04:05")
}

func formatTimeOnly(ts string) string {
	t, err := time.Parse(TimestampFormat, ts)
	if err != nil {
		return ts
	}
	return t.Format("15:04:05")
}

func formatSummary(s ReplaySummary) string {
	parts := []string{}
	if s.ProceedCount > 0 {
		parts = append(parts, fmt.Sprintf("%d proceed", s.ProceedCount))
	}
	if s.DeferredCount > 0 {
		parts = append(parts, fmt.Sprintf("%d defer", s.DeferredCount))
	}
	if s.RejectedTotal > 0 {
		parts = append(parts, fmt.Sprintf("%d rejected actions", s.RejectedTotal))
	}

	return fmt.Sprintf("Summary: %s | Min confidence: %.2f\n",
		strings.Join(parts, ", "), s.MinConfidence)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
