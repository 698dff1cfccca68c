package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// TimestampFormat is the layout used in decision log timestamps.
const TimestampFormat = "2006-01-02T15:04:05.000Z"

// ReplayFilter holds filtering criteria for run replay.
type ReplayFilter struct {
	RunID string
	From  time.Time // zero value = no lower bound
	To    time.Time // zero value = no upper bound
}

// ReplaySummary holds outcome counts and metadata for a replayed run.
type ReplaySummary struct {
	Total          int     `json:"total"`
	ProceedCount   int     `json:"proceed_count"`
	DeferredCount  int     `json:"deferred_count"`
	ApprovedTotal  int     `json:"approved_total"`
	RejectedTotal  int     `json:"rejected_total"`
	MinConfidence  float64 `json:"min_confidence"`
	FirstTimestamp string  `json:"first_timestamp"`
	LastTimestamp  string  `json:"last_timestamp"`
}

// ReplayResult holds filtered entries and summary for a run replay.
type ReplayResult struct {
	RunID   string        `json:"run_id"`
	Entries []Entry       `json:"entries"`
	Summary ReplaySummary `json:"summary"`
}

// Replay reads the decision log and returns entries matching the filter.
func Replay(path string, filter ReplayFilter) (*ReplayResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open decision log: %w", err)
	}
	defer f.Close()

	result := &ReplayResult{
		RunID: filter.RunID,
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			continue // skip malformed lines
		}

		if entry.RunID != filter.RunID {
			continue
		}

		// Time range filtering
		if !filter.From.IsZero() || !filter.To.IsZero() {
			ts, err := time.Parse(TimestampFormat, entry.Timestamp)
			if err != nil {
				continue // skip unparseable timestamps
			}
			if !filter.From.IsZero() && ts.Before(filter.From) {
				continue
			}
			if !filter.To.IsZero() && ts.After(filter.To) {
				continue
			}
		}

		result.Entries = append(result.Entries, entry)
		updateSummary(&result.Summary, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read decision log: %w", err)
	}

	return result, nil
}

func updateSummary(s *ReplaySummary, entry Entry) {
	s.Total++

	if entry.Deferred {
		s.DeferredCount++
	} else {
		s.ProceedCount++
	}

	s.ApprovedTotal += len(entry.Approved)
	s.RejectedTotal += len(entry.Rejected)

	if s.Total == 1 || entry.Confidence < s.MinConfidence {
		s.MinConfidence = entry.Confidence
	}

	if s.FirstTimestamp == "" {
		s.FirstTimestamp = entry.Timestamp
	}
	s.LastTimestamp = entry.Timestamp
}
