package audit

import (
	"path/filepath"
	"testing"
	"time"
)

// writeTestLog creates a temp decision log with known entries for testing.
func writeTestLog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test-decisions.jsonl")
	log, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer log.Close()

	base := time.Date(2025, 1, 15, 14, 0, 0, 0, time.UTC)

	entries := []Entry{
		{Timestamp: base.Format(TimestampFormat), RunID: "run-aaa", Category: "transaction", Proposed: 3, Approved: []string{"verifyRecipient", "checkGasPrice", "executeTransaction"}, Confidence: 1.0, Reason: "within epistemic boundaries"},
		{Timestamp: base.Add(2 * time.Second).Format(TimestampFormat), RunID: "run-aaa", Category: "message", Proposed: 2, Approved: []string{"respondToMessage", "searchForAnswer"}, Confidence: 1.0, Reason: "within epistemic boundaries"},
		{Timestamp: base.Add(4 * time.Second).Format(TimestampFormat), RunID: "run-bbb", Category: "event", Proposed: 1, Approved: []string{"logEvent"}, Confidence: 1.0, Reason: "within epistemic boundaries"},
		{Timestamp: base.Add(6 * time.Second).Format(TimestampFormat), RunID: "run-aaa", Category: "transaction", Proposed: 3, Approved: []string{"verifyRecipient", "checkGasPrice"}, Rejected: []string{"executeTransaction"}, Confidence: 0.8, Deferred: true, Reason: "ethical limitations: recipient is a known scam address"},
		{Timestamp: base.Add(8 * time.Second).Format(TimestampFormat), RunID: "run-aaa", Category: "transaction", Proposed: 4, Approved: []string{"verifyRecipient", "checkGasPrice", "executeTransaction", "monitorTransaction"}, Confidence: 0.6, Deferred: true, Reason: "confidence 0.60 is below the threshold 0.70"},
		{Timestamp: base.Add(10 * time.Second).Format(TimestampFormat), RunID: "run-aaa", Category: "user_input", Proposed: 0, Confidence: 1.0, Reason: "within epistemic boundaries"},
	}

	for _, e := range entries {
		if err := log.Record(e); err != nil {
			t.Fatal(err)
		}
	}

	return path
}

func TestReplayFiltersByRunID(t *testing.T) {
	path := writeTestLog(t)

	result, err := Replay(path, ReplayFilter{RunID: "run-aaa"})
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Entries) != 5 {
		t.Errorf("expected 5 entries for run-aaa, got %d", len(result.Entries))
	}

	// Verify no entries from run-bbb
	for _, e := range result.Entries {
		if e.RunID != "run-aaa" {
			t.Errorf("unexpected run ID: %s", e.RunID)
		}
	}
}

func TestReplayTimeRangeFrom(t *testing.T) {
	path := writeTestLog(t)

	from := time.Date(2025, 1, 15, 14, 0, 5, 0, time.UTC)
	result, err := Replay(path, ReplayFilter{RunID: "run-aaa", From: from})
	if err != nil {
		t.Fatal(err)
	}

	// Should only include entries at 14:00:06, 14:00:08, 14:00:10
	if len(result.Entries) != 3 {
		t.Errorf("expected 3 entries after from filter, got %d", len(result.Entries))
	}
}

func TestReplayTimeRangeTo(t *testing.T) {
	path := writeTestLog(t)

	to := time.Date(2025, 1, 15, 14, 0, 3, 0, time.UTC)
	result, err := Replay(path, ReplayFilter{RunID: "run-aaa", To: to})
	if err != nil {
		t.Fatal(err)
	}

	// Should only include entries at 14:00:00, 14:00:02
	if len(result.Entries) != 2 {
		t.Errorf("expected 2 entries before to filter, got %d", len(result.Entries))
	}
}

func TestReplayTimeRangeBoth(t *testing.T) {
	path := writeTestLog(t)

	from := time.Date(2025, 1, 15, 14, 0, 1, 0, time.UTC)
	to := time.Date(2025, 1, 15, 14, 0, 7, 0, time.UTC)
	result, err := Replay(path, ReplayFilter{RunID: "run-aaa", From: from, To: to})
	if err != nil {
		t.Fatal(err)
	}

	// Should include entries at 14:00:02 and 14:00:06
	if len(result.Entries) != 2 {
		t.Errorf("expected 2 entries in time window, got %d", len(result.Entries))
	}
}

func TestReplayEmptyResult(t *testing.T) {
	path := writeTestLog(t)

	result, err := Replay(path, ReplayFilter{RunID: "run-nonexistent"})
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Entries) != 0 {
		t.Errorf("expected 0 entries for unknown run, got %d", len(result.Entries))
	}
	if result.Summary.Total != 0 {
		t.Errorf("expected 0 total, got %d", result.Summary.Total)
	}
}

func TestReplaySummaryCountsCorrect(t *testing.T) {
	path := writeTestLog(t)

	result, err := Replay(path, ReplayFilter{RunID: "run-aaa"})
	if err != nil {
		t.Fatal(err)
	}

	s := result.Summary
	if s.Total != 5 {
		t.Errorf("total: expected 5, got %d", s.Total)
	}
	if s.ProceedCount != 3 {
		t.Errorf("proceed: expected 3, got %d", s.ProceedCount)
	}
	if s.DeferredCount != 2 {
		t.Errorf("deferred: expected 2, got %d", s.DeferredCount)
	}
	if s.RejectedTotal != 1 {
		t.Errorf("rejected actions: expected 1, got %d", s.RejectedTotal)
	}
}

func TestReplayMinConfidenceTracked(t *testing.T) {
	path := writeTestLog(t)

	result, err := Replay(path, ReplayFilter{RunID: "run-aaa"})
	if err != nil {
		t.Fatal(err)
	}

	if result.Summary.MinConfidence != 0.6 {
		t.Errorf("min confidence: expected 0.6, got %v", result.Summary.MinConfidence)
	}

	// run-bbb only has a full-confidence entry
	result2, err := Replay(path, ReplayFilter{RunID: "run-bbb"})
	if err != nil {
		t.Fatal(err)
	}
	if result2.Summary.MinConfidence != 1.0 {
		t.Errorf("min confidence for run-bbb: expected 1.0, got %v", result2.Summary.MinConfidence)
	}
}
