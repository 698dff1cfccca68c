package alert

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestDispatchMatchesEvents(t *testing.T) {
	var called atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	d := NewDispatcher([]Config{
		{URL: srv.URL, Format: "generic", Events: []string{"defer"}},
	})

	d.Dispatch(Event{Decision: "defer", Category: "transaction", Reason: "confidence below threshold"})
	time.Sleep(200 * time.Millisecond)

	if called.Load() != 1 {
		t.Errorf("expected 1 call, got %d", called.Load())
	}
}

func TestDispatchSkipsNonMatching(t *testing.T) {
	var called atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	d := NewDispatcher([]Config{
		{URL: srv.URL, Format: "generic", Events: []string{"defer"}},
	})

	d.Dispatch(Event{Decision: "proceed", Category: "message"})
	time.Sleep(200 * time.Millisecond)

	if called.Load() != 0 {
		t.Errorf("expected 0 calls for non-matching event, got %d", called.Load())
	}
}

func TestDispatchMatchesRejectionType(t *testing.T) {
	var called atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	d := NewDispatcher([]Config{
		{URL: srv.URL, Format: "generic", Events: []string{"rejection"}},
	})

	// Decision "proceed" does not match, but the rejection type does.
	d.Dispatch(Event{Decision: "proceed", Type: "rejection", Rejected: 1})
	time.Sleep(200 * time.Millisecond)

	if called.Load() != 1 {
		t.Errorf("expected 1 call for rejection type, got %d", called.Load())
	}
}

func TestNewDispatcherEmptyReturnsNil(t *testing.T) {
	if d := NewDispatcher(nil); d != nil {
		t.Error("expected nil dispatcher for empty config")
	}
}

func TestFormatGenericRoundTrips(t *testing.T) {
	event := Event{
		Timestamp:  "2026-01-01T00:00:00.000Z",
		RunID:      "run-1",
		Category:   "transaction",
		Decision:   "defer",
		Reason:     "ethical limitations present",
		Confidence: 0.8,
		Rejected:   1,
	}

	body, err := FormatPayload("generic", event)
	if err != nil {
		t.Fatalf("format: %v", err)
	}

	var decoded Event
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Decision != "defer" || decoded.Confidence != 0.8 {
		t.Errorf("unexpected payload: %+v", decoded)
	}
}

func TestFormatSlackHasBlocks(t *testing.T) {
	body, err := FormatPayload("slack", Event{Decision: "defer", Category: "transaction"})
	if err != nil {
		t.Fatalf("format: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := payload["blocks"]; !ok {
		t.Error("slack payload missing blocks")
	}
}

func TestFormatPagerDutySeverity(t *testing.T) {
	cases := []struct {
		event    Event
		severity string
	}{
		{Event{Decision: "defer", Rejected: 2}, "error"},
		{Event{Decision: "defer"}, "warning"},
		{Event{Decision: "proceed"}, "info"},
	}

	for _, c := range cases {
		body, err := FormatPayload("pagerduty", c.event)
		if err != nil {
			t.Fatalf("format: %v", err)
		}
		var payload struct {
			Payload struct {
				Severity string `json:"severity"`
			} `json:"payload"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if payload.Payload.Severity != c.severity {
			t.Errorf("decision=%s rejected=%d: expected severity %s, got %s",
				c.event.Decision, c.event.Rejected, c.severity, payload.Payload.Severity)
		}
	}
}

func TestSendRetriesOn5xx(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := Send(Config{URL: srv.URL, Format: "generic"}, Event{Decision: "defer"})
	if err != nil {
		t.Errorf("expected success after retry, got %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 attempts, got %d", calls.Load())
	}
}
