package alert

// Config defines a webhook alert destination.
type Config struct {
	URL     string            `yaml:"url"     json:"url"`
	Format  string            `yaml:"format"  json:"format"` // "generic", "slack", "pagerduty"
	Events  []string          `yaml:"events"  json:"events"` // ["defer", "rejection"]
	Headers map[string]string `yaml:"headers" json:"headers"`
}

// Event is the payload sent to webhook endpoints.
type Event struct {
	Timestamp  string  `json:"timestamp"`
	RunID      string  `json:"run_id"`
	Category   string  `json:"category"`
	Decision   string  `json:"decision"` // "defer" or "proceed"
	Reason     string  `json:"reason"`
	Confidence float64 `json:"confidence"`
	Rejected   int     `json:"rejected"`
	ConfigHash string  `json:"config_hash"`
	Type       string  `json:"type,omitempty"` // "rejection" when any action was rejected
}
