package ethos

// Option configures a Client at creation time.
type Option func(*clientConfig)

type clientConfig struct {
	configPath string
	threshold  float64
	reviewDir  string
}

// WithConfigPath sets the path to a config YAML file.
func WithConfigPath(path string) Option {
	return func(c *clientConfig) { c.configPath = path }
}

// WithThreshold overrides the confidence threshold from config.
func WithThreshold(threshold float64) Option {
	return func(c *clientConfig) { c.threshold = threshold }
}

// WithReviewDir sets the directory for pending reviews.
func WithReviewDir(dir string) Option {
	return func(c *clientConfig) { c.reviewDir = dir }
}
