package scenario

// Case is one test case within a scenario. Input is the raw record fed
// to the pipeline; the remaining fields are assertions on the outcome.
type Case struct {
	Input         map[string]any `yaml:"input"`
	Context       map[string]any `yaml:"context,omitempty"`
	Category      string         `yaml:"category,omitempty"`
	Expect        string         `yaml:"expect"` // proceed | defer
	MinConfidence *float64       `yaml:"min_confidence,omitempty"`
	Rejected      []string       `yaml:"rejected,omitempty"`
}

// Scenario is a named collection of evaluation test cases.
type Scenario struct {
	Name      string  `yaml:"name"`
	Threshold float64 `yaml:"threshold,omitempty"`
	Cases     []Case  `yaml:"cases"`
}

// CaseResult is the outcome of evaluating one test case.
type CaseResult struct {
	Index      int     `json:"index"`
	Passed     bool    `json:"passed"`
	Category   string  `json:"category"`
	Expected   string  `json:"expected"`
	Actual     string  `json:"actual"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

// RunResult is the outcome of running all cases in one scenario file.
type RunResult struct {
	File   string       `json:"file"`
	Name   string       `json:"name"`
	Total  int          `json:"total"`
	Passed int          `json:"passed"`
	Failed int          `json:"failed"`
	Cases  []CaseResult `json:"cases"`
}
