package model

// Action names proposed by the pipeline. The camelCase spelling is the
// wire identifier callers see in params and explanations.
const (
	ActionVerifyRecipient    = "verifyRecipient"
	ActionCheckGasPrice      = "checkGasPrice"
	ActionExecuteTransaction = "executeTransaction"
	ActionMonitorTransaction = "monitorTransaction"
	ActionRespondToMessage   = "respondToMessage"
	ActionSearchForAnswer    = "searchForAnswer"
	ActionLogEvent           = "logEvent"

	// Monetary actions accepted by the transaction guard in addition to
	// executeTransaction. Not proposed by the pipeline itself; callers may
	// submit them for standalone safety checks.
	ActionDeployContract = "deployContract"
	ActionCallContract   = "callContract"
	ActionSignMessage    = "signMessage"
	ActionApproveToken   = "approveToken"
	ActionTransferToken  = "transferToken"
)

// CandidateAction is a proposed operation with parameters and a
// justification. Ordering within a proposal is significant: the first
// candidate is treated as primary by downstream consumers.
type CandidateAction struct {
	Name          string         `json:"action"`
	Params        map[string]any `json:"params"`
	Justification string         `json:"justification"`
}

// Verdict is an approve/reject outcome with the reason for the first
// failing check. Never revised once produced.
type Verdict struct {
	Approved bool   `json:"approved"`
	Reason   string `json:"reason"`
}

// UncertaintyFlag marks a candidate action as epistemically uncertain,
// independent of its ethical verdict.
type UncertaintyFlag struct {
	Uncertain bool   `json:"uncertain"`
	Reason    string `json:"reason"`
}
