// Package ethos provides in-process decision evaluation for Go agent
// frameworks. It classifies a record, proposes candidate actions, and
// critiques every proposal against deterministic ethical and epistemic
// rules. Low-confidence or constrained decisions defer to a human review
// instead of proceeding.
//
// Usage:
//
//	client, err := ethos.New(ethos.WithThreshold(0.8))
//	wrapped := client.Wrap(executeTx)
//	result, err := wrapped(ctx, map[string]any{
//	    "hash":  "0xabc",
//	    "from":  "0xsafeSender",
//	    "to":    "0xsafeRecipient",
//	    "value": 1.5,
//	})
//
// The SDK links directly against internal packages for zero-subprocess
// overhead. External users import github.com/ndelias/ethos/sdk/go/ethos.
package ethos
