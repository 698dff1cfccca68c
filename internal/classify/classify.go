// Package classify assigns a semantic category to an untyped input value
// by structural inspection. Structural shape, not declared type, drives
// classification: ambiguous inputs matching multiple shapes resolve to
// the earliest matching rule.
package classify

import "github.com/ndelias/ethos/internal/model"

// Classify inspects a raw value and returns its category. It is total:
// every input maps to exactly one category, defaulting to unknown. There
// is no error path.
//
// Rule order (must not be changed):
//  1. hash + from + to        → transaction
//  2. content or message      → message
//  3. event                   → event
//  4. inputType == "user"     → user input
//  5. anything else           → unknown
func Classify(raw any) model.Category {
	m, ok := model.AsMap(raw)
	if !ok {
		return model.CategoryUnknown
	}

	switch {
	case model.Has(m, "hash") && model.Has(m, "from") && model.Has(m, "to"):
		return model.CategoryTransaction
	case model.Has(m, "content") || model.Has(m, "message"):
		return model.CategoryMessage
	case model.Has(m, "event"):
		return model.CategoryEvent
	case model.Str(m, "inputType") == "user":
		return model.CategoryUserInput
	default:
		return model.CategoryUnknown
	}
}
