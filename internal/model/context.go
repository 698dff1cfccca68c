package model

// Context carries caller-supplied cross-call history. The pipeline treats
// it as read-only input; nothing is written back.
type Context struct {
	PreviousTransactions []map[string]any
	ConversationHistory  []map[string]any
}

// ContextFromMap builds a Context from a raw context mapping with
// defensive coercion. Unrecognized keys are ignored; nil input yields an
// empty context.
func ContextFromMap(m map[string]any) *Context {
	ctx := &Context{}
	if m == nil {
		return ctx
	}

	ctx.PreviousTransactions = mapSlice(m["previousTransactions"])
	ctx.ConversationHistory = mapSlice(m["conversationHistory"])

	return ctx
}

// mapSlice coerces an []any of mappings into []map[string]any, dropping
// entries of any other shape.
func mapSlice(v any) []map[string]any {
	items, ok := v.([]any)
	if !ok {
		if ms, ok := v.([]map[string]any); ok {
			return ms
		}
		return nil
	}

	var out []map[string]any
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}
