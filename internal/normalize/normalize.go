// Package normalize converts raw values into category-specific structured
// records. Missing fields get defaults; nothing is ever rejected here.
// Absent identifying fields (e.g. no `to` on a transaction) are tolerated
// and handled downstream as a distinct case.
package normalize

import "github.com/ndelias/ethos/internal/model"

// Normalize builds the structured record for a raw value given its
// category. History arrays are pulled from the caller-supplied context
// when present. Unknown category performs an identity copy.
func Normalize(raw any, cat model.Category, ctx *model.Context) model.Record {
	if ctx == nil {
		ctx = &model.Context{}
	}
	m, _ := model.AsMap(raw)

	switch cat {
	case model.CategoryTransaction:
		return model.Transaction{
			Hash:        model.Str(m, "hash"),
			From:        model.Str(m, "from"),
			To:          model.Str(m, "to"),
			Value:       model.Num(m, "value"),
			Data:        model.Str(m, "data"),
			Gas:         model.Str(m, "gas"),
			ChainID:     model.Str(m, "chainId"),
			Timestamp:   timestamp(m),
			PreviousTxs: ctx.PreviousTransactions,
		}

	case model.CategoryMessage:
		content := model.Str(m, "content")
		if content == "" {
			content = model.Str(m, "message")
		}
		return model.Message{
			Content:             content,
			Sender:              model.Str(m, "sender"),
			Timestamp:           timestamp(m),
			ConversationHistory: ctx.ConversationHistory,
		}

	case model.CategoryEvent:
		params, _ := model.AsMap(m["params"])
		return model.Event{
			Name:      model.Str(m, "event"),
			Params:    params,
			Source:    model.Str(m, "source"),
			Timestamp: timestamp(m),
		}

	case model.CategoryUserInput:
		input := model.Str(m, "input")
		if input == "" {
			input = model.Str(m, "content")
		}
		return model.UserInput{
			Input:     input,
			Timestamp: timestamp(m),
		}

	default:
		if m != nil {
			return model.Unknown{Fields: model.CopyMap(m)}
		}
		return model.Unknown{Raw: raw}
	}
}

// timestamp reads the record's timestamp, defaulting to current time.
func timestamp(m map[string]any) string {
	if ts := model.Str(m, "timestamp"); ts != "" {
		return ts
	}
	return model.UTCNowISO()
}
