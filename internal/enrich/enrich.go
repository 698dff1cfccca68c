// Package enrich derives category-specific annotations from structured
// records: transaction subtype and risk, message intent and sentiment,
// event category. Derived fields are pure functions of the record; the
// input is never mutated.
package enrich

import (
	"strings"

	"github.com/ndelias/ethos/internal/config"
	"github.com/ndelias/ethos/internal/model"
)

// selectorLen covers the 0x prefix plus the 4-byte call-data selector.
const selectorLen = 10

// positiveWords and negativeWords are the fixed sentiment keyword lists.
var (
	positiveWords = []string{"good", "great", "excellent", "thanks", "happy"}
	negativeWords = []string{"bad", "poor", "terrible", "fail", "sad"}
)

// Enricher annotates records using the configured selector table and
// thresholds.
type Enricher struct {
	selectors map[string]model.TransactionType
	highValue float64
	longData  int
}

// New builds an Enricher from config.
func New(cfg *config.Config) *Enricher {
	selectors := make(map[string]model.TransactionType, len(cfg.Selectors))
	for sel, typ := range cfg.Selectors {
		selectors[strings.ToLower(sel)] = model.TransactionType(typ)
	}
	return &Enricher{
		selectors: selectors,
		highValue: cfg.Thresholds.HighValue,
		longData:  cfg.Thresholds.LongData,
	}
}

// Enrich returns an annotated copy of the record. User input and unknown
// records pass through unchanged.
func (e *Enricher) Enrich(rec model.Record) model.Record {
	switch r := rec.(type) {
	case model.Transaction:
		r.Type = e.transactionType(r)
		r.Risk = e.risk(r)
		return r
	case model.Message:
		r.Intent = intentOf(r.Content)
		r.Sentiment = sentimentOf(r.Content)
		return r
	case model.Event:
		r.Category = eventCategory(r.Name)
		return r
	case model.UserInput:
		return r
	case model.Unknown:
		return r
	default:
		return rec
	}
}

// transactionType derives the subtype from the call-data selector prefix.
// No recipient means contract deployment; unrecognized call data is an
// unknown contract interaction; bare value moves are value transfers.
func (e *Enricher) transactionType(tx model.Transaction) model.TransactionType {
	if tx.To == "" {
		return model.TxContractDeployment
	}
	data := strings.ToLower(tx.Data)
	if len(data) >= selectorLen {
		if typ, ok := e.selectors[data[:selectorLen]]; ok {
			return typ
		}
	}
	if len(data) > len("0x") {
		return model.TxUnknownContract
	}
	return model.TxValueTransfer
}

// risk is high when the value is large, the recipient is absent, or the
// call data is unusually long.
func (e *Enricher) risk(tx model.Transaction) model.RiskLevel {
	if tx.Value > e.highValue || tx.To == "" || len(tx.Data) > e.longData {
		return model.RiskHigh
	}
	return model.RiskLow
}

// intentOf matches keyword substrings in priority order.
func intentOf(content string) model.Intent {
	lower := strings.ToLower(content)
	switch {
	case strings.Contains(lower, "buy") || strings.Contains(lower, "purchase"):
		return model.IntentPurchase
	case strings.Contains(lower, "sell") || strings.Contains(lower, "trade"):
		return model.IntentSell
	case strings.Contains(lower, "help") || strings.Contains(lower, "?"):
		return model.IntentQuestion
	case strings.Contains(lower, "hello") || strings.Contains(lower, "hi"):
		return model.IntentGreeting
	default:
		return model.IntentStatement
	}
}

// sentimentOf counts occurrences of the fixed keyword lists; the majority
// wins and a tie is neutral.
func sentimentOf(content string) model.Sentiment {
	lower := strings.ToLower(content)

	var positive, negative int
	for _, w := range positiveWords {
		positive += strings.Count(lower, w)
	}
	for _, w := range negativeWords {
		negative += strings.Count(lower, w)
	}

	switch {
	case positive > negative:
		return model.SentimentPositive
	case negative > positive:
		return model.SentimentNegative
	default:
		return model.SentimentNeutral
	}
}

// eventCategory is an exact event-name match.
func eventCategory(name string) model.EventCategory {
	switch name {
	case "Transfer":
		return model.EventTokenTransfer
	case "Approval":
		return model.EventTokenApproval
	default:
		return model.EventGeneric
	}
}
