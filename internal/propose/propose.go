// Package propose turns an enriched record into an ordered list of
// candidate actions. This is deterministic rule dispatch, not a planner:
// one fixed branch per category, no backtracking. Ordering is significant
// — the first candidate is primary for downstream consumers.
package propose

import (
	"fmt"

	"github.com/ndelias/ethos/internal/config"
	"github.com/ndelias/ethos/internal/model"
)

// Proposal is the ordered candidate actions plus a free-text reasoning
// summary. Categories that propose nothing leave both empty.
type Proposal struct {
	Actions   []model.CandidateAction
	Reasoning string
}

// Proposer builds proposals using configured response templates.
type Proposer struct {
	templates map[string]string
}

// New builds a Proposer from config.
func New(cfg *config.Config) *Proposer {
	return &Proposer{templates: cfg.ResponseTemplates}
}

// Propose dispatches on the record's concrete type.
func (p *Proposer) Propose(rec model.Record) Proposal {
	switch r := rec.(type) {
	case model.Transaction:
		return p.proposeTransaction(r)
	case model.Message:
		return p.proposeMessage(r)
	case model.Event:
		return p.proposeEvent(r)
	case model.UserInput:
		return Proposal{}
	case model.Unknown:
		return Proposal{}
	default:
		return Proposal{}
	}
}

func (p *Proposer) proposeTransaction(tx model.Transaction) Proposal {
	actions := []model.CandidateAction{
		{
			Name:          model.ActionVerifyRecipient,
			Params:        map[string]any{"address": tx.To},
			Justification: "the recipient address must be confirmed before any interaction",
		},
		{
			Name:          model.ActionCheckGasPrice,
			Params:        map[string]any{"chainId": tx.ChainID},
			Justification: "current gas conditions determine whether execution is economical",
		},
	}

	if tx.Value > 0 {
		actions = append(actions, model.CandidateAction{
			Name: model.ActionExecuteTransaction,
			Params: map[string]any{
				"to":    tx.To,
				"value": tx.Value,
				"data":  tx.Data,
			},
			Justification: "the transaction carries value and is ready for execution",
		})
	}

	if tx.Risk == model.RiskHigh {
		actions = append(actions, model.CandidateAction{
			Name:          model.ActionMonitorTransaction,
			Params:        map[string]any{"txHash": tx.Hash},
			Justification: "high-risk transactions are monitored until finality",
		})
	}

	return Proposal{
		Actions: actions,
		Reasoning: fmt.Sprintf("Transaction of %v to %q classified as %s with %s risk.",
			tx.Value, tx.To, tx.Type, tx.Risk),
	}
}

func (p *Proposer) proposeMessage(msg model.Message) Proposal {
	actions := []model.CandidateAction{
		{
			Name: model.ActionRespondToMessage,
			Params: map[string]any{
				"content": p.responseFor(msg.Intent),
				"context": msg.ConversationHistory,
			},
			Justification: "every message receives a response matched to its intent",
		},
	}

	if msg.Intent == model.IntentQuestion {
		actions = append(actions, model.CandidateAction{
			Name:          model.ActionSearchForAnswer,
			Params:        map[string]any{"query": msg.Content},
			Justification: "questions warrant a knowledge lookup before answering",
		})
	}

	return Proposal{
		Actions: actions,
		Reasoning: fmt.Sprintf("Message with %s intent and %s sentiment.",
			msg.Intent, msg.Sentiment),
	}
}

func (p *Proposer) proposeEvent(ev model.Event) Proposal {
	return Proposal{
		Actions: []model.CandidateAction{
			{
				Name: model.ActionLogEvent,
				Params: map[string]any{
					"event":    ev.Name,
					"params":   ev.Params,
					"category": string(ev.Category),
				},
				Justification: "events are recorded for later analysis",
			},
		},
		Reasoning: fmt.Sprintf("Event %q classified as %s.", ev.Name, ev.Category),
	}
}

// responseFor looks up the canned reply for an intent, falling back to
// the statement template.
func (p *Proposer) responseFor(intent model.Intent) string {
	if tmpl, ok := p.templates[string(intent)]; ok {
		return tmpl
	}
	return p.templates[string(model.IntentStatement)]
}
