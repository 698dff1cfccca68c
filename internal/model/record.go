package model

// Record is the closed sum type over normalized event representations.
// Exactly one implementation exists per Category; stage code switches on
// the concrete type, so an unhandled variant is a compile-visible gap
// rather than a silent default branch.
type Record interface {
	Kind() Category
}

// TransactionType is the derived subtype of a blockchain transaction.
type TransactionType string

const (
	TxERC20Transfer      TransactionType = "erc20_transfer"
	TxERC20TransferFrom  TransactionType = "erc20_transfer_from"
	TxContractDeployment TransactionType = "contract_deployment"
	TxUnknownContract    TransactionType = "unknown_contract_interaction"
	TxValueTransfer      TransactionType = "value_transfer"
)

// RiskLevel is the derived risk annotation on a transaction.
type RiskLevel string

const (
	RiskLow  RiskLevel = "low"
	RiskHigh RiskLevel = "high"
)

// Intent is the derived purpose of a message.
type Intent string

const (
	IntentPurchase Intent = "purchase_intent"
	IntentSell     Intent = "sell_intent"
	IntentQuestion Intent = "question"
	IntentGreeting Intent = "greeting"
	IntentStatement Intent = "statement"
)

// Sentiment is the derived tone of a message.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// EventCategory is the derived subtype of an on-chain event.
type EventCategory string

const (
	EventTokenTransfer EventCategory = "token_transfer"
	EventTokenApproval EventCategory = "token_approval"
	EventGeneric       EventCategory = "generic_event"
)

// Transaction is the normalized form of a blockchain transaction.
// Type and Risk are zero until enrichment fills them; enrichment returns
// an annotated copy and never touches the normalized fields.
type Transaction struct {
	Hash      string
	From      string
	To        string
	Value     float64
	Data      string
	Gas       string
	ChainID   string
	Timestamp string

	PreviousTxs []map[string]any

	Type TransactionType
	Risk RiskLevel
}

func (Transaction) Kind() Category { return CategoryTransaction }

// Message is the normalized form of a chat message.
type Message struct {
	Content   string
	Sender    string
	Timestamp string

	ConversationHistory []map[string]any

	Intent    Intent
	Sentiment Sentiment
}

func (Message) Kind() Category { return CategoryMessage }

// Event is the normalized form of a generic (typically on-chain) event.
type Event struct {
	Name      string
	Params    map[string]any
	Source    string
	Timestamp string

	Category EventCategory
}

func (Event) Kind() Category { return CategoryEvent }

// UserInput is the normalized form of direct user input.
type UserInput struct {
	Input     string
	Timestamp string
}

func (UserInput) Kind() Category { return CategoryUserInput }

// Unknown carries input that matched no structural shape. Fields is a
// shallow copy when the input was a mapping; Raw holds the value as-is
// otherwise.
type Unknown struct {
	Fields map[string]any
	Raw    any
}

func (Unknown) Kind() Category { return CategoryUnknown }
