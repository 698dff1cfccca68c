package model

// Category is the semantic class assigned to a raw event by structural
// inspection. It is assigned exactly once per event and never revised
// downstream.
type Category string

const (
	CategoryTransaction Category = "transaction"
	CategoryMessage     Category = "message"
	CategoryEvent       Category = "event"
	CategoryUserInput   Category = "user_input"
	CategoryUnknown     Category = "unknown"
)

// Categories lists every category in classifier priority order.
var Categories = []Category{
	CategoryTransaction,
	CategoryMessage,
	CategoryEvent,
	CategoryUserInput,
	CategoryUnknown,
}

func (c Category) String() string {
	return string(c)
}
