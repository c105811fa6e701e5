package generator

import "context"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one prior conversation turn handed to the model.
type Message struct {
	Role    string
	Content string
}

// Request carries everything the model needs for one turn: the system
// directive (persona, language rule, retrieved context), the windowed history,
// and the current question. Requests are built fresh per turn and never kept.
type Request struct {
	System   string
	History  []Message
	Question string
}

type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}
