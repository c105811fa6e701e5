package disha

import (
	"fmt"

	"github.com/margdarshak/disha/generator"
)

// HistoryWindow caps how many recent turns are replayed to the model.
const HistoryWindow = 10

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a raw caller-supplied conversation entry. Content is typed any
// because upstream callers occasionally send non-string payloads; CoerceText
// decides what those become.
type Message struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

// WindowHistory truncates to the most recent HistoryWindow entries in their
// original chronological order, normalizes content to text, and filters out
// entries whose role is neither user nor assistant. Unknown roles are dropped
// silently; callers are deliberately not penalized for sending them.
func WindowHistory(history []Message) []generator.Message {
	if len(history) > HistoryWindow {
		history = history[len(history)-HistoryWindow:]
	}

	turns := make([]generator.Message, 0, len(history))
	for _, msg := range history {
		switch msg.Role {
		case RoleUser, RoleAssistant:
			turns = append(turns, generator.Message{
				Role:    msg.Role,
				Content: CoerceText(msg.Content),
			})
		}
	}

	return turns
}

// CoerceText renders any payload as plain text. Strings pass through
// untouched, nil becomes empty, everything else is formatted.
func CoerceText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
