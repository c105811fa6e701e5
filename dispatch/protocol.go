package dispatch

import (
	disha "github.com/margdarshak/disha"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

const (
	CommandInitialize = "initialize"
	CommandChat       = "chat"
	CommandGreeting   = "greeting"
)

// DefaultProvider is used when initialize omits the provider field.
const DefaultProvider = "google"

// Command is one decoded input line. Fields for all commands live on one
// struct; the command identifier decides which ones matter.
type Command struct {
	Command string `json:"command"`

	// initialize
	CareersJSONPath  string `json:"careers_json_path"`
	ChromaPersistDir string `json:"chroma_persist_dir"`
	Provider         string `json:"provider"`

	// chat
	Message     string          `json:"message"`
	ChatHistory []disha.Message `json:"chat_history"`
	Language    string          `json:"language"`

	// greeting
	AssessmentSummary string `json:"assessment_summary"`
}

// Response is one output line. Data is set for chat/greeting results, Message
// for initialization confirmations and every error.
type Response struct {
	Status  string        `json:"status"`
	Message string        `json:"message,omitempty"`
	Data    *disha.Answer `json:"data,omitempty"`
}

func errorResponse(message string) Response {
	return Response{
		Status:  StatusError,
		Message: message,
	}
}
