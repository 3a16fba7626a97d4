package hrclient

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Event is one decoded stream event from the backend. The set is closed:
// Token, ToolStart, ToolEnd, Response and ErrorEvent are the only
// implementations.
type Event interface {
	isEvent()
}

// Token carries an incremental slice of answer text.
type Token struct {
	Text string
}

// ToolStart announces a tool invocation. ID is the backend's run id, or a
// generated one when the backend omits it.
type ToolStart struct {
	ID       string
	ToolName string
	Input    json.RawMessage
}

// ToolEnd completes the invocation with the matching run id.
type ToolEnd struct {
	ID     string
	Output string
}

// Response replaces the accumulated answer text wholesale. The backend uses
// it for final answers and for approval interrupts.
type Response struct {
	Text string
}

// ErrorEvent reports a failure inside the agent for the current turn.
type ErrorEvent struct {
	Text string
}

func (Token) isEvent()      {}
func (ToolStart) isEvent()  {}
func (ToolEnd) isEvent()    {}
func (Response) isEvent()   {}
func (ErrorEvent) isEvent() {}

// eventEnvelope is the superset of fields the wire payloads may carry.
type eventEnvelope struct {
	Type    string          `json:"type"`
	Content string          `json:"content"`
	RunID   string          `json:"run_id"`
	Name    string          `json:"name"`
	Input   json.RawMessage `json:"input"`
	Output  string          `json:"output"`
}

// ParseEvent parses one frame payload into a domain event. It returns
// (nil, nil) for payloads that are valid JSON but carry an unknown type or
// cannot be correlated (tool_end without a run id); those are dropped.
// A JSON parse failure is the only error case, and it is non-fatal to the
// stream: the caller logs it and moves on.
func ParseEvent(payload string) (Event, error) {
	var env eventEnvelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		return nil, err
	}

	switch env.Type {
	case "token":
		return Token{Text: env.Content}, nil
	case "tool_start":
		id := env.RunID
		if id == "" {
			id = uuid.NewString()
		}
		return ToolStart{ID: id, ToolName: env.Name, Input: env.Input}, nil
	case "tool_end":
		if env.RunID == "" {
			return nil, nil
		}
		return ToolEnd{ID: env.RunID, Output: env.Output}, nil
	case "response":
		return Response{Text: env.Content}, nil
	case "error":
		return ErrorEvent{Text: env.Content}, nil
	}
	return nil, nil
}
