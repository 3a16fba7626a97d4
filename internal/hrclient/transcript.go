package hrclient

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role identifies who a message belongs to.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// StepKind classifies one record in a message's thought process.
type StepKind string

const (
	StepToolCall  StepKind = "tool_call"
	StepReasoning StepKind = "reasoning"
	StepError     StepKind = "error"
	StepResponse  StepKind = "response"
	StepApproval  StepKind = "approval"
)

// StepStatus is the lifecycle state of a step.
type StepStatus string

const (
	StatusPending  StepStatus = "pending"
	StatusComplete StepStatus = "complete"
	StatusError    StepStatus = "error"
)

// Step records one discrete agent action within a turn. Identity is the ID:
// a duplicate tool_start for the same id never creates a second step.
type Step struct {
	ID        string
	Title     string
	ToolName  string
	Kind      StepKind
	Input     json.RawMessage
	Output    string
	Status    StepStatus
	CreatedAt time.Time
}

// Message is one conversation entry. Assistant messages accumulate content
// and steps while their turn is streaming; IsThinking drives the spinner.
type Message struct {
	Role       Role
	Content    string
	Steps      []Step
	IsThinking bool
}

// Content longer than this many characters means the agent is producing its
// answer, so the thinking indicator comes down even mid-stream.
const thinkingThreshold = 5

// approvalMarker flags a response that is really an approval interrupt.
const approvalMarker = "APPROVAL REQUIRED"

// Turn is the handle for the assistant message currently receiving stream
// events. Begin hands one out; Finalize closes it. Applying events to a
// closed or nil turn is a no-op, never a panic.
type Turn struct {
	msg    *Message
	closed bool
}

// Transcript is the ordered conversation state. It is mutated only through
// Begin, Apply and Finalize, always from a single goroutine; readers take
// snapshots via Messages.
type Transcript struct {
	messages []*Message
}

// NewTranscript returns an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{}
}

// Begin records a user message and opens the paired assistant message,
// returning its turn handle. Any approval step still pending anywhere in
// the transcript is resolved to complete: sending the next message is how
// the user answers an approval gate.
func (t *Transcript) Begin(userText string) *Turn {
	for _, msg := range t.messages {
		for i := range msg.Steps {
			if msg.Steps[i].Kind == StepApproval && msg.Steps[i].Status == StatusPending {
				msg.Steps[i].Status = StatusComplete
			}
		}
	}

	t.messages = append(t.messages, &Message{Role: RoleUser, Content: userText})

	open := &Message{Role: RoleAssistant, IsThinking: true}
	t.messages = append(t.messages, open)
	return &Turn{msg: open}
}

// Apply folds one stream event into the turn's message. Events arriving on
// a finished turn are dropped.
func (t *Transcript) Apply(turn *Turn, ev Event) {
	if turn == nil || turn.closed || turn.msg == nil || ev == nil {
		return
	}
	msg := turn.msg

	switch ev := ev.(type) {
	case Token:
		msg.Content += ev.Text
		if len(msg.Content) > thinkingThreshold {
			msg.IsThinking = false
		}

	case ToolStart:
		// A new tool invocation reopens the thinking indicator even after
		// answer text has started streaming.
		msg.IsThinking = true
		if msg.findStep(ev.ID) == nil {
			msg.Steps = append(msg.Steps, Step{
				ID:        ev.ID,
				Title:     FriendlyLabel(ev.ToolName),
				ToolName:  ev.ToolName,
				Kind:      StepToolCall,
				Input:     ev.Input,
				Status:    StatusPending,
				CreatedAt: time.Now(),
			})
		}

	case ToolEnd:
		if step := msg.findStep(ev.ID); step != nil {
			step.Status = StatusComplete
			step.Output = ev.Output
		}

	case Response:
		msg.Content = ev.Text
		if strings.Contains(ev.Text, approvalMarker) {
			msg.Steps = append(msg.Steps, Step{
				ID:        uuid.NewString(),
				Title:     "Approval Required",
				ToolName:  "approval",
				Kind:      StepApproval,
				Status:    StatusPending,
				CreatedAt: time.Now(),
			})
			msg.IsThinking = false
		}

	case ErrorEvent:
		msg.Steps = append(msg.Steps, Step{
			ID:        uuid.NewString(),
			Title:     "Error Occurred",
			ToolName:  "error",
			Kind:      StepError,
			Output:    ev.Text,
			Status:    StatusError,
			CreatedAt: time.Now(),
		})
		msg.IsThinking = false
	}
}

// Finalize closes the turn. The message always leaves its loading state,
// whether or not the stream delivered a terminal event.
func (t *Transcript) Finalize(turn *Turn) {
	if turn == nil || turn.closed || turn.msg == nil {
		return
	}
	turn.msg.IsThinking = false
	turn.closed = true
}

// Messages returns a snapshot of the conversation for rendering.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	for i, msg := range t.messages {
		out[i] = *msg
		out[i].Steps = append([]Step(nil), msg.Steps...)
	}
	return out
}

// Len reports the number of messages.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Clear drops the whole conversation.
func (t *Transcript) Clear() {
	t.messages = nil
}

func (m *Message) findStep(id string) *Step {
	for i := range m.Steps {
		if m.Steps[i].ID == id {
			return &m.Steps[i]
		}
	}
	return nil
}
